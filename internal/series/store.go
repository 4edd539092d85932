package series

import "sync"

// Series names recorded by the monitor.
const (
	CPUPercent    = "cpu_percent"
	MemoryPercent = "memory_percent"
	DownloadRate  = "download_rate"
	UploadRate    = "upload_rate"
)

// Store owns one Ring per metric name. Rings are created on first Record.
type Store struct {
	mu       sync.RWMutex
	capacity int
	rings    map[string]*Ring
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		rings:    make(map[string]*Ring),
	}
}

func (s *Store) Record(name string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rings[name]
	if !ok {
		r = NewRing(s.capacity)
		s.rings[name] = r
	}
	r.Push(v)
}

// View returns a snapshot copy of the named series, oldest first. Unknown
// names yield an empty slice.
func (s *Store) View(name string) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rings[name]
	if !ok {
		return []float64{}
	}
	return r.Values()
}

func (s *Store) Capacity() int { return s.capacity }
