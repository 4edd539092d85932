// Package series keeps bounded rolling history of sampled scalars for
// charting.
package series

// DefaultCapacity is the number of samples kept per series.
const DefaultCapacity = 100

// Ring is a fixed-capacity FIFO of float64. Pushing onto a full ring evicts
// the oldest value. Ring is not safe for concurrent use; Store guards it.
type Ring struct {
	buf   []float64
	start int
	size  int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]float64, capacity)}
}

func (r *Ring) Push(v float64) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

func (r *Ring) Len() int { return r.size }

func (r *Ring) Cap() int { return len(r.buf) }

// Values returns a copy of the contents, oldest first.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.size)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Last returns the most recent value.
func (r *Ring) Last() (float64, bool) {
	if r.size == 0 {
		return 0, false
	}
	return r.buf[(r.start+r.size-1)%len(r.buf)], true
}
