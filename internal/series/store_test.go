package series

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushBelowCapacity(t *testing.T) {
	r := NewRing(4)
	r.Push(1)
	r.Push(2)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []float64{1, 2}, r.Values())

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 2.0, last)
}

func TestRing_EvictsOldest(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		r.Push(float64(i))
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []float64{3, 4, 5}, r.Values())
}

func TestRing_Empty(t *testing.T) {
	r := NewRing(0)
	assert.Equal(t, DefaultCapacity, r.Cap())
	assert.Empty(t, r.Values())

	_, ok := r.Last()
	assert.False(t, ok)
}

func TestRing_ValuesIsCopy(t *testing.T) {
	r := NewRing(2)
	r.Push(1)
	v := r.Values()
	v[0] = 99

	assert.Equal(t, []float64{1}, r.Values())
}

func TestStore_ViewNeverExceedsCapacity(t *testing.T) {
	s := NewStore(DefaultCapacity)

	for i := 0; i < 250; i++ {
		s.Record(CPUPercent, float64(i))
		assert.LessOrEqual(t, len(s.View(CPUPercent)), DefaultCapacity)
	}

	view := s.View(CPUPercent)
	require.Len(t, view, DefaultCapacity)
	for i, v := range view {
		assert.Equal(t, float64(150+i), v)
	}
}

func TestStore_SeriesAreIndependent(t *testing.T) {
	s := NewStore(10)
	s.Record(DownloadRate, 1)
	s.Record(UploadRate, 2)
	s.Record(UploadRate, 3)

	assert.Equal(t, []float64{1}, s.View(DownloadRate))
	assert.Equal(t, []float64{2, 3}, s.View(UploadRate))
	assert.Empty(t, s.View(MemoryPercent))
	assert.NotNil(t, s.View("unknown"))
}

func TestStore_ConcurrentRecordAndView(t *testing.T) {
	s := NewStore(50)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Record(MemoryPercent, float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			assert.LessOrEqual(t, len(s.View(MemoryPercent)), 50)
		}
	}()
	wg.Wait()

	assert.Len(t, s.View(MemoryPercent), 50)
}
