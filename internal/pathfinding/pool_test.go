package pathfinding

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilepath/internal/geo"
)

func TestNewPoolValidates(t *testing.T) {
	_, err := NewPool(1, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := NewPool(DefaultWindow, DefaultNodeBudget)
	require.NoError(t, err)

	f := p.Get()
	assert.Equal(t, DefaultWindow, f.Window())
	assert.Equal(t, DefaultNodeBudget, f.NodeBudget())
}

func TestPoolPutResets(t *testing.T) {
	p, err := NewPool(64, 1024)
	require.NoError(t, err)

	f := p.Get()
	_, err = f.FindPath(geo.NewMap(), baseQuery(lumbridge, northOf(lumbridge, 5)))
	require.NoError(t, err)
	require.True(t, f.Dirty())

	p.Put(f)
	assert.False(t, f.Dirty())

	// Foreign sizes and nil are ignored.
	p.Put(nil)
	p.Put(New())
}

func TestPoolConcurrent(t *testing.T) {
	p, err := NewPool(DefaultWindow, DefaultNodeBudget)
	require.NoError(t, err)

	m := geo.NewMap()
	require.NoError(t, m.Update(func(w *geo.Writer) error {
		return w.FillRect(3225, 3210, 3240, 3210, 0, geo.Loc)
	}))
	snap := m.Snapshot()
	q := baseQuery(lumbridge, northOf(lumbridge, 10))

	want, err := New().FindPath(snap, q)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				f := p.Get()
				got, err := f.FindPath(snap, q)
				p.Put(f)
				if assert.NoError(t, err) {
					assert.Equal(t, want, got)
				}
			}
		}()
	}
	wg.Wait()
}
