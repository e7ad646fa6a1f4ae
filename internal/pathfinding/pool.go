package pathfinding

import "sync"

// Pool hands out Finders of one size to concurrent callers. A Finder taken
// with Get belongs to the caller until Put.
type Pool struct {
	window, budget int
	pool           sync.Pool
}

// NewPool validates the size once and returns an empty pool.
func NewPool(window, budget int) (*Pool, error) {
	if err := validateSize(window, budget); err != nil {
		return nil, err
	}
	p := &Pool{window: window, budget: budget}
	p.pool.New = func() any {
		return newFinder(window, budget)
	}
	return p, nil
}

// Get returns a clean Finder.
func (p *Pool) Get() *Finder {
	return p.pool.Get().(*Finder)
}

// Put resets f and returns it to the pool. Finders of another size are
// dropped.
func (p *Pool) Put(f *Finder) {
	if f == nil || f.window != p.window || len(f.queue) != p.budget {
		return
	}
	f.Reset()
	p.pool.Put(f)
}
