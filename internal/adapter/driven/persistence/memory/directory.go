package memory

import (
	"context"
	"sync"
)

// Directory resolves call aliases in memory. Without an account store the
// alias doubles as the internal identity unless an explicit mapping is set.
type Directory struct {
	mu  sync.Mutex
	ids map[string]string
}

func NewDirectory() *Directory {
	return &Directory{
		ids: make(map[string]string),
	}
}

func (d *Directory) Put(alias, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids[alias] = id
}

func (d *Directory) ResolveInternalID(ctx context.Context, alias string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.ids[alias]; ok {
		return id, nil
	}
	return alias, nil
}
