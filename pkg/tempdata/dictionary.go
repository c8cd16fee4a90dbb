package tempdata

import (
	"maps"
	"slices"
	"sync"
)

// Dictionary is the temp data of one request.
//
// Values loaded from the previous request are dropped at Save once they have
// been read with Get, unless Keep is called for them. Values set during the
// request and values never read survive. Peek reads without marking.
type Dictionary struct {
	provider Provider

	mu       sync.Mutex
	values   map[string]any
	initial  map[string]struct{}
	retained map[string]struct{}
}

// Load reads the request's temp data through provider. The returned
// Dictionary is usable even when the provider reports an error.
func Load(ctx Context, provider Provider) (*Dictionary, error) {
	values, err := provider.Load(ctx)
	if values == nil {
		values = make(map[string]any)
	}

	d := &Dictionary{
		provider: provider,
		values:   values,
		initial:  make(map[string]struct{}, len(values)),
		retained: make(map[string]struct{}),
	}
	for key := range values {
		d.initial[key] = struct{}{}
	}
	return d, err
}

// Get returns the value for key and marks it for removal at Save.
func (d *Dictionary) Get(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.values[key]
	delete(d.initial, key)
	return v, ok
}

// Peek returns the value for key without marking it.
func (d *Dictionary) Peek(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. It survives the next Save.
func (d *Dictionary) Set(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.values[key] = value
	d.initial[key] = struct{}{}
}

// Delete removes key.
func (d *Dictionary) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.values, key)
	delete(d.initial, key)
	delete(d.retained, key)
}

// Keep retains the given keys, or all keys when called without arguments,
// for one more request even if they were read.
func (d *Dictionary) Keep(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(keys) == 0 {
		for key := range d.values {
			d.retained[key] = struct{}{}
		}
		return
	}
	for _, key := range keys {
		d.retained[key] = struct{}{}
	}
}

// Keys returns the current keys in sorted order.
func (d *Dictionary) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Sorted(maps.Keys(d.values))
}

// Len returns the number of values.
func (d *Dictionary) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.values)
}

// Save drops read, unretained values and stores the rest through the provider.
// A rejected value leaves the dictionary and the session unchanged.
func (d *Dictionary) Save(ctx Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]any, len(d.values))
	for key, v := range d.values {
		_, initial := d.initial[key]
		_, retained := d.retained[key]
		if initial || retained {
			out[key] = v
		}
	}

	if err := d.provider.Save(ctx, out); err != nil {
		return err
	}

	d.values = out
	d.retained = make(map[string]struct{})
	return nil
}
