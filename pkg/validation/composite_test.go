package validation_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/pkg/validation"
)

// namedValidator lets tests identify which provider contributed a validator.
type namedValidator string

func (namedValidator) Validate(context.Context, *validation.ValidationContext) error { return nil }

// staticProvider contributes a fixed list of validators and counts calls.
type staticProvider struct {
	mu    sync.Mutex
	names []string
	calls int
	seen  []*validation.ModelMetadata
}

func (p *staticProvider) GetValidators(pctx *validation.ProviderContext) {
	p.mu.Lock()
	p.calls++
	p.seen = append(p.seen, pctx.Metadata)
	p.mu.Unlock()
	for _, name := range p.names {
		pctx.Add(namedValidator(name))
	}
}

func names(validators []validation.Validator) []string {
	out := make([]string, 0, len(validators))
	for _, v := range validators {
		out = append(out, string(v.(namedValidator)))
	}
	return out
}

func TestCompositeProvider_Concatenation(t *testing.T) {
	t.Parallel()

	md := validation.MetadataFor(reflect.TypeFor[string]())

	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d providers", n), func(t *testing.T) {
			t.Parallel()

			var (
				providers []validation.Provider
				expected  = []string{}
			)
			for i := range n {
				p := &staticProvider{}
				// provider i contributes i validators, so some contribute nothing
				for j := range i {
					p.names = append(p.names, fmt.Sprintf("p%d-v%d", i, j))
				}
				expected = append(expected, p.names...)
				providers = append(providers, p)
			}

			composite := validation.NewCompositeProvider(providers...)
			got := validation.Validators(composite, md)

			assert.Equal(t, expected, names(got))
			for _, p := range providers {
				sp := p.(*staticProvider)
				assert.Equal(t, 1, sp.calls)
				require.Len(t, sp.seen, 1)
				assert.Same(t, md, sp.seen[0])
			}
		})
	}
}

func TestCompositeProvider_PreservesOrder(t *testing.T) {
	t.Parallel()

	first := &staticProvider{names: []string{"a1", "a2"}}
	second := &staticProvider{names: []string{"b1"}}
	third := &staticProvider{names: []string{"c1", "c2", "c3"}}

	md := validation.MetadataFor(reflect.TypeFor[int]())

	forward := validation.NewCompositeProvider(first, second, third)
	assert.Equal(t, []string{"a1", "a2", "b1", "c1", "c2", "c3"}, names(validation.Validators(forward, md)))

	backward := validation.NewCompositeProvider(third, second, first)
	assert.Equal(t, []string{"c1", "c2", "c3", "b1", "a1", "a2"}, names(validation.Validators(backward, md)))
}

func TestCompositeProvider_NoDeduplication(t *testing.T) {
	t.Parallel()

	p := &staticProvider{names: []string{"same"}}
	composite := validation.NewCompositeProvider(p, p)

	got := validation.Validators(composite, validation.MetadataFor(reflect.TypeFor[int]()))
	assert.Equal(t, []string{"same", "same"}, names(got))
	assert.Equal(t, 2, p.calls)
}

func TestCompositeProvider_AppendsToExistingContext(t *testing.T) {
	t.Parallel()

	composite := validation.NewCompositeProvider(&staticProvider{names: []string{"x"}})
	pctx := &validation.ProviderContext{
		Metadata:   validation.MetadataFor(reflect.TypeFor[int]()),
		Validators: []validation.Validator{namedValidator("existing")},
	}
	composite.GetValidators(pctx)

	assert.Equal(t, []string{"existing", "x"}, names(pctx.Validators))
}

func TestCompositeProvider_Providers(t *testing.T) {
	t.Parallel()

	a := &staticProvider{}
	b := &staticProvider{}
	composite := validation.NewCompositeProvider(a, nil, b)

	got := composite.Providers()
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])

	// mutating the returned slice does not affect the composite
	got[0] = nil
	assert.Len(t, validation.Validators(composite, validation.MetadataFor(reflect.TypeFor[int]())), 0)
	assert.Same(t, a, composite.Providers()[0])
}

func TestCompositeProvider_Nested(t *testing.T) {
	t.Parallel()

	inner := validation.NewCompositeProvider(
		&staticProvider{names: []string{"i1"}},
		&staticProvider{names: []string{"i2"}},
	)
	outer := validation.NewCompositeProvider(
		&staticProvider{names: []string{"o1"}},
		inner,
		validation.ProviderFunc(func(pctx *validation.ProviderContext) {
			pctx.Add(namedValidator("f1"))
		}),
	)

	got := validation.Validators(outer, validation.MetadataFor(reflect.TypeFor[int]()))
	assert.Equal(t, []string{"o1", "i1", "i2", "f1"}, names(got))
}

func TestCompositeProvider_ConcurrentUse(t *testing.T) {
	t.Parallel()

	composite := validation.NewCompositeProvider(
		&staticProvider{names: []string{"a"}},
		&staticProvider{names: []string{"b"}},
	)
	md := validation.MetadataFor(reflect.TypeFor[int]())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"a", "b"}, names(validation.Validators(composite, md)))
		}()
	}
	wg.Wait()
}
