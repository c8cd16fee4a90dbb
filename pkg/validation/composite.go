package validation

import "slices"

// CompositeProvider delegates to an ordered list of providers.
// The result for a metadata value is the concatenation of what each child
// contributes, in registration order. Children contributing nothing are fine.
// The child list is fixed at construction, so a CompositeProvider is safe for
// concurrent use as long as its children are.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider delegating to providers in the given order.
// Nil entries are skipped.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	clean := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			clean = append(clean, p)
		}
	}
	return &CompositeProvider{providers: clean}
}

// DefaultProvider combines the tag and self-validation providers.
func DefaultProvider() *CompositeProvider {
	return NewCompositeProvider(NewTagProvider(), NewSelfValidatingProvider())
}

// GetValidators invokes every child provider in order on the same context.
func (c *CompositeProvider) GetValidators(pctx *ProviderContext) {
	for _, p := range c.providers {
		p.GetValidators(pctx)
	}
}

// Providers returns a copy of the child providers.
func (c *CompositeProvider) Providers() []Provider {
	return slices.Clone(c.providers)
}
