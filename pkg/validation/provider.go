package validation

import (
	"context"
	"reflect"
)

// ValidationContext carries the value under validation to a Validator.
type ValidationContext struct {
	Metadata *ModelMetadata
	// Field is the dotted path of the value inside the top-level model, empty for the model itself.
	Field string
	// Model is the value being validated, nil when the value is invalid or a nil pointer.
	Model any
	// Value is the reflected value being validated.
	Value reflect.Value
	// Container is the struct holding Value, nil for the top-level model.
	Container any
}

// Validator checks a single value.
// Field failures are returned as ValidationErrors; any other error aborts validation.
type Validator interface {
	Validate(ctx context.Context, vctx *ValidationContext) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, vctx *ValidationContext) error

func (f ValidatorFunc) Validate(ctx context.Context, vctx *ValidationContext) error {
	return f(ctx, vctx)
}

// ProviderContext is passed to providers; they append what they contribute to Validators.
type ProviderContext struct {
	Metadata   *ModelMetadata
	Validators []Validator
}

// Add appends validators to the context.
func (p *ProviderContext) Add(validators ...Validator) {
	p.Validators = append(p.Validators, validators...)
}

// Provider contributes validators for the metadata carried by the context.
type Provider interface {
	GetValidators(pctx *ProviderContext)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(pctx *ProviderContext)

func (f ProviderFunc) GetValidators(pctx *ProviderContext) {
	f(pctx)
}

// Validators collects the validators p contributes for md.
func Validators(p Provider, md *ModelMetadata) []Validator {
	pctx := &ProviderContext{Metadata: md}
	p.GetValidators(pctx)
	return pctx.Validators
}
