package validation

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// DefaultMaxDepth limits how deep nested structs are walked.
const DefaultMaxDepth = 16

// ObjectValidator validates a model and its exported properties with the
// validators a Provider contributes. Validator lists are resolved once per
// metadata value and cached.
type ObjectValidator struct {
	provider   Provider
	maxDepth   int
	validators sync.Map // *ModelMetadata -> []Validator
}

// ObjectOption configures an ObjectValidator.
type ObjectOption func(*ObjectValidator)

// WithMaxDepth sets how many levels of nested structs are validated.
func WithMaxDepth(depth int) ObjectOption {
	return func(o *ObjectValidator) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// NewObjectValidator creates an ObjectValidator backed by provider.
func NewObjectValidator(provider Provider, opts ...ObjectOption) *ObjectValidator {
	if provider == nil {
		provider = DefaultProvider()
	}
	o := &ObjectValidator{provider: provider, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate runs every contributed validator against model and its properties.
// It returns ValidationErrors when fields fail, nil when the model is valid,
// and any other error when a validator could not run.
func (o *ObjectValidator) Validate(ctx context.Context, model any) error {
	if model == nil {
		return ErrInvalidModel
	}

	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ErrInvalidModel
	}
	if rv.Kind() != reflect.Pointer {
		// pointer-receiver Validate methods need an addressable model
		addressable := reflect.New(rv.Type()).Elem()
		addressable.Set(rv)
		rv = addressable
	}

	var errs ValidationErrors
	if err := o.walk(ctx, MetadataFor(rv.Type()), rv, "", nil, 0, &errs); err != nil {
		return err
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func (o *ObjectValidator) walk(ctx context.Context, md *ModelMetadata, v reflect.Value, field string, container any, depth int, errs *ValidationErrors) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	vctx := &ValidationContext{
		Metadata:  md,
		Field:     field,
		Model:     interfaceOf(v),
		Value:     v,
		Container: container,
	}
	for _, validator := range o.validatorsFor(md) {
		err := validator.Validate(ctx, vctx)
		if err == nil {
			continue
		}
		if verrs := ExtractValidationErrors(err); verrs != nil {
			*errs = append(*errs, verrs...)
			continue
		}
		return fmt.Errorf("validation: %w", err)
	}

	if depth >= o.maxDepth {
		return nil
	}

	sv := indirect(v)
	if !sv.IsValid() || sv.Kind() != reflect.Struct {
		return nil
	}
	parent := interfaceOf(sv)
	if sv.CanAddr() {
		parent = interfaceOf(sv.Addr())
	}

	for _, prop := range md.Properties() {
		fv := sv.FieldByIndex(prop.index)
		if err := o.walk(ctx, prop, fv, joinField(field, prop.FieldName()), parent, depth+1, errs); err != nil {
			return err
		}
	}
	return nil
}

func (o *ObjectValidator) validatorsFor(md *ModelMetadata) []Validator {
	if cached, ok := o.validators.Load(md); ok {
		return cached.([]Validator)
	}
	validators := Validators(o.provider, md)
	actual, _ := o.validators.LoadOrStore(md, validators)
	return actual.([]Validator)
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	if name == "" {
		return parent
	}
	return parent + "." + name
}
