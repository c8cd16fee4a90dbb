package validation

import (
	"context"
	"reflect"
)

// Validatable is implemented by models that validate themselves.
// Returning ValidationErrors reports field failures; field names are taken
// relative to the model.
type Validatable interface {
	Validate(ctx context.Context) error
}

var validatableType = reflect.TypeFor[Validatable]()

// SelfValidatingProvider contributes a validator for model types implementing Validatable.
type SelfValidatingProvider struct{}

func NewSelfValidatingProvider() *SelfValidatingProvider {
	return &SelfValidatingProvider{}
}

func (p *SelfValidatingProvider) GetValidators(pctx *ProviderContext) {
	t := pctx.Metadata.ModelType
	if t == nil {
		return
	}
	if t.Implements(validatableType) || reflect.PointerTo(t).Implements(validatableType) {
		pctx.Add(ValidatorFunc(validateSelf))
	}
}

func validateSelf(ctx context.Context, vctx *ValidationContext) error {
	model := asValidatable(vctx)
	if model == nil {
		return nil
	}

	err := model.Validate(ctx)
	if err == nil {
		return nil
	}

	verrs := ExtractValidationErrors(err)
	if verrs == nil {
		return ValidationErrors{{
			Field:          vctx.Field,
			Message:        err.Error(),
			TranslationKey: "validation.model",
			TranslationValues: map[string]any{
				"field": vctx.Field,
			},
		}}
	}
	if vctx.Field == "" {
		return verrs
	}

	nested := make(ValidationErrors, 0, len(verrs))
	for _, e := range verrs {
		e.Field = joinField(vctx.Field, e.Field)
		nested = append(nested, e)
	}
	return nested
}

// asValidatable finds the Validatable behind the value, taking the address
// for pointer receivers when possible. Nil pointers are not validated.
func asValidatable(vctx *ValidationContext) Validatable {
	v := vctx.Value
	if !v.IsValid() {
		return nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}
	if v.CanInterface() {
		if model, ok := v.Interface().(Validatable); ok {
			return model
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if model, ok := v.Addr().Interface().(Validatable); ok {
			return model
		}
	}
	return nil
}
