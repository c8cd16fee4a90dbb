// Package validation turns model metadata into validators and runs them.
//
// Validators are not registered per type. Instead, a Provider inspects a
// ModelMetadata value (the model type, the property name, its struct tag) and
// contributes zero or more Validator values for it. Several providers are
// combined with a CompositeProvider, which fans a request out to each child in
// registration order and concatenates what they contribute.
//
// # Architecture
//
//	┌───────────────┐  metadata   ┌───────────────────┐
//	│ObjectValidator│ ──────────► │ CompositeProvider │
//	└───────────────┘             └───────────────────┘
//	        │                        │      │      │
//	        │ validators             ▼      ▼      ▼
//	        ▼                      Tag    Self   custom
//	  ValidationErrors
//
// Built-in providers:
//   - TagProvider            – rules from the `validate` struct tag
//   - SelfValidatingProvider – models implementing Validatable
//   - ProviderFunc           – adapter for plain functions
//
// # Usage
//
//	type SignupForm struct {
//	    Email string `form:"email" validate:"required,email"`
//	    Name  string `form:"name" validate:"required,min=2,max=64"`
//	    Plan  string `form:"plan" validate:"oneof=free pro"`
//	}
//
//	v := validation.NewObjectValidator(validation.DefaultProvider())
//	if err := v.Validate(ctx, &form); err != nil {
//	    if verrs := validation.ExtractValidationErrors(err); verrs != nil {
//	        // field-level messages
//	    }
//	}
//
// # Error Handling
//
// Field failures are reported as ValidationErrors, which implements error.
// Anything else returned by a validator (for example ErrUnknownRule for a
// misspelled tag) is a configuration problem and aborts validation.
package validation
