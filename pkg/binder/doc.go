// Package binder binds HTTP request data to Go structs.
//
// A binder is a Func that reads one source of request data into a pointer to
// struct. Form reads urlencoded and multipart bodies using `form` tags, Query
// reads URL parameters using `query` tags and JSON decodes application/json
// bodies strictly.
//
// Validated chains a binder with a validator so handlers receive either a
// bound, valid model or an error:
//
//	type SignupForm struct {
//		Email string `form:"email" validate:"required,email"`
//		Name  string `form:"name" validate:"required,max=64"`
//	}
//
//	bind := binder.Validated(validation.NewObjectValidator(validation.DefaultProvider()), binder.Form())
//
//	func signup(w http.ResponseWriter, r *http.Request) {
//		var form SignupForm
//		if err := bind(r, &form); err != nil {
//			if errs := validation.ExtractValidationErrors(err); errs != nil {
//				// re-render the form with errs
//			}
//			// ...
//		}
//	}
//
// Binding errors wrap one of the package sentinels (ErrInvalidForm,
// ErrFailedToParseJSON, ErrFailedToParseQuery, ErrUnsupportedMediaType,
// ErrMissingContentType or ErrInvalidTarget) so callers can map them to
// status codes with errors.Is.
package binder
