// Package tempdata keeps short-lived values between two requests of the same
// client, typically a flash message set before a redirect and shown after it.
//
// Temp data lives in the client's session under a single key (SessionKey by
// default). Only values of storable shapes are accepted: scalars (bools,
// integers, floats, strings, uuid.UUID, url.URL, *url.URL, time.Time and
// time.Duration), slices and arrays of scalars, and maps from string to
// scalar. Containers are judged by their declared element type, so []any and
// map[string]any are rejected even when their contents would fit. Named types
// such as time.Month or `type Color string` are rejected too, since they would
// not come back with their own type. nil is accepted.
//
// # Usage
//
//	provider := tempdata.NewSessionProvider()
//
//	r := chi.NewRouter()
//	r.Use(manager.Middleware)
//	r.Use(tempdata.Middleware(provider))
//
//	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
//	    td, _ := tempdata.FromContext(r.Context())
//	    td.Set("flash", "Profile saved")
//	    http.Redirect(w, r, "/profile", http.StatusSeeOther)
//	})
//
//	r.Get("/profile", func(w http.ResponseWriter, r *http.Request) {
//	    td, _ := tempdata.FromContext(r.Context())
//	    if msg, ok := td.Get("flash"); ok {
//	        // shown once, dropped on save
//	    }
//	})
//
// Values read with Get are removed when the dictionary is saved unless Keep
// is called for them. Peek reads without marking.
//
// The provider can also be driven directly with any Context implementation:
//
//	values, err := provider.Load(ctx)
//	values["count"] = 3
//	err = provider.Save(ctx, values)
//
// # Storage Format
//
// Values are encoded with the protobuf wire format, one length-delimited
// record per entry carrying the key, shape, scalar kind and payload. Every
// accepted value decodes back to its saved type.
//
// # Error Handling
//
//   - ErrSerializationRejected – a value has an unsupported type; the error is
//     a *SerializationError naming the type
//   - ErrSessionRequired       – non-empty temp data without a session
//   - ErrCorruptPayload        – stored temp data could not be decoded; Load
//     logs it and starts from empty temp data
package tempdata
