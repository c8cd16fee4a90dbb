package tempdata

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrSerializationRejected indicates a value whose type cannot be stored in the session
	ErrSerializationRejected = errors.New("tempdata.serialization_rejected")

	// ErrSessionRequired indicates non-empty temp data without a session to hold it
	ErrSessionRequired = errors.New("tempdata.session_required")

	// ErrCorruptPayload indicates the stored temp data could not be decoded
	ErrCorruptPayload = errors.New("tempdata.corrupt_payload")
)

// SerializationError names the type that failed the serializability check.
// It matches ErrSerializationRejected with errors.Is.
type SerializationError struct {
	// Key is the temp data key holding the value.
	Key string
	// Type is the offending declared type; for containers, the element type.
	Type reflect.Type
	// Provider identifies the provider that rejected the value.
	Provider string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("the type %s cannot be serialized to session by '%s'", typeName(e.Type), e.Provider)
}

func (e *SerializationError) Unwrap() error {
	return ErrSerializationRejected
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
