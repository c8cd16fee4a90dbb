package tempdata

import (
	"maps"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Shape classifies a declared type by how it can be stored.
type Shape uint8

const (
	// ShapeUnsafe values cannot be stored.
	ShapeUnsafe Shape = iota
	// ShapePrimitive is a single scalar: bool, integer, float, string,
	// uuid.UUID, url.URL, *url.URL, time.Time or time.Duration. Named types
	// such as time.Month are unsafe.
	ShapePrimitive
	// ShapeSlice is a slice of primitives.
	ShapeSlice
	// ShapeArray is a fixed-size array of primitives.
	ShapeArray
	// ShapeMap is a map with string keys and primitive values.
	ShapeMap
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeSlice:
		return "slice"
	case ShapeArray:
		return "array"
	case ShapeMap:
		return "map"
	default:
		return "unsafe"
	}
}

var (
	uuidType     = reflect.TypeFor[uuid.UUID]()
	urlType      = reflect.TypeFor[url.URL]()
	urlPtrType   = reflect.TypeFor[*url.URL]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	stringType   = reflect.TypeFor[string]()
)

// ShapeOf classifies t. Containers are judged by their declared element
// type, never by their contents: []any is unsafe even when empty. Named
// containers and named map keys are unsafe.
func ShapeOf(t reflect.Type) Shape {
	if t == nil {
		return ShapeUnsafe
	}
	if isPrimitive(t) {
		return ShapePrimitive
	}
	if t.Name() != "" {
		return ShapeUnsafe
	}

	switch t.Kind() {
	case reflect.Slice:
		if isPrimitive(t.Elem()) {
			return ShapeSlice
		}
	case reflect.Array:
		if isPrimitive(t.Elem()) {
			return ShapeArray
		}
	case reflect.Map:
		if t.Key() == stringType && isPrimitive(t.Elem()) {
			return ShapeMap
		}
	}
	return ShapeUnsafe
}

func isPrimitive(t reflect.Type) bool {
	_, ok := scalarKindOf(t)
	return ok
}

// EnsureSerializable checks every value against the storable shapes.
// A nil value is accepted. The first offending entry, in key order, is
// reported as a *SerializationError.
func EnsureSerializable(values map[string]any) error {
	return ensureSerializable(values, ProviderName)
}

func ensureSerializable(values map[string]any, provider string) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		v := values[key]
		if v == nil {
			continue
		}
		t := reflect.TypeOf(v)
		if ShapeOf(t) != ShapeUnsafe {
			continue
		}
		return &SerializationError{Key: key, Type: offendingType(t), Provider: provider}
	}
	return nil
}

// offendingType narrows a rejected container to the part that made it unsafe.
func offendingType(t reflect.Type) reflect.Type {
	if t.Name() != "" {
		return t
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem()
	case reflect.Map:
		if t.Key() != stringType {
			return t.Key()
		}
		return t.Elem()
	default:
		return t
	}
}
