package tempdata_test

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bindkit/pkg/tempdata"
)

func TestShapeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typ      reflect.Type
		expected tempdata.Shape
	}{
		{name: "nil type", typ: nil, expected: tempdata.ShapeUnsafe},
		{name: "int", typ: reflect.TypeFor[int](), expected: tempdata.ShapePrimitive},
		{name: "string", typ: reflect.TypeFor[string](), expected: tempdata.ShapePrimitive},
		{name: "named string", typ: reflect.TypeFor[color](), expected: tempdata.ShapeUnsafe},
		{name: "month", typ: reflect.TypeFor[time.Month](), expected: tempdata.ShapeUnsafe},
		{name: "uuid", typ: reflect.TypeFor[uuid.UUID](), expected: tempdata.ShapePrimitive},
		{name: "url pointer", typ: reflect.TypeFor[*url.URL](), expected: tempdata.ShapePrimitive},
		{name: "url value", typ: reflect.TypeFor[url.URL](), expected: tempdata.ShapePrimitive},
		{name: "time", typ: reflect.TypeFor[time.Time](), expected: tempdata.ShapePrimitive},
		{name: "duration", typ: reflect.TypeFor[time.Duration](), expected: tempdata.ShapePrimitive},
		{name: "int slice", typ: reflect.TypeFor[[]int](), expected: tempdata.ShapeSlice},
		{name: "int array", typ: reflect.TypeFor[[2]int](), expected: tempdata.ShapeArray},
		{name: "string map", typ: reflect.TypeFor[map[string]int](), expected: tempdata.ShapeMap},
		{name: "named key map", typ: reflect.TypeFor[map[color]int](), expected: tempdata.ShapeUnsafe},
		{name: "named element slice", typ: reflect.TypeFor[[]color](), expected: tempdata.ShapeUnsafe},
		{name: "named slice", typ: reflect.TypeFor[palette](), expected: tempdata.ShapeUnsafe},
		{name: "byte slice", typ: reflect.TypeFor[[]byte](), expected: tempdata.ShapeSlice},
		{name: "any", typ: reflect.TypeFor[any](), expected: tempdata.ShapeUnsafe},
		{name: "any slice", typ: reflect.TypeFor[[]any](), expected: tempdata.ShapeUnsafe},
		{name: "nested slice", typ: reflect.TypeFor[[][]int](), expected: tempdata.ShapeUnsafe},
		{name: "int pointer", typ: reflect.TypeFor[*int](), expected: tempdata.ShapeUnsafe},
		{name: "struct", typ: reflect.TypeFor[testItem](), expected: tempdata.ShapeUnsafe},
		{name: "int keyed map", typ: reflect.TypeFor[map[int]int](), expected: tempdata.ShapeUnsafe},
		{name: "complex", typ: reflect.TypeFor[complex128](), expected: tempdata.ShapeUnsafe},
		{name: "channel", typ: reflect.TypeFor[chan int](), expected: tempdata.ShapeUnsafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tempdata.ShapeOf(tt.typ), tt.expected.String())
		})
	}
}

func TestEnsureSerializable(t *testing.T) {
	t.Parallel()

	t.Run("valid types", func(t *testing.T) {
		valid := map[string]any{
			"int":        10,
			"IntArray":   []int{10, 20},
			"string":     "FooValue",
			"SimpleDict": map[string]int{},
			"Uri":        &url.URL{Scheme: "http", Host: "Foo"},
			"Guid":       uuid.New(),
		}
		for key, value := range valid {
			assert.NoError(t, tempdata.EnsureSerializable(map[string]any{key: value}), key)
		}
		assert.NoError(t, tempdata.EnsureSerializable(valid))
	})

	t.Run("nil and empty inputs", func(t *testing.T) {
		assert.NoError(t, tempdata.EnsureSerializable(nil))
		assert.NoError(t, tempdata.EnsureSerializable(map[string]any{}))
		assert.NoError(t, tempdata.EnsureSerializable(map[string]any{"nil": nil}))
	})

	t.Run("declared element type decides", func(t *testing.T) {
		err := tempdata.EnsureSerializable(map[string]any{"items": []any{1, 2, 3}})
		assert.ErrorIs(t, err, tempdata.ErrSerializationRejected)
	})

	t.Run("first offending key in order is reported", func(t *testing.T) {
		err := tempdata.EnsureSerializable(map[string]any{
			"b": testItem{},
			"a": struct{}{},
			"c": 1,
		})
		var serr *tempdata.SerializationError
		assert.ErrorAs(t, err, &serr)
		assert.Equal(t, "a", serr.Key)
		assert.Equal(t, tempdata.ProviderName, serr.Provider)
	})
}
