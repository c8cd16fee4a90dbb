package validation

import (
	"reflect"
	"strings"
	"sync"
)

// ModelMetadata describes a model type or one of its properties.
// Instances are immutable once built and shared between requests.
type ModelMetadata struct {
	// ModelType is the declared type of the model or property.
	ModelType reflect.Type
	// ContainerType is the struct type holding the property, nil for a top-level model.
	ContainerType reflect.Type
	// PropertyName is the Go field name, empty for a top-level model.
	PropertyName string
	// Tag is the struct tag of the property.
	Tag reflect.StructTag

	index      []int
	name       string
	once       sync.Once
	properties []*ModelMetadata
}

var metadataCache sync.Map // reflect.Type -> *ModelMetadata

// MetadataFor returns the cached metadata for a top-level model type.
func MetadataFor(t reflect.Type) *ModelMetadata {
	if cached, ok := metadataCache.Load(t); ok {
		return cached.(*ModelMetadata)
	}
	actual, _ := metadataCache.LoadOrStore(t, &ModelMetadata{ModelType: t})
	return actual.(*ModelMetadata)
}

// IsProperty reports whether the metadata describes a struct field.
func (m *ModelMetadata) IsProperty() bool {
	return m.ContainerType != nil
}

// FieldName is the name used when reporting errors: the json or form tag name
// when present, otherwise the Go field name.
func (m *ModelMetadata) FieldName() string {
	if m.name != "" {
		return m.name
	}
	return m.PropertyName
}

// Properties returns metadata for the exported fields of the model's struct
// type, following pointers. Non-struct models have no properties.
// Fields tagged `validate:"-"` are excluded.
func (m *ModelMetadata) Properties() []*ModelMetadata {
	m.once.Do(func() {
		t := m.ModelType
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return
		}

		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get(tagName) == "-" {
				continue
			}
			m.properties = append(m.properties, &ModelMetadata{
				ModelType:     f.Type,
				ContainerType: t,
				PropertyName:  f.Name,
				Tag:           f.Tag,
				index:         f.Index,
				name:          displayName(f),
			})
		}
	})
	return m.properties
}

func displayName(f reflect.StructField) string {
	for _, key := range []string{"json", "form", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
