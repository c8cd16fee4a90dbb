package tempdata

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// scalarKind identifies the Go type a stored scalar decodes to.
// Values are part of the stored format and must not be renumbered.
type scalarKind uint8

const (
	kindNone scalarKind = iota
	kindBool
	kindInt
	kindInt8
	kindInt16
	kindInt32
	kindInt64
	kindUint
	kindUint8
	kindUint16
	kindUint32
	kindUint64
	kindFloat32
	kindFloat64
	kindString
	kindUUID
	kindURL
	kindURLPtr
	kindTime
	kindDuration
)

var kindTypes = map[scalarKind]reflect.Type{
	kindBool:     reflect.TypeFor[bool](),
	kindInt:      reflect.TypeFor[int](),
	kindInt8:     reflect.TypeFor[int8](),
	kindInt16:    reflect.TypeFor[int16](),
	kindInt32:    reflect.TypeFor[int32](),
	kindInt64:    reflect.TypeFor[int64](),
	kindUint:     reflect.TypeFor[uint](),
	kindUint8:    reflect.TypeFor[uint8](),
	kindUint16:   reflect.TypeFor[uint16](),
	kindUint32:   reflect.TypeFor[uint32](),
	kindUint64:   reflect.TypeFor[uint64](),
	kindFloat32:  reflect.TypeFor[float32](),
	kindFloat64:  reflect.TypeFor[float64](),
	kindString:   reflect.TypeFor[string](),
	kindUUID:     uuidType,
	kindURL:      urlType,
	kindURLPtr:   urlPtrType,
	kindTime:     timeType,
	kindDuration: durationType,
}

// scalarKindOf maps a type to its stored kind. Only the exact types in
// kindTypes qualify; named types over basic kinds would not decode back to
// themselves.
func scalarKindOf(t reflect.Type) (scalarKind, bool) {
	k, ok := basicKindOf(t)
	if !ok || kindTypes[k] != t {
		return kindNone, false
	}
	return k, true
}

func basicKindOf(t reflect.Type) (scalarKind, bool) {
	switch t {
	case uuidType:
		return kindUUID, true
	case urlType:
		return kindURL, true
	case urlPtrType:
		return kindURLPtr, true
	case timeType:
		return kindTime, true
	case durationType:
		return kindDuration, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return kindBool, true
	case reflect.Int:
		return kindInt, true
	case reflect.Int8:
		return kindInt8, true
	case reflect.Int16:
		return kindInt16, true
	case reflect.Int32:
		return kindInt32, true
	case reflect.Int64:
		return kindInt64, true
	case reflect.Uint:
		return kindUint, true
	case reflect.Uint8:
		return kindUint8, true
	case reflect.Uint16:
		return kindUint16, true
	case reflect.Uint32:
		return kindUint32, true
	case reflect.Uint64:
		return kindUint64, true
	case reflect.Float32:
		return kindFloat32, true
	case reflect.Float64:
		return kindFloat64, true
	case reflect.String:
		return kindString, true
	default:
		return kindNone, false
	}
}

func (k scalarKind) wireType() protowire.Type {
	switch k {
	case kindFloat32, kindFloat64:
		return protowire.Fixed64Type
	case kindString, kindUUID, kindURL, kindURLPtr, kindTime:
		return protowire.BytesType
	default:
		return protowire.VarintType
	}
}

// Field numbers of the stored format.
const (
	fieldEntry protowire.Number = 1

	fieldKey     protowire.Number = 1
	fieldShape   protowire.Number = 2
	fieldKind    protowire.Number = 3
	fieldValue   protowire.Number = 4
	fieldNil     protowire.Number = 5
	fieldMapItem protowire.Number = 6
)

var errUnexpectedWireType = errors.New("unexpected wire type")

// encode writes values as a sequence of entry records in key order.
// Values must have passed ensureSerializable.
func encode(values map[string]any) ([]byte, error) {
	var b []byte
	for _, key := range slices.Sorted(maps.Keys(values)) {
		entry, err := encodeEntry(key, values[key])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", key, err)
		}
		b = protowire.AppendTag(b, fieldEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b, nil
}

func encodeEntry(key string, value any) ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldKey, protowire.BytesType)
	b = protowire.AppendString(b, key)

	if value == nil {
		b = protowire.AppendTag(b, fieldNil, protowire.VarintType)
		return protowire.AppendVarint(b, protowire.EncodeBool(true)), nil
	}

	v := reflect.ValueOf(value)
	shape := ShapeOf(v.Type())
	elem := v.Type()
	if shape != ShapePrimitive {
		elem = elem.Elem()
	}
	kind, ok := scalarKindOf(elem)
	if shape == ShapeUnsafe || !ok {
		return nil, fmt.Errorf("%w: %s", ErrSerializationRejected, v.Type())
	}

	b = protowire.AppendTag(b, fieldShape, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(shape))
	b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(kind))

	var err error
	switch shape {
	case ShapePrimitive:
		b, err = appendScalar(b, fieldValue, kind, v)
	case ShapeSlice, ShapeArray:
		if shape == ShapeSlice && v.IsNil() {
			b = protowire.AppendTag(b, fieldNil, protowire.VarintType)
			b = protowire.AppendVarint(b, protowire.EncodeBool(true))
			break
		}
		for i := range v.Len() {
			if b, err = appendScalar(b, fieldValue, kind, v.Index(i)); err != nil {
				break
			}
		}
	case ShapeMap:
		if v.IsNil() {
			b = protowire.AppendTag(b, fieldNil, protowire.VarintType)
			b = protowire.AppendVarint(b, protowire.EncodeBool(true))
			break
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(x, y reflect.Value) int {
			return strings.Compare(x.String(), y.String())
		})
		for _, k := range keys {
			var item []byte
			item = protowire.AppendTag(item, fieldKey, protowire.BytesType)
			item = protowire.AppendString(item, k.String())
			if item, err = appendScalar(item, fieldValue, kind, v.MapIndex(k)); err != nil {
				break
			}
			b = protowire.AppendTag(b, fieldMapItem, protowire.BytesType)
			b = protowire.AppendBytes(b, item)
		}
	}
	return b, err
}

// appendScalar appends v as field num. A nil *url.URL is stored as an empty
// payload; a present one is prefixed with a marker byte.
func appendScalar(b []byte, num protowire.Number, kind scalarKind, v reflect.Value) ([]byte, error) {
	b = protowire.AppendTag(b, num, kind.wireType())

	switch kind {
	case kindBool:
		return protowire.AppendVarint(b, protowire.EncodeBool(v.Bool())), nil
	case kindInt, kindInt8, kindInt16, kindInt32, kindInt64, kindDuration:
		return protowire.AppendVarint(b, protowire.EncodeZigZag(v.Int())), nil
	case kindUint, kindUint8, kindUint16, kindUint32, kindUint64:
		return protowire.AppendVarint(b, v.Uint()), nil
	case kindFloat32, kindFloat64:
		return protowire.AppendFixed64(b, math.Float64bits(v.Float())), nil
	case kindString:
		return protowire.AppendString(b, v.String()), nil
	case kindUUID:
		id := v.Interface().(uuid.UUID)
		return protowire.AppendBytes(b, id[:]), nil
	case kindURL:
		u := v.Interface().(url.URL)
		data, err := u.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return protowire.AppendBytes(b, data), nil
	case kindURLPtr:
		if v.IsNil() {
			return protowire.AppendBytes(b, nil), nil
		}
		data, err := v.Interface().(*url.URL).MarshalBinary()
		if err != nil {
			return nil, err
		}
		return protowire.AppendBytes(b, append([]byte{1}, data...)), nil
	case kindTime:
		data, err := v.Interface().(time.Time).MarshalBinary()
		if err != nil {
			return nil, err
		}
		return protowire.AppendBytes(b, data), nil
	default:
		return nil, fmt.Errorf("unknown scalar kind %d", kind)
	}
}

// rawField is a field value not yet decoded.
type rawField struct {
	typ  protowire.Type
	data []byte
}

type rawEntry struct {
	key      string
	shape    Shape
	kind     scalarKind
	isNil    bool
	values   []rawField
	mapItems [][]byte
}

// decode parses the output of encode. Any malformed input yields ErrCorruptPayload.
func decode(b []byte) (map[string]any, error) {
	values := make(map[string]any)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, corrupt(protowire.ParseError(n))
		}
		b = b[n:]

		if num != fieldEntry || typ != protowire.BytesType {
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, corrupt(protowire.ParseError(m))
			}
			b = b[m:]
			continue
		}

		data, m := protowire.ConsumeBytes(b)
		if m < 0 {
			return nil, corrupt(protowire.ParseError(m))
		}
		b = b[m:]

		key, value, err := decodeEntry(data)
		if err != nil {
			return nil, corrupt(err)
		}
		values[key] = value
	}
	return values, nil
}

func corrupt(err error) error {
	return errors.Join(ErrCorruptPayload, err)
}

func decodeEntry(b []byte) (string, any, error) {
	var e rawEntry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", nil, protowire.ParseError(n)
		}
		b = b[n:]

		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return "", nil, protowire.ParseError(m)
		}
		field := rawField{typ: typ, data: b[:m]}
		b = b[m:]

		var err error
		switch num {
		case fieldKey:
			e.key, err = field.string()
		case fieldShape:
			var v uint64
			v, err = field.varint()
			e.shape = Shape(v)
		case fieldKind:
			var v uint64
			v, err = field.varint()
			e.kind = scalarKind(v)
		case fieldNil:
			var v uint64
			v, err = field.varint()
			e.isNil = protowire.DecodeBool(v)
		case fieldValue:
			e.values = append(e.values, field)
		case fieldMapItem:
			var item []byte
			item, err = field.bytes()
			e.mapItems = append(e.mapItems, item)
		}
		if err != nil {
			return "", nil, err
		}
	}

	value, err := e.value()
	if err != nil {
		return "", nil, fmt.Errorf("entry %q: %w", e.key, err)
	}
	return e.key, value, nil
}

func (e *rawEntry) value() (any, error) {
	if e.isNil && e.shape == ShapeUnsafe {
		return nil, nil
	}

	elem, ok := kindTypes[e.kind]
	if !ok {
		return nil, fmt.Errorf("unknown scalar kind %d", e.kind)
	}

	switch e.shape {
	case ShapePrimitive:
		if len(e.values) != 1 {
			return nil, fmt.Errorf("primitive with %d values", len(e.values))
		}
		v, err := decodeScalar(e.kind, e.values[0])
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil

	case ShapeSlice:
		t := reflect.SliceOf(elem)
		if e.isNil {
			return reflect.Zero(t).Interface(), nil
		}
		s := reflect.MakeSlice(t, len(e.values), len(e.values))
		for i, f := range e.values {
			v, err := decodeScalar(e.kind, f)
			if err != nil {
				return nil, err
			}
			s.Index(i).Set(v)
		}
		return s.Interface(), nil

	case ShapeArray:
		a := reflect.New(reflect.ArrayOf(len(e.values), elem)).Elem()
		for i, f := range e.values {
			v, err := decodeScalar(e.kind, f)
			if err != nil {
				return nil, err
			}
			a.Index(i).Set(v)
		}
		return a.Interface(), nil

	case ShapeMap:
		t := reflect.MapOf(reflect.TypeFor[string](), elem)
		if e.isNil {
			return reflect.Zero(t).Interface(), nil
		}
		m := reflect.MakeMapWithSize(t, len(e.mapItems))
		for _, item := range e.mapItems {
			k, v, err := decodeMapItem(e.kind, item)
			if err != nil {
				return nil, err
			}
			m.SetMapIndex(reflect.ValueOf(k), v)
		}
		return m.Interface(), nil

	default:
		return nil, fmt.Errorf("unknown shape %d", e.shape)
	}
}

func decodeMapItem(kind scalarKind, b []byte) (string, reflect.Value, error) {
	var (
		key   string
		value rawField
		found bool
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", reflect.Value{}, protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return "", reflect.Value{}, protowire.ParseError(m)
		}
		field := rawField{typ: typ, data: b[:m]}
		b = b[m:]

		switch num {
		case fieldKey:
			var err error
			if key, err = field.string(); err != nil {
				return "", reflect.Value{}, err
			}
		case fieldValue:
			value, found = field, true
		}
	}
	if !found {
		return "", reflect.Value{}, fmt.Errorf("map item %q without value", key)
	}
	v, err := decodeScalar(kind, value)
	return key, v, err
}

func decodeScalar(kind scalarKind, f rawField) (reflect.Value, error) {
	if f.typ != kind.wireType() {
		return reflect.Value{}, errUnexpectedWireType
	}
	t := kindTypes[kind]

	switch kind {
	case kindBool:
		v, err := f.varint()
		return reflect.ValueOf(protowire.DecodeBool(v)), err
	case kindInt, kindInt8, kindInt16, kindInt32, kindInt64, kindDuration:
		v, err := f.varint()
		out := reflect.New(t).Elem()
		out.SetInt(protowire.DecodeZigZag(v))
		return out, err
	case kindUint, kindUint8, kindUint16, kindUint32, kindUint64:
		v, err := f.varint()
		out := reflect.New(t).Elem()
		out.SetUint(v)
		return out, err
	case kindFloat32, kindFloat64:
		v, n := protowire.ConsumeFixed64(f.data)
		if n < 0 {
			return reflect.Value{}, protowire.ParseError(n)
		}
		out := reflect.New(t).Elem()
		out.SetFloat(math.Float64frombits(v))
		return out, nil
	case kindString:
		s, err := f.string()
		return reflect.ValueOf(s), err
	case kindUUID:
		data, err := f.bytes()
		if err != nil {
			return reflect.Value{}, err
		}
		id, err := uuid.FromBytes(data)
		return reflect.ValueOf(id), err
	case kindURL:
		data, err := f.bytes()
		if err != nil {
			return reflect.Value{}, err
		}
		var u url.URL
		if err := u.UnmarshalBinary(data); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u), nil
	case kindURLPtr:
		data, err := f.bytes()
		if err != nil {
			return reflect.Value{}, err
		}
		if len(data) == 0 {
			return reflect.Zero(urlPtrType), nil
		}
		u := new(url.URL)
		if err := u.UnmarshalBinary(data[1:]); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u), nil
	case kindTime:
		data, err := f.bytes()
		if err != nil {
			return reflect.Value{}, err
		}
		var ts time.Time
		if err := ts.UnmarshalBinary(data); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(ts), nil
	default:
		return reflect.Value{}, fmt.Errorf("unknown scalar kind %d", kind)
	}
}

func (f rawField) varint() (uint64, error) {
	if f.typ != protowire.VarintType {
		return 0, errUnexpectedWireType
	}
	v, n := protowire.ConsumeVarint(f.data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func (f rawField) bytes() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, errUnexpectedWireType
	}
	v, n := protowire.ConsumeBytes(f.data)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	return v, nil
}

func (f rawField) string() (string, error) {
	b, err := f.bytes()
	return string(b), err
}
