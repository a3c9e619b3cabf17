package shape

import (
	"fmt"
	"reflect"

	"github.com/FocuswithJustin/quill/errors"
)

// Shape is the analyzed field-by-field description of a Go struct used
// as a model, view, or filter in a Quill operation.
type Shape struct {
	GoType  reflect.Type
	Fields  []Field
	byLabel map[string]*Field
}

// Field looks up a field by its label.
func (s *Shape) Field(label string) (*Field, bool) {
	f, ok := s.byLabel[label]
	return f, ok
}

// Labels returns the shape's field labels in declaration order.
func (s *Shape) Labels() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Label
	}
	return out
}

// Analyze reflects over v's Go type (a struct or pointer to struct) and
// builds its Shape, consulting and populating the process-lifetime
// reflect.Type cache. v is only ever inspected for its type; its field
// values are ignored.
func Analyze(v any) (*Shape, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, errors.Wrap(errors.ErrInterfaceMisuse, "shape.Analyze: nil value")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInterfaceMisuse, "shape.Analyze: %s is not a struct", t)
	}

	if cached, ok := shapeCache.Get(t); ok {
		return cached, nil
	}

	shape, err := analyzeStruct(t)
	if err != nil {
		return nil, err
	}
	shapeCache.Put(t, shape)
	return shape, nil
}

func analyzeStruct(t reflect.Type) (*Shape, error) {
	shape := &Shape{GoType: t, byLabel: make(map[string]*Field)}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		label, ok := sf.Tag.Lookup("quill")
		if !ok || label == "" || label == "-" {
			continue
		}
		if _, dup := shape.byLabel[label]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidNamingConvention, "shape %s: duplicate field label %q", t, label)
		}

		kind, optional, valueType, err := analyzeFieldType(sf.Type)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrMismatchedType, "shape %s, field %q: %v", t, label, err)
		}

		field := Field{
			Label:     label,
			Kind:      kind,
			Optional:  optional,
			Index:     sf.Index,
			GoType:    sf.Type,
			ValueType: valueType,
		}
		shape.Fields = append(shape.Fields, field)
		fp := &shape.Fields[len(shape.Fields)-1]
		shape.byLabel[label] = fp
	}

	return shape, nil
}

// analyzeFieldType classifies a single struct field's Go type, unwrapping
// at most one layer of Optional[T].
func analyzeFieldType(t reflect.Type) (kind Kind, optional bool, valueType reflect.Type, err error) {
	if t.Kind() == reflect.Struct {
		if zero, ok := reflect.Zero(t).Interface().(optionalType); ok {
			optional = true
			t = zero.innerType()
			if t == nil {
				return 0, false, nil, fmt.Errorf("Optional[T] with untyped T")
			}
			if _, again := reflect.Zero(t).Interface().(optionalType); again {
				return 0, false, nil, fmt.Errorf("Optional[Optional[T]] is not a valid descriptor")
			}
		}
	}

	switch t.Kind() {
	case reflect.Int64, reflect.Int:
		return KindInt, optional, nil, nil
	case reflect.Bool:
		return KindBool, optional, nil, nil
	case reflect.Float64, reflect.Float32:
		return KindFloat, optional, nil, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindSlice, optional, nil, nil
		}
		return 0, false, nil, fmt.Errorf("unsupported slice element type %s", t.Elem())
	case reflect.Struct:
		zero := reflect.Zero(t).Interface()
		d, ok := zero.(descriptor)
		if !ok {
			return 0, false, nil, fmt.Errorf("unrecognized field type %s", t)
		}
		k := d.quillKind()
		vt, verr := descriptorValueType(t, k)
		if verr != nil {
			return 0, false, nil, verr
		}
		return k, optional, vt, nil
	default:
		return 0, false, nil, fmt.Errorf("unsupported field type %s", t)
	}
}

// descriptorValueType recovers the payload type carried by a CastInto/Any
// wrapper: the Enum implementation for the enum descriptors, or the
// record type R for the JSON descriptors.
func descriptorValueType(t reflect.Type, k Kind) (reflect.Type, error) {
	valueField, ok := t.FieldByName("Value")
	if !ok {
		return nil, fmt.Errorf("descriptor type %s has no Value field", t)
	}
	switch k {
	case KindCastIntoIntEnum, KindCastIntoTextEnum, KindAnyEnum:
		if !valueField.Type.Implements(reflect.TypeOf((*Enum)(nil)).Elem()) {
			return nil, fmt.Errorf("descriptor %s: Value field does not implement shape.Enum", t)
		}
		return valueField.Type, nil
	case KindCastIntoTextJSON, KindAnyJSON:
		return valueField.Type, nil
	default:
		return nil, nil
	}
}

// ValidateModel enforces §3's model-shape invariants: every field is a
// raw scalar or CastInto annotation, and exactly one non-optional field
// labelled "uuid" uses CastInto<Blob,bytes>.
func ValidateModel(s *Shape) error {
	uuidSeen := false
	for _, f := range s.Fields {
		switch f.Kind {
		case KindInt, KindBool, KindFloat,
			KindCastIntoIntEnum, KindCastIntoTextEnum, KindCastIntoTextJSON,
			KindCastIntoTextBytes, KindCastIntoBlobBytes:
			// permitted in a model shape
		default:
			return errors.NewShape(errors.ErrMismatchedType, s.GoType.String(), f.Label, "model fields must be raw scalars or CastInto annotations")
		}
		if f.Label == "uuid" {
			uuidSeen = true
			if f.Optional {
				return errors.NewShape(errors.ErrMismatchedConstraint, s.GoType.String(), "uuid", "the uuid field must not be optional")
			}
			if f.Kind != KindCastIntoBlobBytes {
				return errors.NewShape(errors.ErrMismatchedConstraint, s.GoType.String(), "uuid", "the uuid field must use CastInto<Blob,bytes>")
			}
		}
	}
	if !uuidSeen {
		return errors.NewShape(errors.ErrMismatchedConstraint, s.GoType.String(), "uuid", "model shape is missing a required uuid field")
	}
	return nil
}

// ValidateView enforces §3's view-shape invariant: every field is a raw
// scalar or an Any<T> annotation.
func ValidateView(s *Shape) error {
	for _, f := range s.Fields {
		switch f.Kind {
		case KindInt, KindBool, KindFloat, KindSlice, KindAnyEnum, KindAnyJSON:
			// permitted in a view shape
		default:
			return errors.NewShape(errors.ErrMismatchedType, s.GoType.String(), f.Label, "view fields must be raw scalars or Any<T> annotations")
		}
	}
	return nil
}

// ValidateFilter enforces §3's filter-shape invariant: every field is a
// raw scalar, never optional, never a CastInto/Any wrapper.
func ValidateFilter(s *Shape) error {
	for _, f := range s.Fields {
		if !f.IsScalar() {
			return errors.NewShape(errors.ErrMismatchedType, s.GoType.String(), f.Label, "filter fields must be raw scalars")
		}
		if f.Optional {
			return errors.NewShape(errors.ErrMismatchedConstraint, s.GoType.String(), f.Label, "filter fields must not be optional")
		}
	}
	return nil
}
