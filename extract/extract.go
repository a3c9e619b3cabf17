// Package extract walks a view shape and a result-set cursor's current
// row, populating a destination Go value field by field, the C6 extract
// engine of the specification.
package extract

import (
	"encoding/json"
	"reflect"

	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// Into populates dest (a pointer to a view-shaped struct) from rows'
// current row, matching columns to fields by label and dispatching on
// both the engine's column tag and the field descriptor, per §4.6.
func Into(rows *engine.Rows, viewShape *shape.Shape, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Wrap(errors.ErrInterfaceMisuse, "extract: dest must be a non-nil pointer")
	}
	rv = rv.Elem()

	labels := rows.ColumnLabels()
	if len(labels) != len(viewShape.Fields) {
		return errors.Wrapf(errors.ErrMismatchedFields, "row has %d columns, view %s has %d fields", len(labels), viewShape.GoType, len(viewShape.Fields))
	}

	for i, label := range labels {
		f, ok := viewShape.Field(label)
		if !ok {
			return errors.NewField(errors.ErrMismatchedFields, label, "column not present on view shape")
		}
		if err := extractField(rows, i, rv, *f); err != nil {
			return err
		}
	}
	return nil
}

func extractField(rows *engine.Rows, i int, rv reflect.Value, f shape.Field) error {
	tag := rows.ColumnType(i)

	if tag == engine.TagNull {
		if !f.Optional {
			return errors.NewField(errors.ErrUnexpectedNullValue, f.Label, "NULL column read against a non-optional field")
		}
		rv.FieldByIndex(f.Index).FieldByName("Valid").SetBool(false)
		return nil
	}

	target := rv.FieldByIndex(f.Index)
	if f.Optional {
		target.FieldByName("Valid").SetBool(true)
		target = target.FieldByName("Value")
	}

	switch f.Kind {
	case shape.KindBool:
		if tag != engine.TagInteger {
			return errors.NewField(errors.ErrMismatchedType, f.Label, "expected Integer tag for Bool field")
		}
		if rows.ColumnBytes(i) != 1 {
			return errors.NewField(errors.ErrMismatchedSize, f.Label, "Bool field requires a single-byte integer payload")
		}
		v, _ := rows.Int64(i)
		switch v {
		case 0:
			target.SetBool(false)
		case 1:
			target.SetBool(true)
		default:
			return errors.NewField(errors.ErrMismatchedValue, f.Label, "Bool column holds neither 0 nor 1")
		}
		return nil

	case shape.KindInt:
		if tag != engine.TagInteger {
			return errors.NewField(errors.ErrMismatchedType, f.Label, "expected Integer tag for Int field")
		}
		v, _ := rows.Int64(i)
		target.SetInt(v)
		return nil

	case shape.KindFloat:
		if tag != engine.TagFloat {
			return errors.NewField(errors.ErrMismatchedType, f.Label, "expected Float tag for Float field")
		}
		v, _ := rows.Float64(i)
		target.SetFloat(v)
		return nil

	case shape.KindSlice:
		if tag != engine.TagText && tag != engine.TagBlob {
			return errors.NewField(errors.ErrMismatchedType, f.Label, "expected Text or Blob tag for Slice field")
		}
		b, _ := rows.Blob(i)
		target.SetBytes(append([]byte(nil), b...))
		return nil

	case shape.KindAnyEnum:
		return extractAnyEnum(rows, i, tag, target.FieldByName("Value"), f)

	case shape.KindAnyJSON:
		if tag != engine.TagText {
			return errors.NewField(errors.ErrMismatchedType, f.Label, "expected Text tag for Any<JSON> field")
		}
		txt, _ := rows.Text(i)
		value := target.FieldByName("Value")
		ptr := reflect.New(value.Type())
		if err := json.Unmarshal([]byte(txt), ptr.Interface()); err != nil {
			return errors.NewField(errors.ErrMismatchedValue, f.Label, "json decode failed: "+err.Error())
		}
		value.Set(ptr.Elem())
		return nil

	default:
		return errors.NewField(errors.ErrMismatchedType, f.Label, "unsupported field kind for extract: "+f.Kind.String())
	}
}

func extractAnyEnum(rows *engine.Rows, i int, tag engine.Tag, target reflect.Value, f shape.Field) error {
	factory, err := shape.LookupEnumFactory(f.ValueType)
	if err != nil {
		return errors.NewField(errors.ErrMismatchedType, f.Label, err.Error())
	}

	var en shape.Enum
	switch tag {
	case engine.TagInteger:
		v, _ := rows.Int64(i)
		en, err = factory.FromOrdinal(int(v))
	case engine.TagText:
		txt, _ := rows.Text(i)
		en, err = factory.FromName(txt)
	default:
		return errors.NewField(errors.ErrMismatchedType, f.Label, "Any<Enum> requires an Integer or Text tag")
	}
	if err != nil {
		return errors.NewField(errors.ErrMismatchedValue, f.Label, err.Error())
	}
	target.Set(reflect.ValueOf(en))
	return nil
}
