// Package bind walks a model/update-shaped Go value and binds its
// fields onto a compiled statement, the C5 bind engine of the
// specification.
package bind

import (
	"encoding/json"
	"reflect"

	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// Bind walks value against shapeDef (the model or update shape used to
// build stmt) and returns a Binder with every bind (":field") placeholder
// set, per §4.5. The precondition check — the statement's bind
// placeholder count must equal the shape's field count — runs before any
// dispatch; filter (":_field") placeholders coexisting in the same
// statement are not counted.
func Bind(stmt *engine.Stmt, shapeDef *shape.Shape, value any) (*engine.Binder, error) {
	modelParams := 0
	for _, name := range stmt.ParameterNames() {
		if len(name) == 0 || name[0] != '_' {
			modelParams++
		}
	}
	if modelParams != len(shapeDef.Fields) {
		return nil, errors.Wrapf(errors.ErrMismatchedFields, "statement expects %d bind placeholders, shape %s has %d fields", modelParams, shapeDef.GoType, len(shapeDef.Fields))
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	binder := stmt.NewBinder()
	for _, f := range shapeDef.Fields {
		if err := bindField(binder, rv, f); err != nil {
			return nil, err
		}
	}
	return binder, nil
}

func bindField(binder *engine.Binder, rv reflect.Value, f shape.Field) error {
	cur := rv.FieldByIndex(f.Index)

	if f.Optional {
		valid := cur.FieldByName("Valid").Bool()
		if !valid {
			return binder.BindNull(f.Label)
		}
		cur = cur.FieldByName("Value")
	}

	switch f.Kind {
	case shape.KindInt:
		return binder.BindInt64(f.Label, cur.Int())
	case shape.KindBool:
		var v int64
		if cur.Bool() {
			v = 1
		}
		return binder.BindInt64(f.Label, v)
	case shape.KindFloat:
		return binder.BindDouble(f.Label, cur.Float())
	case shape.KindCastIntoIntEnum:
		en, err := enumValue(cur, f)
		if err != nil {
			return err
		}
		return binder.BindInt32(f.Label, int32(en.Ordinal()))
	case shape.KindCastIntoTextEnum:
		en, err := enumValue(cur, f)
		if err != nil {
			return err
		}
		return binder.BindText(f.Label, en.VariantName())
	case shape.KindCastIntoTextBytes:
		return binder.BindText(f.Label, string(cur.FieldByName("Value").Bytes()))
	case shape.KindCastIntoBlobBytes:
		return binder.BindBlob(f.Label, cur.FieldByName("Value").Bytes())
	case shape.KindCastIntoTextJSON:
		payload := cur.FieldByName("Value").Interface()
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.NewField(errors.ErrMismatchedValue, f.Label, "json encode failed: "+err.Error())
		}
		return binder.BindText(f.Label, string(data))
	default:
		return errors.NewField(errors.ErrMismatchedType, f.Label, "unsupported field kind for bind: "+f.Kind.String())
	}
}

func enumValue(cur reflect.Value, f shape.Field) (shape.Enum, error) {
	v := cur.FieldByName("Value").Interface()
	en, ok := v.(shape.Enum)
	if !ok {
		return nil, errors.NewField(errors.ErrMismatchedType, f.Label, "Value does not implement shape.Enum")
	}
	return en, nil
}
