package bind

import (
	"fmt"

	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/errors"
)

// Values binds a flat map of placeholder name (without its leading
// colon) to raw Go scalar value onto binder. It exists alongside Bind
// for filter (":_field") placeholders: between/in/!in can expand one
// filter field into several placeholders (":_age1", ":_age2", …), which
// does not fit a one-struct-field-per-placeholder walk the way model
// binding does, so filter values are supplied directly by name instead
// of through a second shape-walking pass.
func Values(binder *engine.Binder, values map[string]any) error {
	for name, v := range values {
		if err := bindRaw(binder, name, v); err != nil {
			return err
		}
	}
	return nil
}

func bindRaw(binder *engine.Binder, name string, v any) error {
	switch val := v.(type) {
	case nil:
		return binder.BindNull(name)
	case int64:
		return binder.BindInt64(name, val)
	case int:
		return binder.BindInt64(name, int64(val))
	case int32:
		return binder.BindInt32(name, val)
	case float64:
		return binder.BindDouble(name, val)
	case bool:
		if val {
			return binder.BindInt64(name, 1)
		}
		return binder.BindInt64(name, 0)
	case string:
		return binder.BindText(name, val)
	case []byte:
		return binder.BindBlob(name, val)
	default:
		return errors.NewField(errors.ErrMismatchedType, name, fmt.Sprintf("unsupported filter value type %T", v))
	}
}
