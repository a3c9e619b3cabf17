package crud

import (
	"context"

	"github.com/FocuswithJustin/quill/extract"
)

// ReadOne binds c's statement and reads at most one row into a freshly
// zeroed V, matching §4.7's bind→step→read(Row) path for statements
// expected to produce zero or one row (a Find filtered on the uuid, for
// instance). Any further rows are left unread; the statement stays
// prepared. It reports ok=false, nil error when the statement produces
// no rows.
//
// This is a package-level function rather than a method because Go
// does not allow a method to introduce its own type parameter
// independent of its receiver's.
func ReadOne[V any](ctx context.Context, c *CRUD, modelValue any, filterValues map[string]any) (V, bool, error) {
	var zero V
	binder, err := c.Bind(modelValue, filterValues)
	if err != nil {
		return zero, false, err
	}
	rows, err := binder.Step(ctx)
	if err != nil {
		return zero, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return zero, false, rows.Err()
	}
	var out V
	if err := extract.Into(rows, c.view, &out); err != nil {
		return zero, false, err
	}
	return out, true, nil
}

// ReadMany binds c's statement and reads every produced row into a
// slice of V, matching §4.7's bind→step→read(Row)* path for the general
// Find case.
func ReadMany[V any](ctx context.Context, c *CRUD, modelValue any, filterValues map[string]any) ([]V, error) {
	binder, err := c.Bind(modelValue, filterValues)
	if err != nil {
		return nil, err
	}
	rows, err := binder.Step(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []V
	for rows.Next() {
		var v V
		if err := extract.Into(rows, c.view, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Free is a no-op acknowledging the end of a read value's useful life;
// Go's garbage collector reclaims it, the way engine.RowBuffer.Destroy
// documents its own no-op teardown.
func Free[V any](v V) {}
