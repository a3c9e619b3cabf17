// Package crud implements the CRUD facade (C7): the runtime owner of one
// prepared statement, orchestrating bind → step → optional read the way
// a builder's output is actually executed.
package crud

import (
	"context"

	"github.com/FocuswithJustin/quill/bind"
	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/internal/logging"
	"github.com/FocuswithJustin/quill/shape"
)

// CRUD owns exactly one prepared statement, per §4.7's "no aliasing"
// resource rule.
type CRUD struct {
	handle *engine.Handle
	stmt   *engine.Stmt
	model  *shape.Shape // bind (":field") shape; nil for statements with no bind positions
	view   *shape.Shape // read (view) shape; nil for statements that produce no rows
}

// Prepare compiles sqlText against handle and returns a CRUD instance.
// model describes the statement's ":field" bind positions (pass nil for
// Find/Count/Delete, which have none); view describes the result set
// (pass nil for INSERT/UPDATE/DELETE, which produce none).
func Prepare(ctx context.Context, handle *engine.Handle, sqlText string, model, view *shape.Shape) (*CRUD, error) {
	stmt, err := handle.Prepare(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	return &CRUD{handle: handle, stmt: stmt, model: model, view: view}, nil
}

// Bind applies the bind engine to modelValue (if this statement has
// ":field" positions) and the raw filter placeholder map to any ":_field"
// positions, without stepping.
func (c *CRUD) Bind(modelValue any, filterValues map[string]any) (*engine.Binder, error) {
	var binder *engine.Binder
	if c.model != nil && modelValue != nil {
		b, err := bind.Bind(c.stmt, c.model, modelValue)
		if err != nil {
			return nil, err
		}
		binder = b
	} else {
		binder = c.stmt.NewBinder()
	}
	if len(filterValues) > 0 {
		if err := bind.Values(binder, filterValues); err != nil {
			return nil, err
		}
	}
	return binder, nil
}

// Exec binds and steps once, for statements that produce no rows
// (INSERT/UPDATE/DELETE).
func (c *CRUD) Exec(ctx context.Context, modelValue any, filterValues map[string]any) (engine.Result, error) {
	binder, err := c.Bind(modelValue, filterValues)
	if err != nil {
		return engine.Result{}, err
	}
	return binder.Exec(ctx)
}

// Begin/Commit/Rollback execute the corresponding SQL keywords through
// the single-shot exec path.
func (c *CRUD) Begin(ctx context.Context) error    { return c.handle.Begin(ctx) }
func (c *CRUD) Commit(ctx context.Context) error   { return c.handle.Commit(ctx) }
func (c *CRUD) Rollback(ctx context.Context) error { return c.handle.Rollback(ctx) }

// Destroy finalizes the held statement; logs but does not raise on
// close-time errors, matching engine.Handle.Close's teardown semantics.
func (c *CRUD) Destroy() {
	if err := c.stmt.Finalize(); err != nil {
		logging.EngineError("crud destroy", err)
	}
}
