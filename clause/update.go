package clause

import (
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// Gate selects Update/Delete's safety constraint: Exact requires a when()
// clause to have been built, All requires that none was — this is what
// prevents an accidental full-table UPDATE/DELETE.
type Gate int

const (
	Exact Gate = iota
	All
)

// UpdateBuilder assembles an UPDATE statement: SET list from model's
// fields, an optional when, gated by Exact/All.
type UpdateBuilder struct {
	model     *shape.Shape
	filter    *shape.Shape
	container string
	gate      Gate
	whenUsed  bool
	sql       string
	err       error
}

// NewUpdate starts an Update builder. gate is checked at Statement time
// against whether When was called.
func NewUpdate(model, filter *shape.Shape, container string, gate Gate) *UpdateBuilder {
	labels := model.Labels()
	sets := make([]string, len(labels))
	for i, l := range labels {
		sets[i] = l + " = :" + l
	}
	return &UpdateBuilder{
		model:     model,
		filter:    filter,
		container: container,
		gate:      gate,
		sql:       "UPDATE " + container + " SET " + strings.Join(sets, ", "),
	}
}

func (b *UpdateBuilder) fail(reason string) *UpdateBuilder {
	if b.err == nil {
		b.err = errors.NewShape(errors.ErrInvalidFunctionChain, b.container, "", reason)
	}
	return b
}

// When appends a WHERE clause from filter tokens.
func (b *UpdateBuilder) When(tokens ...Token) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if b.whenUsed {
		return b.fail("when called more than once")
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	b.sql += "\nWHERE " + strings.Join(parts, " ")
	b.whenUsed = true
	return b
}

// Statement terminates the builder, enforcing the Exact/All gate and
// appending the trailing semicolon.
func (b *UpdateBuilder) Statement() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.gate == Exact && !b.whenUsed {
		return "", errors.NewShape(errors.ErrMismatchedConstraint, b.container, "", "Exact gate requires a when() clause")
	}
	if b.gate == All && b.whenUsed {
		return "", errors.NewShape(errors.ErrMismatchedConstraint, b.container, "", "All gate forbids a when() clause")
	}
	return b.sql + ";", nil
}
