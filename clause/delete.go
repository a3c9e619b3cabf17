package clause

import (
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// DeleteBuilder assembles a DELETE statement, gated the same way as
// UpdateBuilder.
type DeleteBuilder struct {
	filter    *shape.Shape
	container string
	gate      Gate
	whenUsed  bool
	sql       string
	err       error
}

// NewDelete starts a Delete builder.
func NewDelete(filter *shape.Shape, container string, gate Gate) *DeleteBuilder {
	return &DeleteBuilder{filter: filter, container: container, gate: gate, sql: "DELETE FROM " + container}
}

func (b *DeleteBuilder) fail(reason string) *DeleteBuilder {
	if b.err == nil {
		b.err = errors.NewShape(errors.ErrInvalidFunctionChain, b.container, "", reason)
	}
	return b
}

// When appends a WHERE clause from filter tokens.
func (b *DeleteBuilder) When(tokens ...Token) *DeleteBuilder {
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

// Statement terminates the builder, enforcing the Exact/All gate.
func (b *DeleteBuilder) Statement() (string, error) {
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
