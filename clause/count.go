package clause

import (
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// CountBuilder assembles a SELECT COUNT(*) statement: an optional when,
// then statement.
type CountBuilder struct {
	filter    *shape.Shape
	container string
	seq       int
	sql       string
	err       error
}

// NewCount starts a Count builder over container.
func NewCount(filter *shape.Shape, container string) *CountBuilder {
	return &CountBuilder{filter: filter, container: container, seq: 1, sql: "SELECT COUNT(*) FROM " + container}
}

func (b *CountBuilder) fail(reason string) *CountBuilder {
	if b.err == nil {
		b.err = errors.NewShape(errors.ErrInvalidFunctionChain, b.container, "", reason)
	}
	return b
}

// When appends a WHERE clause from tokens joined by a single space.
func (b *CountBuilder) When(tokens ...Token) *CountBuilder {
	if b.err != nil {
		return b
	}
	if b.seq != 1 {
		return b.fail("when called out of order")
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	b.sql += "\nWHERE " + strings.Join(parts, " ")
	b.seq = 2
	return b
}

// Statement terminates the builder, appending the trailing semicolon.
func (b *CountBuilder) Statement() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if strings.HasSuffix(b.sql, ";") {
		return "", errors.NewShape(errors.ErrInvalidFunctionChain, b.container, "", "statement already terminated")
	}
	return b.sql + ";", nil
}
