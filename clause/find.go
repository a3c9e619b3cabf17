package clause

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// Direction is an ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Ordering is one ORDER BY term.
type Ordering struct {
	Field     string
	Direction Direction
}

// OrderAsc builds an ascending ordering term.
func OrderAsc(field string) Ordering { return Ordering{Field: field, Direction: Asc} }

// OrderDesc builds a descending ordering term.
func OrderDesc(field string) Ordering { return Ordering{Field: field, Direction: Desc} }

// FindBuilder assembles a SELECT statement via the ordinal state machine
// of §4.4: dist, when, sort, limit, skip, statement.
type FindBuilder struct {
	view      *shape.Shape
	filter    *shape.Shape
	container string
	seq       int
	sql       string
	err       error
}

// NewFind starts a Find builder over view's labels. Sort validates its
// field references against both view and filter; When takes tokens
// already validated by Filter.
func NewFind(view, filter *shape.Shape, container string) *FindBuilder {
	return &FindBuilder{
		view:      view,
		filter:    filter,
		container: container,
		seq:       1,
		sql:       "SELECT " + strings.Join(view.Labels(), ", ") + " FROM " + container,
	}
}

func (b *FindBuilder) fail(reason string) *FindBuilder {
	if b.err == nil {
		b.err = errors.NewShape(errors.ErrInvalidFunctionChain, b.view.GoType.String(), "", reason)
	}
	return b
}

// Dist replaces SELECT with SELECT DISTINCT; valid only before When.
func (b *FindBuilder) Dist() *FindBuilder {
	if b.err != nil {
		return b
	}
	if b.seq != 1 {
		return b.fail("dist must be the first step")
	}
	b.sql = strings.Replace(b.sql, "SELECT ", "SELECT DISTINCT ", 1)
	return b
}

// When appends a WHERE clause from tokens joined by a single space.
func (b *FindBuilder) When(tokens ...Token) *FindBuilder {
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

func (b *FindBuilder) fieldExists(field string) bool {
	if _, ok := b.view.Field(field); ok {
		return true
	}
	if b.filter != nil {
		if _, ok := b.filter.Field(field); ok {
			return true
		}
	}
	return false
}

// Sort appends an ORDER BY clause, preserving caller order.
func (b *FindBuilder) Sort(orderings ...Ordering) *FindBuilder {
	if b.err != nil {
		return b
	}
	if b.seq > 2 {
		return b.fail("sort called out of order")
	}
	parts := make([]string, len(orderings))
	for i, o := range orderings {
		if !b.fieldExists(o.Field) {
			b.err = errors.NewShape(errors.ErrInvalidNamingConvention, b.view.GoType.String(), o.Field, "sort field not present on view or filter shape")
			return b
		}
		dir := "ASC"
		if o.Direction == Desc {
			dir = "DESC"
		}
		parts[i] = o.Field + " " + dir
	}
	b.sql += "\nORDER BY " + strings.Join(parts, ", ")
	b.seq = 3
	return b
}

// Limit appends a LIMIT clause.
func (b *FindBuilder) Limit(n int) *FindBuilder {
	if b.err != nil {
		return b
	}
	if b.seq > 3 {
		return b.fail("limit called out of order")
	}
	b.sql += fmt.Sprintf("\nLIMIT %d", n)
	b.seq = 4
	return b
}

// Skip appends an OFFSET clause.
func (b *FindBuilder) Skip(n int) *FindBuilder {
	if b.err != nil {
		return b
	}
	if b.seq > 4 {
		return b.fail("skip called out of order")
	}
	b.sql += fmt.Sprintf("\nOFFSET %d", n)
	b.seq = 5
	return b
}

// Statement terminates the builder, appending the trailing semicolon.
func (b *FindBuilder) Statement() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if strings.HasSuffix(b.sql, ";") {
		return "", errors.NewShape(errors.ErrInvalidFunctionChain, b.view.GoType.String(), "", "statement already terminated")
	}
	return b.sql + ";", nil
}
