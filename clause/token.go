// Package clause builds the literal SQL text and placeholder names for
// Find, Count, Create, Update, and Delete operations, the C4 clause
// builder of the specification. Field labels are validated by Filter
// (against the filter shape), by FindBuilder.Sort (against the view and
// filter shapes) and by CreateStatement (model validation), so those
// mistakes fail before a single byte reaches the engine. The Update,
// Delete and Count builders do not check labels against the filter
// shape they are given.
package clause

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

// Token is a rendered clause fragment, composable via Chain and Group.
type Token string

// Op is the scalar comparison/operator enumeration §9's open question
// resolves filter() to, in preference to an allocator-backed variant
// builder.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpGT
	OpLT
	OpGTE
	OpLTE
	OpContains
	OpNotContains
	OpBetween
	OpIn
	OpNotIn
	OpNull
	OpNotNull
)

// ChainOp is the uppercase logical keyword chain() renders.
type ChainOp int

const (
	ChainAnd ChainOp = iota
	ChainOr
	ChainNot
)

func (c ChainOp) String() string {
	switch c {
	case ChainAnd:
		return "AND"
	case ChainOr:
		return "OR"
	case ChainNot:
		return "NOT"
	default:
		return ""
	}
}

// Chain renders the uppercase logical keyword for op.
func Chain(op ChainOp) Token { return Token(op.String()) }

// Group parenthesizes tokens, single-space separated.
func Group(tokens ...Token) Token {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	return Token("(" + strings.Join(parts, " ") + ")")
}

// Filter renders a WHERE/filter fragment against field, validating that
// field is a label on filterShape. n is the variant count for In/NotIn
// (n ≥ 1); it is ignored by every other operator.
func Filter(filterShape *shape.Shape, field string, op Op, n int) (Token, error) {
	if _, ok := filterShape.Field(field); !ok {
		return "", errors.NewShape(errors.ErrInvalidNamingConvention, filterShape.GoType.String(), field, "field not present on filter shape")
	}

	switch op {
	case OpEq:
		return Token(field + " = :_" + field), nil
	case OpNeq:
		return Token(field + " != :_" + field), nil
	case OpGT:
		return Token(field + " > :_" + field), nil
	case OpLT:
		return Token(field + " < :_" + field), nil
	case OpGTE:
		return Token(field + " >= :_" + field), nil
	case OpLTE:
		return Token(field + " <= :_" + field), nil
	case OpContains:
		return Token(field + " LIKE :_" + field), nil
	case OpNotContains:
		return Token(field + " NOT LIKE :_" + field), nil
	case OpBetween:
		return Token(fmt.Sprintf("%s BETWEEN :_%s1 AND :_%s2", field, field, field)), nil
	case OpIn, OpNotIn:
		if n < 1 {
			return "", errors.NewShape(errors.ErrInvalidFunctionChain, filterShape.GoType.String(), field, "in/!in require n >= 1 variants")
		}
		placeholders := make([]string, n)
		for i := 0; i < n; i++ {
			placeholders[i] = fmt.Sprintf(":_%s%d", field, i+1)
		}
		keyword := "IN"
		if op == OpNotIn {
			keyword = "NOT IN"
		}
		return Token(fmt.Sprintf("%s %s (%s)", field, keyword, strings.Join(placeholders, ", "))), nil
	case OpNull:
		return Token(field + " IS NULL"), nil
	case OpNotNull:
		return Token(field + " IS NOT NULL"), nil
	default:
		return "", errors.NewShape(errors.ErrInvalidFunctionChain, filterShape.GoType.String(), field, "unrecognized operator")
	}
}
