package engine

import (
	"context"
	"strconv"

	"github.com/FocuswithJustin/quill/errors"
)

// ColumnText is one (label, text-form) pair as delivered by the
// one-shot exec path: every value is rendered as text regardless of
// its storage tag, per §4.1.
type ColumnText struct {
	Label string
	Text  string
	Null  bool
}

// Row is one row of a RowBuffer, an ordered sequence of column pairs.
type Row struct {
	Columns []ColumnText
}

// RowBuffer is the owned result of a one-shot Exec call: a small,
// fully materialized script result used for pragmas, DDL, and counts
// — never for binding, never for large results.
type RowBuffer struct {
	Rows []Row
}

// Destroy releases the buffer. Go's garbage collector already reclaims
// the underlying memory; Destroy exists so callers ported from the
// owned-buffer contract of §4.1 have an explicit disposal point to
// call, and so a future pooled-buffer implementation has a seam.
func (b *RowBuffer) Destroy() {}

// Len reports the number of rows captured.
func (b *RowBuffer) Len() int { return len(b.Rows) }

// Exec runs a possibly multi-statement SQL script and captures every
// row produced by its final statement as text, per §4.1. It is meant
// for small, non-binding statements: pragmas, DDL, COUNT(*) queries.
func (h *Handle) Exec(ctx context.Context, sqlText string) (*RowBuffer, error) {
	rows, err := h.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, h.recordErr(errors.NewQuery(sqlText, err.Error()))
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, h.recordErr(errors.NewQuery(sqlText, err.Error()))
	}

	buf := &RowBuffer{}
	for rows.Next() {
		dest := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, h.recordErr(errors.NewQuery(sqlText, err.Error()))
		}
		row := Row{Columns: make([]ColumnText, len(cols))}
		for i, name := range cols {
			row.Columns[i] = toColumnText(name, dest[i])
		}
		buf.Rows = append(buf.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, h.recordErr(errors.NewQuery(sqlText, err.Error()))
	}
	return buf, nil
}

func toColumnText(label string, v any) ColumnText {
	switch val := v.(type) {
	case nil:
		return ColumnText{Label: label, Null: true}
	case int64:
		return ColumnText{Label: label, Text: strconv.FormatInt(val, 10)}
	case float64:
		return ColumnText{Label: label, Text: strconv.FormatFloat(val, 'g', -1, 64)}
	case string:
		return ColumnText{Label: label, Text: val}
	case []byte:
		return ColumnText{Label: label, Text: string(val)}
	case bool:
		if val {
			return ColumnText{Label: label, Text: "1"}
		}
		return ColumnText{Label: label, Text: "0"}
	default:
		return ColumnText{Label: label, Text: ""}
	}
}
