package engine

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/internal/logging"
)

// Tag is the column-engine's row-model tag, one of the five storage
// classes SQLite's dynamic typing can produce, per §3.
type Tag int

const (
	TagInteger Tag = iota
	TagFloat
	TagText
	TagBlob
	TagNull
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagText:
		return "Text"
	case TagBlob:
		return "Blob"
	case TagNull:
		return "Null"
	default:
		return "Unknown"
	}
}

var paramPattern = regexp.MustCompile(`:(_?[A-Za-z][A-Za-z0-9_]*)`)

// paramNames returns the named placeholders of sqlText in first-seen
// order, deduplicated. Quill's own builders (clause package) always
// emit ":field" for bind positions and ":_field" for filter positions.
func paramNames(sqlText string) []string {
	matches := paramPattern.FindAllStringSubmatch(sqlText, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Stmt is a compiled statement, the runtime counterpart of a clause
// builder's output. It is owned uniquely; see the CRUD facade for the
// state machine built atop it.
type Stmt struct {
	handle     *Handle
	raw        *sql.Stmt
	sqlText    string
	paramNames []string
	paramIndex map[string]int
}

// Prepare compiles sqlText through database/sql. The placeholder scan
// covers the whole of sqlText, including any text after the first
// semicolon.
func (h *Handle) Prepare(ctx context.Context, sqlText string) (*Stmt, error) {
	names := paramNames(sqlText)
	raw, err := h.db.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, h.recordErr(errors.NewQuery(sqlText, err.Error()))
	}
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i + 1
	}
	logging.StatementPrepared(containerHint(sqlText), sqlText)
	return &Stmt{handle: h, raw: raw, sqlText: sqlText, paramNames: names, paramIndex: idx}, nil
}

// containerHint extracts a table name for logging, best-effort only.
func containerHint(sqlText string) string {
	upper := strings.ToUpper(sqlText)
	for _, kw := range []string{"FROM ", "INTO ", "TABLE IF NOT EXISTS ", "TABLE ", "UPDATE "} {
		if idx := strings.Index(upper, kw); idx >= 0 {
			rest := strings.TrimSpace(sqlText[idx+len(kw):])
			fields := strings.FieldsFunc(rest, func(r rune) bool {
				return r == ' ' || r == '(' || r == '\n' || r == '\t'
			})
			if len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return ""
}

// ParameterCount returns the number of distinct named placeholders in
// the compiled statement.
func (s *Stmt) ParameterCount() int { return len(s.paramNames) }

// ParameterNames returns every distinct placeholder name (without its
// leading colon), in first-seen order. Bind positions are bare
// identifiers; filter positions are prefixed with "_".
func (s *Stmt) ParameterNames() []string {
	out := make([]string, len(s.paramNames))
	copy(out, s.paramNames)
	return out
}

// ParameterIndex resolves a placeholder name (without its leading
// colon) to its 1-based position. It fails with ErrBindParameterNotFound
// if the placeholder is absent from the compiled statement.
func (s *Stmt) ParameterIndex(name string) (int, error) {
	if i, ok := s.paramIndex[name]; ok {
		return i, nil
	}
	return 0, errors.Wrapf(errors.ErrBindParameterNotFound, "parameter %q not present in compiled statement", name)
}

// SQL returns the statement's literal text.
func (s *Stmt) SQL() string { return s.sqlText }

// Finalize releases the compiled statement.
func (s *Stmt) Finalize() error {
	if err := s.raw.Close(); err != nil {
		logging.EngineError("finalize", err)
		return err
	}
	return nil
}

// Binder accumulates named binds for one bind→step/exec cycle. A new
// Binder must be created for each call; it is never reused across
// steps the way a raw SQLite statement is reset and rebound, since
// Go's database/sql already manages the underlying cursor lifecycle.
type Binder struct {
	stmt   *Stmt
	values map[string]any
	bound  map[string]bool
}

// NewBinder starts a fresh bind cycle against the statement.
func (s *Stmt) NewBinder() *Binder {
	return &Binder{stmt: s, values: make(map[string]any, len(s.paramNames)), bound: make(map[string]bool, len(s.paramNames))}
}

func (b *Binder) set(name string, v any) error {
	if _, ok := b.stmt.paramIndex[name]; !ok {
		return errors.Wrapf(errors.ErrBindParameterNotFound, "parameter %q not present in compiled statement", name)
	}
	b.values[name] = v
	b.bound[name] = true
	return nil
}

// BindNull binds SQL NULL to the named placeholder.
func (b *Binder) BindNull(name string) error { return b.set(name, nil) }

// BindInt64 binds a 64-bit integer.
func (b *Binder) BindInt64(name string, v int64) error { return b.set(name, v) }

// BindInt32 binds a 32-bit integer (widened to int64 for storage).
func (b *Binder) BindInt32(name string, v int32) error { return b.set(name, int64(v)) }

// BindDouble binds a 64-bit float.
func (b *Binder) BindDouble(name string, v float64) error { return b.set(name, v) }

// BindText binds caller-owned text. There is no separate
// static/transfer lifetime distinction at this layer in Go: the bytes
// are copied across the database/sql driver boundary before Exec/Step
// returns, so the caller's buffer need only remain valid until then,
// matching the "static" lifetime of §4.1's bind_text.
func (b *Binder) BindText(name, v string) error { return b.set(name, v) }

// BindBlob binds caller-owned bytes, same lifetime note as BindText.
func (b *Binder) BindBlob(name string, v []byte) error { return b.set(name, v) }

// args produces the sql.Named argument list in placeholder order,
// failing with ErrMismatchedFields if any compiled placeholder was
// never bound.
func (b *Binder) args() ([]any, error) {
	if len(b.bound) != len(b.stmt.paramNames) {
		missing := make([]string, 0, len(b.stmt.paramNames)-len(b.bound))
		for _, n := range b.stmt.paramNames {
			if !b.bound[n] {
				missing = append(missing, n)
			}
		}
		return nil, errors.Wrapf(errors.ErrMismatchedFields, "unbound placeholders: %s", strings.Join(missing, ", "))
	}
	args := make([]any, 0, len(b.stmt.paramNames))
	for _, n := range b.stmt.paramNames {
		args = append(args, sql.Named(n, b.values[n]))
	}
	return args, nil
}

// Result reports the outcome of a non-query Exec.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Exec binds and executes a statement expected to produce no rows
// (INSERT/UPDATE/DELETE), matching §4.7's bind→step(Done) path.
func (b *Binder) Exec(ctx context.Context) (Result, error) {
	args, err := b.args()
	if err != nil {
		return Result{}, err
	}
	res, err := b.stmt.raw.ExecContext(ctx, args...)
	if err != nil {
		if isConstraintErr(err) {
			return Result{}, b.stmt.handle.recordErr(errors.NewConstraint(b.stmt.sqlText, err.Error()))
		}
		return Result{}, b.stmt.handle.recordErr(errors.NewQuery(b.stmt.sqlText, err.Error()))
	}
	lastID, _ := res.LastInsertId()
	affected, _ := res.RowsAffected()
	return Result{LastInsertID: lastID, RowsAffected: affected}, nil
}

// Step binds and executes a statement expected to produce rows
// (SELECT), returning a cursor positioned before the first row.
func (b *Binder) Step(ctx context.Context) (*Rows, error) {
	args, err := b.args()
	if err != nil {
		return nil, err
	}
	raw, err := b.stmt.raw.QueryContext(ctx, args...)
	if err != nil {
		return nil, b.stmt.handle.recordErr(errors.NewQuery(b.stmt.sqlText, err.Error()))
	}
	labels, err := raw.Columns()
	if err != nil {
		raw.Close()
		return nil, b.stmt.handle.recordErr(errors.NewQuery(b.stmt.sqlText, err.Error()))
	}
	return &Rows{raw: raw, labels: labels}, nil
}

func isConstraintErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint")
}

// Rows is a step cursor over a query's result set: Next() is §4.1's
// step(), returning Row/Done; column accessors read the current row.
type Rows struct {
	raw     *sql.Rows
	labels  []string
	current []any
	scanErr error
}

// Next advances to the next row, returning false on Done or error.
// Check Err() after a false return to distinguish the two.
func (r *Rows) Next() bool {
	if !r.raw.Next() {
		return false
	}
	dest := make([]any, len(r.labels))
	ptrs := make([]any, len(r.labels))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	if err := r.raw.Scan(ptrs...); err != nil {
		r.scanErr = err
		return false
	}
	r.current = dest
	return true
}

// Err reports any error encountered during iteration.
func (r *Rows) Err() error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return r.raw.Err()
}

// Close releases the cursor. Safe to call after Next returns false.
func (r *Rows) Close() error { return r.raw.Close() }

// ColumnCount reports the number of columns in the result set.
func (r *Rows) ColumnCount() int { return len(r.labels) }

// ColumnLabels returns the result set's column names in order.
func (r *Rows) ColumnLabels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// ColumnName returns the label of column i.
func (r *Rows) ColumnName(i int) string { return r.labels[i] }

// ColumnType classifies the current row's column i by its dynamic
// SQLite storage tag.
func (r *Rows) ColumnType(i int) Tag {
	switch r.current[i].(type) {
	case nil:
		return TagNull
	case int64:
		return TagInteger
	case float64:
		return TagFloat
	case string:
		return TagText
	case []byte:
		return TagBlob
	default:
		return TagNull
	}
}

// ColumnBytes reports the byte width of an integer payload — SQLite's
// own variable-width integer storage classes (1, 2, 3, 4, 6, or 8 bytes,
// per its serial type encoding) — or the length of a text/blob payload.
func (r *Rows) ColumnBytes(i int) int {
	switch v := r.current[i].(type) {
	case int64:
		return sqliteIntWidth(v)
	case string:
		return len(v)
	case []byte:
		return len(v)
	default:
		return 0
	}
}

func sqliteIntWidth(v int64) int {
	switch {
	case v >= -128 && v <= 127:
		return 1
	case v >= -32768 && v <= 32767:
		return 2
	case v >= -8388608 && v <= 8388607:
		return 3
	case v >= -2147483648 && v <= 2147483647:
		return 4
	case v >= -140737488355328 && v <= 140737488355327:
		return 6
	default:
		return 8
	}
}

// Int64 reads column i as a 64-bit integer.
func (r *Rows) Int64(i int) (int64, bool) {
	v, ok := r.current[i].(int64)
	return v, ok
}

// Float64 reads column i as a 64-bit float.
func (r *Rows) Float64(i int) (float64, bool) {
	v, ok := r.current[i].(float64)
	return v, ok
}

// Text reads column i as text.
func (r *Rows) Text(i int) (string, bool) {
	switch v := r.current[i].(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// Blob reads column i as a byte slice.
func (r *Rows) Blob(i int) ([]byte, bool) {
	switch v := r.current[i].(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
