package extract

import (
	"context"
	"testing"

	"github.com/FocuswithJustin/quill/engine"
	qerrors "github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/shape"
)

type plan int

const (
	planFree plan = iota
	planPro
)

func (p plan) Ordinal() int { return int(p) }
func (p plan) VariantName() string {
	if p == planPro {
		return "pro"
	}
	return "free"
}

func init() {
	shape.RegisterEnum(planFree, shape.EnumFactory{
		FromOrdinal: func(i int) (shape.Enum, error) {
			if i == int(planPro) {
				return planPro, nil
			}
			return planFree, nil
		},
		FromName: func(name string) (shape.Enum, error) {
			if name == "pro" {
				return planPro, nil
			}
			return planFree, nil
		},
	})
}

type social struct {
	FB string `json:"fb"`
	YT string `json:"yt"`
}

type accountView struct {
	Age    int64             `quill:"age"`
	Active bool              `quill:"active"`
	Plan   shape.AnyEnum[plan]     `quill:"plan"`
	Tags   shape.AnyJSON[[]social] `quill:"tags"`
	Bio    shape.Optional[[]byte]  `quill:"bio"`
}

func setup(t *testing.T) *engine.Handle {
	t.Helper()
	h, err := engine.Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if _, err := h.Exec(ctx, `CREATE TABLE accounts (
		age INTEGER NOT NULL,
		active INTEGER NOT NULL,
		plan TEXT NOT NULL,
		tags TEXT NOT NULL,
		bio BLOB
	) STRICT;`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := h.Exec(ctx, `INSERT INTO accounts (age, active, plan, tags, bio) VALUES
		(30, 1, 'pro', '[{"fb":"a","yt":"b"},{"fb":"c","yt":"d"}]', NULL);`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return h
}

func TestExtractInto(t *testing.T) {
	h := setup(t)
	defer h.Close()
	ctx := context.Background()

	view, err := shape.Analyze(accountView{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stmt, err := h.Prepare(ctx, `SELECT age, active, plan, tags, bio FROM accounts;`)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer stmt.Finalize()

	rows, err := stmt.NewBinder().Step(ctx)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatalf("expected a row, err=%v", rows.Err())
	}

	var out accountView
	if err := Into(rows, view, &out); err != nil {
		t.Fatalf("Into: %v", err)
	}

	if out.Age != 30 {
		t.Errorf("Age = %d, want 30", out.Age)
	}
	if !out.Active {
		t.Error("Active = false, want true")
	}
	if out.Plan.Value.VariantName() != "pro" {
		t.Errorf("Plan = %v, want pro", out.Plan.Value.VariantName())
	}
	if len(out.Tags.Value) != 2 || out.Tags.Value[0].FB != "a" || out.Tags.Value[1].YT != "d" {
		t.Errorf("Tags = %+v, want [{a b} {c d}]", out.Tags.Value)
	}
	if out.Bio.Valid {
		t.Error("Bio.Valid = true, want false (NULL column)")
	}
}

type strictView struct {
	Active bool `quill:"active"`
}

func TestExtractUnexpectedNull(t *testing.T) {
	h, err := engine.Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()
	ctx := context.Background()

	if _, err := h.Exec(ctx, `CREATE TABLE t (active INTEGER) STRICT;`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := h.Exec(ctx, `INSERT INTO t (active) VALUES (NULL);`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	view, err := shape.Analyze(strictView{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stmt, err := h.Prepare(ctx, `SELECT active FROM t;`)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer stmt.Finalize()

	rows, err := stmt.NewBinder().Step(ctx)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatalf("expected a row")
	}

	var out strictView
	if err := Into(rows, view, &out); !qerrors.Is(err, qerrors.ErrUnexpectedNullValue) {
		t.Errorf("expected ErrUnexpectedNullValue, got %v", err)
	}
}

func TestExtractBoolMismatchedValue(t *testing.T) {
	h, err := engine.Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()
	ctx := context.Background()

	if _, err := h.Exec(ctx, `CREATE TABLE t (active INTEGER NOT NULL) STRICT;`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := h.Exec(ctx, `INSERT INTO t (active) VALUES (7);`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	view, err := shape.Analyze(strictView{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stmt, err := h.Prepare(ctx, `SELECT active FROM t;`)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer stmt.Finalize()

	rows, err := stmt.NewBinder().Step(ctx)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatalf("expected a row")
	}

	var out strictView
	if err := Into(rows, view, &out); !qerrors.Is(err, qerrors.ErrMismatchedValue) {
		t.Errorf("expected ErrMismatchedValue, got %v", err)
	}
}
