package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestQueryError(t *testing.T) {
	tests := []struct {
		name     string
		err      *QueryError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with sql text",
			err:      NewQuery("SELECT 1;", "syntax error"),
			wantMsg:  "unable to execute query: syntax error (sql: SELECT 1;)",
			wantBase: ErrUnableToExecuteQuery,
		},
		{
			name:     "constraint violation",
			err:      NewConstraint("INSERT INTO t (a) VALUES (:a);", "UNIQUE constraint failed: t.a"),
			wantMsg:  "unmet constraint: UNIQUE constraint failed: t.a (sql: INSERT INTO t (a) VALUES (:a);)",
			wantBase: ErrUnmetConstraint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.wantBase)
			}
		})
	}
}

func TestShapeError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ShapeError
		wantMsg string
	}{
		{
			name:    "bare reason",
			err:     NewShape(ErrInvalidFunctionChain, "", "", "limit called before when"),
			wantMsg: "invalid function chain: limit called before when",
		},
		{
			name:    "with shape only",
			err:     NewShape(ErrMismatchedConstraint, "UpdateUser", "", "Exact gate requires when()"),
			wantMsg: "mismatched constraint: shape UpdateUser: Exact gate requires when()",
		},
		{
			name:    "with shape and field",
			err:     NewShape(ErrInvalidNamingConvention, "UserFilter", "nickname", "not a declared filter field"),
			wantMsg: "invalid naming convention: shape UserFilter, field nickname: not a declared filter field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	t.Run("unwraps to sentinel", func(t *testing.T) {
		err := NewShape(ErrInvalidNamingConvention, "UserFilter", "nickname", "not a declared filter field")
		if !errors.Is(err, ErrInvalidNamingConvention) {
			t.Error("expected errors.Is to match ErrInvalidNamingConvention")
		}
	})
}

func TestFieldError(t *testing.T) {
	err := NewField(ErrUnexpectedNullValue, "age", "column was NULL but field is non-optional")
	want := "unexpected null value: field age: column was NULL but field is non-optional"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnexpectedNullValue) {
		t.Error("expected errors.Is to match ErrUnexpectedNullValue")
	}

	bare := &FieldError{Reason: "column count mismatch"}
	if got := bare.Error(); got != "mismatched type: column count mismatch" {
		t.Errorf("Error() = %q, want default sentinel fallback", got)
	}
}

func TestWrapAndWrapf(t *testing.T) {
	if got := Wrap(nil, "context"); got != nil {
		t.Errorf("Wrap(nil, ...) = %v, want nil", got)
	}
	if got := Wrapf(nil, "context %d", 1); got != nil {
		t.Errorf("Wrapf(nil, ...) = %v, want nil", got)
	}

	base := ErrMismatchedFields
	wrapped := Wrap(base, "extracting row")
	if !errors.Is(wrapped, base) {
		t.Error("expected wrapped error to unwrap to base")
	}

	wrappedf := Wrapf(base, "extracting row %d", 3)
	wantMsg := fmt.Sprintf("extracting row 3: %v", base)
	if wrappedf.Error() != wantMsg {
		t.Errorf("Wrapf() = %q, want %q", wrappedf.Error(), wantMsg)
	}
}

func TestIsAndAs(t *testing.T) {
	err := NewField(ErrMismatchedSize, "bio", "expected 4 or 8 bytes")
	if !Is(err, ErrMismatchedSize) {
		t.Error("Is() should match ErrMismatchedSize")
	}

	var fe *FieldError
	if !As(err, &fe) {
		t.Error("As() should populate *FieldError")
	}
	if fe.Field != "bio" {
		t.Errorf("fe.Field = %q, want bio", fe.Field)
	}
}
