// Package pragma implements Quill's administrative single-statement
// wrappers: PRAGMA reads/writes and the handful of DDL operations that
// have no builder or bind/extract surface of their own because they
// carry no per-row shape. §1 calls these out as "external
// collaborators", but §6 still lists them as part of the shipped
// surface, so they are implemented here over the one-shot exec path
// rather than left unbuilt.
package pragma

import (
	"context"
	"fmt"

	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/errors"
)

// CacheSize sets the connection's page cache size, in pages (positive)
// or kibibytes (negative), per SQLite's own PRAGMA cache_size convention.
func CacheSize(ctx context.Context, h *engine.Handle, pages int) error {
	_, err := h.Exec(ctx, fmt.Sprintf("PRAGMA cache_size = %d;", pages))
	return err
}

// IntegrityCheck runs PRAGMA integrity_check and fails with
// ErrFailedIntegrityChecks unless the single reported row reads "ok".
func IntegrityCheck(ctx context.Context, h *engine.Handle) error {
	buf, err := h.Exec(ctx, "PRAGMA integrity_check;")
	if err != nil {
		return err
	}
	if buf.Len() != 1 || buf.Rows[0].Columns[0].Text != "ok" {
		return errors.Wrap(errors.ErrFailedIntegrityChecks, "PRAGMA integrity_check reported corruption")
	}
	return nil
}

// VacuumMode selects SQLite's auto_vacuum discipline.
type VacuumMode int

const (
	VacuumNone VacuumMode = iota
	VacuumFull
	VacuumIncremental
)

func (m VacuumMode) sqlValue() int {
	switch m {
	case VacuumFull:
		return 1
	case VacuumIncremental:
		return 2
	default:
		return 0
	}
}

// SetVacuumMode sets PRAGMA auto_vacuum. Per SQLite's own rule, this
// only takes effect on a freshly created database or after a VACUUM.
func SetVacuumMode(ctx context.Context, h *engine.Handle, mode VacuumMode) error {
	_, err := h.Exec(ctx, fmt.Sprintf("PRAGMA auto_vacuum = %d;", mode.sqlValue()))
	return err
}

// VacuumInto writes a defragmented copy of the database to destPath,
// per SQLite's "VACUUM INTO" statement.
func VacuumInto(ctx context.Context, h *engine.Handle, destPath string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("VACUUM INTO %q;", destPath))
	return err
}

// CreateIndex builds a CREATE INDEX statement over the given columns.
func CreateIndex(ctx context.Context, h *engine.Handle, indexName, container string, columns []string, unique bool) error {
	keyword := "INDEX"
	if unique {
		keyword = "UNIQUE INDEX"
	}
	sqlText := fmt.Sprintf("CREATE %s IF NOT EXISTS %s ON %s (%s);", keyword, indexName, container, joinColumns(columns))
	_, err := h.Exec(ctx, sqlText)
	return err
}

// DropIndex drops a previously created index.
func DropIndex(ctx context.Context, h *engine.Handle, indexName string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s;", indexName))
	return err
}

// CountRows returns the row count of container, per §6's accounting
// needs for migration/administrative tooling.
func CountRows(ctx context.Context, h *engine.Handle, container string) (int64, error) {
	buf, err := h.Exec(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s;", container))
	if err != nil {
		return 0, err
	}
	var n int64
	fmt.Sscanf(buf.Rows[0].Columns[0].Text, "%d", &n)
	return n, nil
}

// RenameTable renames a container in place.
func RenameTable(ctx context.Context, h *engine.Handle, oldName, newName string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", oldName, newName))
	return err
}

// DropTable drops a container.
func DropTable(ctx context.Context, h *engine.Handle, container string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", container))
	return err
}

// UserVersion reads the database's user_version integer, §6's
// persisted schema-version slot.
func UserVersion(ctx context.Context, h *engine.Handle) (int64, error) {
	buf, err := h.Exec(ctx, "PRAGMA user_version;")
	if err != nil {
		return 0, err
	}
	var n int64
	fmt.Sscanf(buf.Rows[0].Columns[0].Text, "%d", &n)
	return n, nil
}

// SetUserVersion writes the database's user_version integer.
func SetUserVersion(ctx context.Context, h *engine.Handle, version int64) error {
	_, err := h.Exec(ctx, fmt.Sprintf("PRAGMA user_version = %d;", version))
	return err
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
