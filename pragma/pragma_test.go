package pragma

import (
	"context"
	"testing"

	"github.com/FocuswithJustin/quill/engine"
)

func openHandle(t *testing.T) *engine.Handle {
	t.Helper()
	h, err := engine.Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return h
}

func TestUserVersionRoundTrip(t *testing.T) {
	h := openHandle(t)
	defer h.Close()
	ctx := context.Background()

	v, err := UserVersion(ctx, h)
	if err != nil {
		t.Fatalf("UserVersion: %v", err)
	}
	if v != 0 {
		t.Fatalf("fresh database user_version = %d, want 0", v)
	}

	if err := SetUserVersion(ctx, h, 7); err != nil {
		t.Fatalf("SetUserVersion: %v", err)
	}
	v, err = UserVersion(ctx, h)
	if err != nil {
		t.Fatalf("UserVersion: %v", err)
	}
	if v != 7 {
		t.Fatalf("user_version = %d, want 7", v)
	}
}

func TestIntegrityCheckOK(t *testing.T) {
	h := openHandle(t)
	defer h.Close()
	if err := IntegrityCheck(context.Background(), h); err != nil {
		t.Fatalf("IntegrityCheck: %v", err)
	}
}

func TestCreateIndexAndCountRows(t *testing.T) {
	h := openHandle(t)
	defer h.Close()
	ctx := context.Background()

	if _, err := h.Exec(ctx, `CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT) STRICT;`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := h.Exec(ctx, `INSERT INTO widgets (id, name) VALUES (1, 'a'), (2, 'b');`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := CreateIndex(ctx, h, "idx_widgets_name", "widgets", []string{"name"}, true); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	n, err := CountRows(ctx, h, "widgets")
	if err != nil {
		t.Fatalf("CountRows: %v", err)
	}
	if n != 2 {
		t.Fatalf("CountRows = %d, want 2", n)
	}

	if err := DropIndex(ctx, h, "idx_widgets_name"); err != nil {
		t.Fatalf("DropIndex: %v", err)
	}
}

func TestRenameAndDropTable(t *testing.T) {
	h := openHandle(t)
	defer h.Close()
	ctx := context.Background()

	if _, err := h.Exec(ctx, `CREATE TABLE old_name (id INTEGER PRIMARY KEY) STRICT;`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := RenameTable(ctx, h, "old_name", "new_name"); err != nil {
		t.Fatalf("RenameTable: %v", err)
	}
	if _, err := CountRows(ctx, h, "new_name"); err != nil {
		t.Fatalf("CountRows after rename: %v", err)
	}
	if err := DropTable(ctx, h, "new_name"); err != nil {
		t.Fatalf("DropTable: %v", err)
	}
}

func TestCacheSizeAndVacuumMode(t *testing.T) {
	h := openHandle(t)
	defer h.Close()
	ctx := context.Background()

	if err := CacheSize(ctx, h, 2000); err != nil {
		t.Fatalf("CacheSize: %v", err)
	}
	if err := SetVacuumMode(ctx, h, VacuumIncremental); err != nil {
		t.Fatalf("SetVacuumMode: %v", err)
	}
}
