package schema

import (
	"testing"

	"github.com/FocuswithJustin/quill/shape"
)

type usersModel struct {
	UUID shape.CastIntoBlobBytes            `quill:"uuid"`
	Name shape.CastIntoTextBytes            `quill:"name"`
	Age  int64                              `quill:"age"`
	Bio  shape.Optional[shape.CastIntoBlobBytes] `quill:"bio"`
}

func TestCreateTable(t *testing.T) {
	s, err := shape.Analyze(usersModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	got, err := CreateTable(s, "users")
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	want := "CREATE TABLE IF NOT EXISTS users (\n" +
		"\tuuid BLOB PRIMARY KEY,\n" +
		"\tname TEXT NOT NULL,\n" +
		"\tage INTEGER NOT NULL,\n" +
		"\tbio BLOB\n" +
		") STRICT, WITHOUT ROWID;"

	if got != want {
		t.Errorf("CreateTable mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

type noUUIDModel struct {
	Name shape.CastIntoTextBytes `quill:"name"`
}

func TestCreateTableRejectsMissingUUID(t *testing.T) {
	s, err := shape.Analyze(noUUIDModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := CreateTable(s, "nope"); err == nil {
		t.Error("expected CreateTable to fail without a uuid field")
	}
}
