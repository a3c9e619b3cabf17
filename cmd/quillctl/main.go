// Command quillctl is a thin demonstration CLI over a quill.Handle. It
// is explicitly out of Quill's core scope (§1): a caller driving Quill
// from Go never needs it, but it exercises the pragma wrappers and the
// one-shot exec path from the outside, the way cmd/capsule drives the
// teacher's own core packages.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/quill"
	"github.com/FocuswithJustin/quill/pragma"
)

var CLI struct {
	DB string `name:"db" help:"Path to the SQLite database file" type:"path" default:":memory:"`

	Schema  SchemaCmd  `cmd:"" help:"Print the user_version and integrity status of a database"`
	Migrate MigrateCmd `cmd:"" help:"Read or set the database's user_version"`
	Exec    ExecCmd    `cmd:"" help:"Run a SQL script through the one-shot exec path"`
}

func open(path string) (*quill.Handle, error) {
	if path == ":memory:" {
		path = ""
	}
	return quill.Open(path, quill.DefaultOptions())
}

// SchemaCmd reports the database's current administrative state.
type SchemaCmd struct{}

func (c *SchemaCmd) Run(ctx context.Context) error {
	h, err := open(CLI.DB)
	if err != nil {
		return err
	}
	defer h.Close()

	version, err := pragma.UserVersion(ctx, h.Engine())
	if err != nil {
		return err
	}
	fmt.Printf("user_version: %d\n", version)

	if err := pragma.IntegrityCheck(ctx, h.Engine()); err != nil {
		fmt.Printf("integrity_check: FAILED (%v)\n", err)
		return err
	}
	fmt.Println("integrity_check: ok")
	return nil
}

// MigrateCmd reads or sets user_version, Quill's only schema-versioning
// primitive (§6 explicitly excludes a migration engine).
type MigrateCmd struct {
	Get MigrateGetCmd `cmd:"" help:"Print the current user_version"`
	Set MigrateSetCmd `cmd:"" help:"Set user_version"`
}

type MigrateGetCmd struct{}

func (c *MigrateGetCmd) Run(ctx context.Context) error {
	h, err := open(CLI.DB)
	if err != nil {
		return err
	}
	defer h.Close()

	version, err := pragma.UserVersion(ctx, h.Engine())
	if err != nil {
		return err
	}
	fmt.Println(version)
	return nil
}

type MigrateSetCmd struct {
	Version int64 `arg:"" help:"New user_version value"`
}

func (c *MigrateSetCmd) Run(ctx context.Context) error {
	h, err := open(CLI.DB)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := pragma.SetUserVersion(ctx, h.Engine(), c.Version); err != nil {
		return err
	}
	fmt.Printf("user_version set to %d\n", c.Version)
	return nil
}

// ExecCmd runs a SQL script via the one-shot exec path, printing every
// captured row of its final statement as text.
type ExecCmd struct {
	SQL string `arg:"" help:"SQL text to execute"`
}

func (c *ExecCmd) Run(ctx context.Context) error {
	h, err := open(CLI.DB)
	if err != nil {
		return err
	}
	defer h.Close()

	buf, err := h.Engine().Exec(ctx, c.SQL)
	if err != nil {
		return err
	}
	for _, row := range buf.Rows {
		for i, col := range row.Columns {
			if i > 0 {
				fmt.Print("\t")
			}
			if col.Null {
				fmt.Print("NULL")
			} else {
				fmt.Print(col.Text)
			}
		}
		fmt.Println()
	}
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("quillctl"),
		kong.Description("Administrative CLI over a Quill database"),
		kong.UsageOnError(),
	)
	err := kctx.Run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
