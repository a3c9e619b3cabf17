// Package quill is a thin application-layer statement-builder and
// bind/extract engine over SQLite: callers describe their records as
// plain Go struct shapes (model, view, filter) and Quill compiles
// Find/Count/Create/Update/Delete statements, binds values onto them,
// and extracts rows back out, without a query parser or planner of its
// own (§1).
package quill

import (
	"context"
	"fmt"

	"github.com/FocuswithJustin/quill/engine"
	"github.com/FocuswithJustin/quill/internal/logging"
)

// Options configures a Handle at Open time. There is no external
// config file format: callers build one of these as a plain struct
// literal, matching how the teacher wires its smaller subsystems.
type Options struct {
	// Threading selects the engine's threading discipline (§5). It is
	// process-wide and takes effect on the first Open call only.
	Threading engine.ThreadingOption

	// BusyTimeoutMillis sets SQLite's busy_timeout, in milliseconds.
	// Zero leaves SQLite's own default in place.
	BusyTimeoutMillis int

	// ForeignKeys enables PRAGMA foreign_keys enforcement.
	ForeignKeys bool

	// Strict is recorded on the Handle and logged at Open. No Quill
	// function reads it: schema.CreateTable always emits STRICT,
	// WITHOUT ROWID tables whatever its value.
	Strict bool
}

// DefaultOptions returns the configuration Quill uses when no explicit
// Options are supplied: single-threaded, foreign keys enforced, STRICT
// tables.
func DefaultOptions() Options {
	return Options{
		Threading:   engine.SingleThreaded,
		ForeignKeys: true,
		Strict:      true,
	}
}

// Handle is Quill's top-level connection facade: one engine.Handle
// plus the Options it was opened under.
type Handle struct {
	engine *engine.Handle
	opts   Options
}

// Open opens (creating if necessary) a SQLite database at path, or an
// in-memory instance if path is empty, applying opts.
func Open(path string, opts Options) (*Handle, error) {
	engine.Init(opts.Threading)

	eh, err := engine.Open(path)
	if err != nil {
		return nil, err
	}
	h := &Handle{engine: eh, opts: opts}

	ctx := context.Background()
	if opts.BusyTimeoutMillis > 0 {
		if _, err := eh.Exec(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d;", opts.BusyTimeoutMillis)); err != nil {
			eh.Close()
			return nil, err
		}
	}
	if opts.ForeignKeys {
		if _, err := eh.Exec(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			eh.Close()
			return nil, err
		}
	}
	logging.Info("quill handle opened", "path", path, "strict", opts.Strict)
	return h, nil
}

// Engine exposes the underlying engine.Handle for packages that build
// atop it directly (clause/bind/extract/crud/pragma all take one).
func (h *Handle) Engine() *engine.Handle { return h.engine }

// Options reports the configuration this Handle was opened under.
func (h *Handle) Options() Options { return h.opts }

// Close releases the handle. Close-time errors are logged, not raised,
// matching engine.Handle.Close's own teardown discipline.
func (h *Handle) Close() {
	h.engine.Close()
}
