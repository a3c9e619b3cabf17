// Package engine provides a uniform facade over the embedded SQLite
// engine: open/close, one-shot multi-statement exec with row capture,
// and prepared statements with named-parameter binding and typed
// column extraction. It is the "engine shim" collaborator: the only
// part of Quill that talks to a real SQLite driver.
//
// Two drivers are available behind build tags, mirroring the
// dual-implementation story of the teacher this package is grounded
// on: modernc.org/sqlite (pure Go, default) and mattn/go-sqlite3 (CGO,
// opt-in via the cgo_sqlite build tag).
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/FocuswithJustin/quill/errors"
	"github.com/FocuswithJustin/quill/internal/logging"
)

// ThreadingOption selects the underlying engine's threading
// discipline, per §5 of the specification. It is fixed for the
// process lifetime: set once via Init, before any Handle is opened.
type ThreadingOption int

const (
	// SingleThreaded: no internal locking; caller ensures exclusive use.
	SingleThreaded ThreadingOption = iota
	// MultiThreaded: distinct handles may be used from distinct goroutines
	// concurrently; a single handle must not be shared.
	MultiThreaded
	// Serialized: a handle (and its statements) may be used from multiple
	// goroutines; access is internally serialized.
	Serialized
)

var (
	initOnce  sync.Once
	threading = SingleThreaded
)

// Init records the process-wide threading discipline. It must be
// called at most once, before opening any Handle. Subsequent calls
// are no-ops, matching the one-shot init/shutdown lifecycle of §5.
func Init(option ThreadingOption) {
	initOnce.Do(func() {
		threading = option
		logging.Info("engine initialized", "threading", threadingName(option))
	})
}

// Shutdown logs process-wide teardown. Quill has no global engine
// state to release beyond what each Handle.Close already releases;
// this exists so integrators have a single symmetric call to make at
// process end, per §5 and §9's "global engine initialization/shutdown"
// design note.
func Shutdown() {
	logging.Info("engine shutdown")
}

func threadingName(o ThreadingOption) string {
	switch o {
	case SingleThreaded:
		return "single-threaded"
	case MultiThreaded:
		return "multi-threaded"
	case Serialized:
		return "serialized"
	default:
		return "unknown"
	}
}

// Handle owns one SQLite connection pool for one database file (or an
// in-memory instance when path is empty). Per §5, a Serialized handle
// may be shared across goroutines; a SingleThreaded or MultiThreaded
// handle must not be shared concurrently by the caller's own
// discipline — Quill does not second-guess the option it was given.
type Handle struct {
	db       *sql.DB
	path     string
	threaded ThreadingOption

	mu      sync.Mutex
	lastErr string
}

// Open opens (creating if necessary) a SQLite database file at path,
// or an in-memory instance if path is empty.
func Open(path string) (*Handle, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnableToOpen, "open %s: %v", dsn, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrUnableToOpen, "open %s: %v", dsn, err)
	}
	h := &Handle{db: db, path: path, threaded: threading}
	logging.Debug("handle opened", "path", dsn, "driver", driverType)
	return h, nil
}

// OpenReadOnly opens path in read-only mode.
func OpenReadOnly(path string) (*Handle, error) {
	return Open(path + "?mode=ro")
}

// Close releases the handle. Per §7, close-time errors are logged but
// never raised, since Close is routinely called on teardown paths.
func (h *Handle) Close() {
	if err := h.db.Close(); err != nil {
		logging.EngineError("close", err, "path", h.path)
	}
}

// ErrMsg returns the most recent engine-reported error text, or the
// empty string if none has occurred yet.
func (h *Handle) ErrMsg() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

func (h *Handle) recordErr(err error) error {
	if err == nil {
		return nil
	}
	h.mu.Lock()
	h.lastErr = err.Error()
	h.mu.Unlock()
	return err
}

// DB exposes the underlying *sql.DB for administrative (pragma)
// wrappers that have no need for the typed bind/extract machinery.
func (h *Handle) DB() *sql.DB { return h.db }

// Threading reports the threading discipline this handle was opened under.
func (h *Handle) Threading() ThreadingOption { return h.threaded }

// Begin starts a transaction through the single-shot exec path.
func (h *Handle) Begin(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, "BEGIN;")
	if err != nil {
		return h.recordErr(errors.NewQuery("BEGIN;", err.Error()))
	}
	logging.TransactionEvent("begin")
	return nil
}

// Commit commits the current transaction through the single-shot exec path.
func (h *Handle) Commit(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, "COMMIT;")
	if err != nil {
		return h.recordErr(errors.NewQuery("COMMIT;", err.Error()))
	}
	logging.TransactionEvent("commit")
	return nil
}

// Rollback rolls back the current transaction through the single-shot exec path.
func (h *Handle) Rollback(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, "ROLLBACK;")
	if err != nil {
		return h.recordErr(errors.NewQuery("ROLLBACK;", err.Error()))
	}
	logging.TransactionEvent("rollback")
	return nil
}

// DriverName returns the SQL driver name in use ("sqlite" or "sqlite3").
func DriverName() string { return driverName }

// DriverType identifies the underlying implementation: "cgo" or "purego".
func DriverType() string { return driverType }

// IsCGO reports whether the mattn/go-sqlite3 CGO driver is active.
func IsCGO() bool { return driverType == "cgo" }

// Info describes the active driver configuration.
type Info struct {
	DriverName string
	DriverType string
	IsCGO      bool
	Package    string
}

// GetInfo returns the active driver configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s) via %s", i.DriverName, i.DriverType, i.Package)
}
