// Package shape analyzes Go struct types into the closed set of field
// descriptors the rest of Quill binds and extracts against. It is the
// reflection-based stand-in for the compile-time shape analysis the
// source system performs over its own record declarations: every model,
// view, and filter struct is inspected once per reflect.Type and the
// result cached, per §3.
package shape

import "github.com/FocuswithJustin/quill/engine"

// Kind is the closed set of field descriptors a model, view, or filter
// struct field may carry, per §3's type-descriptor grammar.
type Kind int

const (
	// KindInt is a plain 64-bit integer column.
	KindInt Kind = iota
	// KindBool is a 0/1 integer column surfaced as a Go bool.
	KindBool
	// KindFloat is a plain 64-bit real column.
	KindFloat
	// KindSlice is a raw byte-slice column, view-only, carried verbatim.
	KindSlice
	// KindCastIntoIntEnum casts an enum's ordinal into an INTEGER column.
	KindCastIntoIntEnum
	// KindCastIntoTextEnum casts an enum's variant name into a TEXT column.
	KindCastIntoTextEnum
	// KindCastIntoTextJSON casts a JSON-encodable record into a TEXT column.
	KindCastIntoTextJSON
	// KindCastIntoTextBytes carries raw bytes verbatim as a TEXT column.
	KindCastIntoTextBytes
	// KindCastIntoBlobBytes carries raw bytes verbatim as a BLOB column.
	KindCastIntoBlobBytes
	// KindAnyEnum reads either an INTEGER ordinal or a TEXT variant name
	// back into an enum value.
	KindAnyEnum
	// KindAnyJSON reads a TEXT column back into a JSON-decoded record.
	KindAnyJSON
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindFloat:
		return "Float"
	case KindSlice:
		return "Slice"
	case KindCastIntoIntEnum:
		return "CastInto<Int,Enum>"
	case KindCastIntoTextEnum:
		return "CastInto<Text,Enum>"
	case KindCastIntoTextJSON:
		return "CastInto<Text,JSON>"
	case KindCastIntoTextBytes:
		return "CastInto<Text,bytes>"
	case KindCastIntoBlobBytes:
		return "CastInto<Blob,bytes>"
	case KindAnyEnum:
		return "Any<Enum>"
	case KindAnyJSON:
		return "Any<JSON>"
	default:
		return "Unknown"
	}
}

// StorageTag reports the dynamic SQLite storage class a column of this
// kind reads and writes as, per §4.2 Testable Property 1.
func (k Kind) StorageTag() engine.Tag {
	switch k {
	case KindInt, KindBool, KindCastIntoIntEnum:
		return engine.TagInteger
	case KindFloat:
		return engine.TagFloat
	case KindCastIntoTextEnum, KindCastIntoTextJSON, KindCastIntoTextBytes:
		return engine.TagText
	case KindSlice, KindCastIntoBlobBytes:
		return engine.TagBlob
	case KindAnyEnum, KindAnyJSON:
		// Any<T> reads whichever of its two permitted tags the column
		// actually holds; callers must not rely on a single StorageTag.
		return engine.TagNull
	default:
		return engine.TagNull
	}
}

// SQLType returns the declared SQLite column type for CREATE TABLE
// emission, per §4.3.
func (k Kind) SQLType() string {
	switch k {
	case KindInt, KindBool, KindCastIntoIntEnum:
		return "INTEGER"
	case KindFloat:
		return "REAL"
	case KindCastIntoTextEnum, KindCastIntoTextJSON, KindCastIntoTextBytes:
		return "TEXT"
	case KindSlice, KindCastIntoBlobBytes:
		return "BLOB"
	case KindAnyEnum:
		return "INTEGER"
	case KindAnyJSON:
		return "TEXT"
	default:
		return ""
	}
}
