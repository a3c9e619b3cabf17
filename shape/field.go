package shape

import "reflect"

// Field is one labelled column descriptor inside a Shape.
type Field struct {
	// Label is the column/placeholder name, taken from the struct
	// field's `quill:"..."` tag.
	Label string

	// Kind classifies the field per §3's closed descriptor vocabulary.
	Kind Kind

	// Optional marks the field nullable (Go type was Optional[T]).
	Optional bool

	// Index is the struct field path, for use with reflect.Value.FieldByIndex.
	Index []int

	// GoType is the field's declared Go type (after unwrapping Optional).
	GoType reflect.Type

	// ValueType is the carried payload type for wrapper descriptors: the
	// Enum type for CastInto<Int|Text,E>/Any<E>, the record type R for
	// CastInto<Text,R>/Any<R>. Nil for raw scalars, Slice, and the bytes
	// descriptors.
	ValueType reflect.Type
}

// IsScalar reports whether the field is a raw Go scalar (Int, Bool,
// Float, Slice) rather than a CastInto/Any wrapper.
func (f Field) IsScalar() bool {
	switch f.Kind {
	case KindInt, KindBool, KindFloat, KindSlice:
		return true
	default:
		return false
	}
}
