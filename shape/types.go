package shape

import "reflect"

// descriptor is implemented by every CastInto*/Any* wrapper type so
// Analyze can classify a struct field's Go type without needing to name
// every generic instantiation explicitly.
type descriptor interface {
	quillKind() Kind
}

// CastIntoInt casts an Enum's ordinal into an INTEGER column on write,
// per §3's CastInto<Int,Enum>. E is a type parameter (rather than a
// bare Enum interface field) so Analyze can recover the concrete enum
// type through reflection alone, without a live value in hand — needed
// to look up the registered EnumFactory when reconstructing Any<E>.
type CastIntoInt[E Enum] struct {
	Value E
}

func (CastIntoInt[E]) quillKind() Kind { return KindCastIntoIntEnum }

// CastIntoText casts an Enum's variant name into a TEXT column on write,
// per §3's CastInto<Text,Enum>.
type CastIntoText[E Enum] struct {
	Value E
}

func (CastIntoText[E]) quillKind() Kind { return KindCastIntoTextEnum }

// CastIntoTextBytes carries raw bytes into a TEXT column verbatim, per
// §3's CastInto<Text,bytes>.
type CastIntoTextBytes struct {
	Value []byte
}

func (CastIntoTextBytes) quillKind() Kind { return KindCastIntoTextBytes }

// CastIntoBlobBytes carries raw bytes into a BLOB column verbatim, per
// §3's CastInto<Blob,bytes>. Every model shape must declare a
// non-optional field of this kind labeled "uuid"; other fields may use
// it too — see ValidateModel.
type CastIntoBlobBytes struct {
	Value []byte
}

func (CastIntoBlobBytes) quillKind() Kind { return KindCastIntoBlobBytes }

// CastIntoJSON casts a JSON-encodable record R into a TEXT column on
// write, per §3's CastInto<Text,Record>.
type CastIntoJSON[R any] struct {
	Value R
}

func (CastIntoJSON[R]) quillKind() Kind { return KindCastIntoTextJSON }

// AnyEnum reads a column holding either an Enum's INTEGER ordinal or its
// TEXT variant name back into the enum value, per §3's Any<Enum>.
type AnyEnum[E Enum] struct {
	Value E
}

func (AnyEnum[E]) quillKind() Kind { return KindAnyEnum }

// AnyJSON reads a TEXT column back into a JSON-decoded record R, per
// §3's Any<Record>.
type AnyJSON[R any] struct {
	Value R
}

func (AnyJSON[R]) quillKind() Kind { return KindAnyJSON }

// Optional wraps any field descriptor (or raw scalar type) to mark a
// column nullable, per §3's Optional<T>. Optional<Optional<T>> is not
// meaningful and is rejected at analysis time.
type Optional[T any] struct {
	Valid bool
	Value T
}

// optionalType is implemented by Optional[T] so Analyze can detect the
// wrapper and recover T's reflect.Type without knowing T in advance.
type optionalType interface {
	innerType() reflect.Type
}

func (Optional[T]) innerType() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
