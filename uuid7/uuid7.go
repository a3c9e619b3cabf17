// Package uuid7 generates and parses UUIDv7 identifiers: 16 bytes
// whose leading 48 bits are a big-endian Unix-millisecond timestamp,
// whose version nibble is 7, and whose variant bits are "10". It is
// the opaque UUIDv7 collaborator named in §6 of the specification,
// built on github.com/google/uuid (already a teacher dependency, used
// there for random job IDs — see internal/api/jobs.go's use of
// uuid.New()).
package uuid7

import (
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/quill/errors"
)

// ID is a 16-byte UUIDv7 identifier.
type ID [16]byte

// New generates a fresh UUIDv7.
func New() (ID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return ID{}, errors.Wrap(err, "generate uuidv7")
	}
	return ID(u), nil
}

// String renders the canonical hyphenated 8-4-4-4-12 hex form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// ToURN is an alias for String, named for parity with FromURN.
func (id ID) ToURN() string { return id.String() }

// Bytes returns the 16 raw bytes, most significant first.
func (id ID) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, id[:])
	return out
}

// FromURN parses the canonical hyphenated hex form (case-insensitive)
// back into an ID.
func FromURN(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		if hasNonHexDigit(s) {
			return ID{}, errors.Wrap(errors.ErrInvalidHexCharacter, err.Error())
		}
		return ID{}, errors.Wrap(errors.ErrMalformedURN, err.Error())
	}
	return ID(u), nil
}

// FromBytes wraps 16 raw bytes as an ID. Only the length is checked;
// the version and variant bits are not.
func FromBytes(b []byte) (ID, error) {
	if len(b) != 16 {
		return ID{}, errors.Wrapf(errors.ErrMalformedURN, "expected 16 bytes, got %d", len(b))
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// Version returns the version nibble (expected 7 for IDs from New).
func (id ID) Version() int {
	return int(id[6] >> 4)
}

// Variant returns the two variant bits of byte 8 (expected 0b10).
func (id ID) Variant() int {
	return int(id[8] >> 6)
}

// Timestamp returns the leading 48 bits as Unix milliseconds.
func (id ID) Timestamp() int64 {
	var ms int64
	for i := 0; i < 6; i++ {
		ms = (ms << 8) | int64(id[i])
	}
	return ms
}

func hasNonHexDigit(s string) bool {
	// google/uuid reports every malformed input with the same error
	// text, so the input itself is inspected: a 36-character string
	// with all four hyphens in place but a non-hex digit elsewhere is a
	// hex failure; any other shape (wrong length, missing hyphens) is not.
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	return strings.Trim(strings.ReplaceAll(s, "-", ""), "0123456789abcdefABCDEF") != ""
}
