package principal

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/skillsenselab/authkit/errors"
)

// IDCodec normalizes and validates principal identifiers. It replaces
// inheritance-style ID parsing with an injected strategy: services hold one
// codec and stay agnostic of the concrete ID shape.
type IDCodec interface {
	// Normalize validates raw and returns its canonical string form.
	Normalize(raw string) (string, error)

	// Kind names the identifier shape ("int" or "uuid").
	Kind() string
}

// IntIDs is an IDCodec for positive integer identifiers.
type IntIDs struct{}

// Normalize implements IDCodec.
func (IntIDs) Normalize(raw string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return "", errors.InvalidInput("id", "must be a positive integer")
	}
	return strconv.FormatInt(n, 10), nil
}

// Kind implements IDCodec.
func (IntIDs) Kind() string { return "int" }

// UUIDs is an IDCodec for UUID identifiers, canonicalized to lowercase
// hyphenated form.
type UUIDs struct{}

// Normalize implements IDCodec.
func (UUIDs) Normalize(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.InvalidInput("id", "must be a valid UUID")
	}
	return id.String(), nil
}

// Kind implements IDCodec.
func (UUIDs) Kind() string { return "uuid" }

// CodecFor returns the IDCodec for a configured kind name.
func CodecFor(kind string) (IDCodec, error) {
	switch kind {
	case "", "int":
		return IntIDs{}, nil
	case "uuid":
		return UUIDs{}, nil
	default:
		return nil, errors.Configuration("principal id kind must be \"int\" or \"uuid\" (got: " + kind + ")")
	}
}
