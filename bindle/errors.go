package bindle

import (
	"errors"
	"fmt"

	"github.com/cyphernet-dao/go-ssid/algo"
)

var (
	// ErrArmorStructure indicates text that is not a recognizable
	// ASCII-armored bindle (missing or mismatched BEGIN/END markers).
	ErrArmorStructure = errors.New("bindle: malformed ASCII armor structure")
	// ErrBase85 indicates an armored payload that is not valid Base85.
	ErrBase85 = errors.New("bindle: invalid Base85 payload")
	// ErrMagic indicates a binary file whose leading magic does not match
	// the expected content type.
	ErrMagic = errors.New("bindle: invalid file magic")
)

// IDHeaderError indicates an Id header that could not be parsed.
type IDHeaderError struct {
	Value string
	Err   error
}

func (e *IDHeaderError) Error() string {
	return fmt.Sprintf("bindle: unparsable Id header %q: %s", e.Value, e.Err)
}

func (e *IDHeaderError) Unwrap() error { return e.Err }

// MismatchedIDError indicates that the id recomputed from decoded content
// disagrees with the declared header id. It guards against header/payload
// tampering.
type MismatchedIDError struct {
	Actual   algo.PubKey
	Expected algo.PubKey
}

func (e *MismatchedIDError) Error() string {
	return fmt.Sprintf("bindle: content id %s does not match declared id %s", e.Actual, e.Expected)
}

// DeserializeError indicates structurally invalid binary content after the
// magic and Base85 layers were already accepted.
type DeserializeError struct {
	Err error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("bindle: decoding content: %s", e.Err)
}

func (e *DeserializeError) Unwrap() error { return e.Err }
