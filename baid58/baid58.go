// Package baid58 renders binary identifiers as chunked, checksummed base58
// strings with a human-readable prefix, plus a mnemonic word rendering of
// the checksum for out-of-band comparison.
//
// The string form is "<hri>:" followed by base58(payload ++ check) split
// into 8-character groups joined by '-', where check is the first four
// bytes of the BLAKE3-256 hash of the payload. The long form appends
// "#<mnemonic>".
package baid58

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/schollz/mnemonicode"
	"lukechampine.com/blake3"
)

const (
	chunkLen = 8
	checkLen = 4
)

var (
	// ErrHRI indicates a missing or mismatched human-readable prefix.
	ErrHRI = errors.New("baid58: missing or wrong human-readable prefix")
	// ErrChecksum indicates the embedded checksum does not match the payload.
	ErrChecksum = errors.New("baid58: checksum mismatch")
	// ErrTooShort indicates the decoded body cannot hold a checksum.
	ErrTooShort = errors.New("baid58: encoded value too short")
)

func checksum(payload []byte) [checkLen]byte {
	sum := blake3.Sum256(payload)
	var c [checkLen]byte
	copy(c[:], sum[:checkLen])
	return c
}

func chunk(s string) string {
	var parts []string
	for len(s) > chunkLen {
		parts = append(parts, s[:chunkLen])
		s = s[chunkLen:]
	}
	parts = append(parts, s)
	return strings.Join(parts, "-")
}

// Format renders payload as "<hri>:<chunked base58 body>".
func Format(hri string, payload []byte) string {
	check := checksum(payload)
	body := base58.Encode(append(append([]byte{}, payload...), check[:]...))
	return hri + ":" + chunk(body)
}

// FormatFull renders the long form with the mnemonic suffix attached.
func FormatFull(hri string, payload []byte) string {
	return Format(hri, payload) + "#" + Mnemonic(payload)
}

// Mnemonic renders the payload checksum as hyphen-joined mnemonic words.
func Mnemonic(payload []byte) string {
	check := checksum(payload)
	words := mnemonicode.EncodeWordList(nil, check[:])
	return strings.Join(words, "-")
}

// Decode parses a baid58 string back into its payload, requiring the given
// prefix and verifying the checksum. A trailing "#<mnemonic>" suffix is
// accepted and ignored.
func Decode(hri, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	body, ok := strings.CutPrefix(s, hri+":")
	if !ok {
		return nil, fmt.Errorf("%w: want %q", ErrHRI, hri)
	}
	body = strings.ReplaceAll(body, "-", "")
	raw, err := base58.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("baid58: %w", err)
	}
	if len(raw) <= checkLen {
		return nil, ErrTooShort
	}
	payload := raw[:len(raw)-checkLen]
	check := checksum(payload)
	if string(raw[len(raw)-checkLen:]) != string(check[:]) {
		return nil, ErrChecksum
	}
	return payload, nil
}
