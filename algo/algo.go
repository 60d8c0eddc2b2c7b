// Package algo defines the capability set for SSID signature algorithms:
// secret keys, public keys and signatures, together with the registry used
// to dispatch tagged wire encodings to a concrete scheme.
//
// Every serialized key or signature is prefixed with a uvarint algorithm
// tag, so future algorithms coexist in the same wire format. The one scheme
// shipped with this module (algo/ristretto) uses tag 0x01.
package algo

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"

	"github.com/cyphernet-dao/go-ssid/baid58"
	"github.com/cyphernet-dao/go-ssid/strict"
)

// Ristretto255 is the algorithm tag of the ristretto25519 scheme.
const Ristretto255 = 0x01

// HRI is the human-readable prefix of canonical key id strings.
const HRI = "ssi"

var (
	// ErrKeyLength indicates a key or signature payload of the wrong length.
	ErrKeyLength = errors.New("algo: invalid key length")
	// ErrBadPayload indicates a structurally invalid or mistagged payload.
	ErrBadPayload = errors.New("algo: malformed key payload")
	// ErrUnknownAlgo indicates an algorithm tag with no registered scheme.
	ErrUnknownAlgo = errors.New("algo: unsupported algorithm code")
)

// Digest is the 32-byte hash of a canonical serialization; it is the only
// message shape that is ever signed or verified.
type Digest [32]byte

// Fingerprint is a short display identifier for a public key. It is the
// first four bytes of the canonical key encoding and is not collision-free:
// never use it for security decisions.
type Fingerprint [4]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// ParseFingerprint parses the 8-character hex form of a fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, fmt.Errorf("%w: %s", ErrBadPayload, err)
	}
	if len(b) != len(f) {
		return f, ErrKeyLength
	}
	copy(f[:], b)
	return f, nil
}

// PubKey is one algorithm's public key.
type PubKey interface {
	// Code is the algorithm tag.
	Code() uint64
	// Verify reports whether sig is a valid signature over digest. It never
	// fails: malformed input yields false.
	Verify(digest Digest, sig Sig) bool
	// Fingerprint is a stable truncation of the canonical encoding.
	Fingerprint() Fingerprint
	// Raw is the canonical key material without the algorithm tag.
	Raw() []byte
	// Encode is the tagged canonical encoding.
	Encode() []byte
	// String is the canonical baid58 id string ("ssi:...").
	String() string
	// Mnemonic is the word-list rendering of the id checksum.
	Mnemonic() string
}

// SecKey is one algorithm's secret key.
type SecKey interface {
	Code() uint64
	// PubKey derives the public key; derivation is pure and deterministic.
	PubKey() PubKey
	// Sign produces a signature over digest. Implementations may draw a
	// nonce from rand: two signatures over the same digest may differ.
	Sign(rand io.Reader, digest Digest) (Sig, error)
	Encode() []byte
}

// Sig is one algorithm's signature.
type Sig interface {
	Code() uint64
	Raw() []byte
	Encode() []byte
}

// Scheme is a registered signature algorithm.
type Scheme interface {
	Code() uint64
	Name() string
	Generate(rand io.Reader) (SecKey, error)
	DecodePubKey(b []byte) (PubKey, error)
	DecodeSecKey(b []byte) (SecKey, error)
	DecodeSig(b []byte) (Sig, error)
	// Raw payload sizes, without the algorithm tag.
	PubKeySize() int
	SecKeySize() int
	SigSize() int
}

var schemes = map[uint64]Scheme{}

// Register makes a scheme available for tagged decode dispatch. It is
// called from the scheme package's init.
func Register(s Scheme) {
	if _, ok := schemes[s.Code()]; ok {
		panic(fmt.Sprintf("algo: duplicate scheme registration for code %d", s.Code()))
	}
	schemes[s.Code()] = s
}

// Lookup returns the scheme registered for an algorithm tag.
func Lookup(code uint64) (Scheme, bool) {
	s, ok := schemes[code]
	return s, ok
}

// Equal reports whether two public keys have identical canonical encodings.
func Equal(a, b PubKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return bytes.Equal(a.Encode(), b.Encode())
}

func readTagged(r *strict.Reader, size func(Scheme) int) (Scheme, []byte, error) {
	code, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading algorithm tag: %s", ErrBadPayload, err)
	}
	s, ok := Lookup(code)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownAlgo, code)
	}
	raw, err := r.Raw(size(s))
	if err != nil {
		return nil, nil, err
	}
	return s, append(varint.ToUvarint(s.Code()), raw...), nil
}

// ReadPubKey decodes a tagged public key from a strict reader, dispatching
// on the algorithm tag.
func ReadPubKey(r *strict.Reader) (PubKey, error) {
	s, b, err := readTagged(r, Scheme.PubKeySize)
	if err != nil {
		return nil, err
	}
	return s.DecodePubKey(b)
}

// ReadSecKey decodes a tagged secret key from a strict reader.
func ReadSecKey(r *strict.Reader) (SecKey, error) {
	s, b, err := readTagged(r, Scheme.SecKeySize)
	if err != nil {
		return nil, err
	}
	return s.DecodeSecKey(b)
}

// ReadSig decodes a tagged signature from a strict reader.
func ReadSig(r *strict.Reader) (Sig, error) {
	s, b, err := readTagged(r, Scheme.SigSize)
	if err != nil {
		return nil, err
	}
	return s.DecodeSig(b)
}

// ParsePubKey parses a canonical "ssi:" id string into a public key.
func ParsePubKey(s string) (PubKey, error) {
	payload, err := baid58.Decode(HRI, s)
	if err != nil {
		return nil, err
	}
	code, n, err := varint.FromUvarint(payload)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("%w: reading algorithm tag", ErrBadPayload)
	}
	scheme, ok := Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgo, code)
	}
	return scheme.DecodePubKey(payload)
}
