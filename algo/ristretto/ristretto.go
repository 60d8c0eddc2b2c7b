// Package ristretto implements the ristretto25519 signature scheme: a
// Schnorr signature over the ristretto255 group, registered under
// algorithm tag 0x01.
//
// Secret keys are 64 uniform bytes mapped to a scalar; public keys are the
// 32-byte canonical encoding of the scalar-base product; signatures are
// R ++ s (64 bytes). Signing is randomized: a fresh 32-byte noise value is
// drawn from the supplied randomness source and hashed into the nonce, so
// two signatures over the same digest legitimately differ.
package ristretto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/gtank/ristretto255"
	"github.com/multiformats/go-varint"

	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/baid58"
	"github.com/cyphernet-dao/go-ssid/strict"
)

const (
	// Code is the algorithm tag.
	Code = algo.Ristretto255
	// Name is the scheme name.
	Name = "ristretto25519"

	// SecKeySize is the raw secret key length.
	SecKeySize = 64
	// PubKeySize is the raw public key length.
	PubKeySize = 32
	// SigSize is the raw signature length.
	SigSize = 64
)

var tagSize = varint.UvarintSize(Code)

const (
	nonceDomain     = "ssid:ristretto25519:nonce"
	challengeDomain = "ssid:ristretto25519:challenge"
)

func init() {
	algo.Register(scheme{})
}

type scheme struct{}

func (scheme) Code() uint64 { return Code }
func (scheme) Name() string { return Name }

func (scheme) Generate(rand io.Reader) (algo.SecKey, error) { return Generate(rand) }

func (scheme) DecodePubKey(b []byte) (algo.PubKey, error) { return DecodePubKey(b) }
func (scheme) DecodeSecKey(b []byte) (algo.SecKey, error) { return DecodeSecKey(b) }
func (scheme) DecodeSig(b []byte) (algo.Sig, error)       { return DecodeSig(b) }

func (scheme) PubKeySize() int { return PubKeySize }
func (scheme) SecKeySize() int { return SecKeySize }
func (scheme) SigSize() int    { return SigSize }

func untag(b []byte, rawSize int) ([]byte, error) {
	if len(b) != tagSize+rawSize {
		return nil, fmt.Errorf("%w: %d wanted: %d", algo.ErrKeyLength, len(b), tagSize+rawSize)
	}
	code, n, err := varint.FromUvarint(b)
	if err != nil || n != tagSize {
		return nil, fmt.Errorf("%w: reading algorithm tag", algo.ErrBadPayload)
	}
	if code != Code {
		return nil, fmt.Errorf("%w: algorithm tag %d", algo.ErrBadPayload, code)
	}
	return b[tagSize:], nil
}

func tagged(raw []byte) []byte {
	out := make([]byte, tagSize+len(raw))
	varint.PutUvarint(out, Code)
	copy(out[tagSize:], raw)
	return out
}

// SecretKey is a tagged 64-byte secret key.
type SecretKey []byte

// Generate draws a fresh secret key from rand.
func Generate(rand io.Reader) (SecretKey, error) {
	raw := make([]byte, SecKeySize)
	if _, err := io.ReadFull(rand, raw); err != nil {
		return nil, fmt.Errorf("generating ristretto25519 key: %w", err)
	}
	return SecretKey(tagged(raw)), nil
}

// DecodeSecKey decodes a tagged secret key encoding.
func DecodeSecKey(b []byte) (SecretKey, error) {
	if _, err := untag(b, SecKeySize); err != nil {
		return nil, err
	}
	s := make(SecretKey, len(b))
	copy(s, b)
	return s, nil
}

func (s SecretKey) Code() uint64 { return Code }

// Raw is the secret key material without the algorithm tag.
func (s SecretKey) Raw() []byte { return s[tagSize:] }

func (s SecretKey) Encode() []byte { return append([]byte{}, s...) }

func (s SecretKey) scalar() *ristretto255.Scalar {
	return ristretto255.NewScalar().FromUniformBytes(s.Raw())
}

// PubKey derives the public key. Derivation is deterministic.
func (s SecretKey) PubKey() algo.PubKey {
	e := ristretto255.NewElement().ScalarBaseMult(s.scalar())
	return PublicKey(tagged(e.Encode(nil)))
}

// Sign produces a randomized Schnorr signature over digest.
func (s SecretKey) Sign(rand io.Reader, digest algo.Digest) (algo.Sig, error) {
	var noise [32]byte
	if _, err := io.ReadFull(rand, noise[:]); err != nil {
		return nil, fmt.Errorf("drawing signature noise: %w", err)
	}

	h := sha512.New()
	h.Write([]byte(nonceDomain))
	h.Write(noise[:])
	h.Write(s.Raw())
	h.Write(digest[:])
	r := ristretto255.NewScalar().FromUniformBytes(h.Sum(nil))

	R := ristretto255.NewElement().ScalarBaseMult(r).Encode(nil)
	a := s.scalar()
	A := ristretto255.NewElement().ScalarBaseMult(a).Encode(nil)
	c := challenge(R, A, digest)

	z := ristretto255.NewScalar().Multiply(c, a)
	z = ristretto255.NewScalar().Add(z, r)

	raw := make([]byte, 0, SigSize)
	raw = append(raw, R...)
	raw = z.Encode(raw)
	return Signature(tagged(raw)), nil
}

func challenge(R, A []byte, digest algo.Digest) *ristretto255.Scalar {
	h := sha512.New()
	h.Write([]byte(challengeDomain))
	h.Write(R)
	h.Write(A)
	h.Write(digest[:])
	return ristretto255.NewScalar().FromUniformBytes(h.Sum(nil))
}

// PublicKey is a tagged 32-byte public key.
type PublicKey []byte

// DecodePubKey decodes a tagged public key encoding, rejecting payloads
// that are not canonical group elements.
func DecodePubKey(b []byte) (PublicKey, error) {
	raw, err := untag(b, PubKeySize)
	if err != nil {
		return nil, err
	}
	if err := ristretto255.NewElement().Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", algo.ErrBadPayload, err)
	}
	v := make(PublicKey, len(b))
	copy(v, b)
	return v, nil
}

func (v PublicKey) Code() uint64 { return Code }

// Raw is the key material without the algorithm tag.
func (v PublicKey) Raw() []byte { return v[tagSize:] }

func (v PublicKey) Encode() []byte { return append([]byte{}, v...) }

// Fingerprint is the first four bytes of the raw key encoding.
func (v PublicKey) Fingerprint() algo.Fingerprint {
	var f algo.Fingerprint
	copy(f[:], v.Raw())
	return f
}

// Verify reports whether sig is a valid signature over digest. Malformed
// input of any kind yields false.
func (v PublicKey) Verify(digest algo.Digest, sig algo.Sig) bool {
	if sig == nil || sig.Code() != Code {
		return false
	}
	raw := sig.Raw()
	if len(raw) != SigSize {
		return false
	}
	R := ristretto255.NewElement()
	if err := R.Decode(raw[:32]); err != nil {
		return false
	}
	z := ristretto255.NewScalar()
	if err := z.Decode(raw[32:]); err != nil {
		return false
	}
	A := ristretto255.NewElement()
	if err := A.Decode(v.Raw()); err != nil {
		return false
	}

	c := challenge(raw[:32], v.Raw(), digest)
	// z*B == R + c*A, checked as R == (-c)*A + z*B.
	minusC := ristretto255.NewScalar().Negate(c)
	rhs := ristretto255.NewElement().VarTimeDoubleScalarBaseMult(minusC, A, z)
	return rhs.Equal(R) == 1
}

// String is the canonical chunked baid58 id string.
func (v PublicKey) String() string { return baid58.Format(algo.HRI, v) }

// Mnemonic is the word rendering of the id checksum.
func (v PublicKey) Mnemonic() string { return baid58.Mnemonic(v) }

// Signature is a tagged 64-byte Schnorr signature.
type Signature []byte

// DecodeSig decodes a tagged signature encoding.
func DecodeSig(b []byte) (Signature, error) {
	if _, err := untag(b, SigSize); err != nil {
		return nil, err
	}
	s := make(Signature, len(b))
	copy(s, b)
	return s, nil
}

func (s Signature) Code() uint64 { return Code }

func (s Signature) Raw() []byte { return s[tagSize:] }

func (s Signature) Encode() []byte { return append([]byte{}, s...) }

// Bindle content capability for secret keys, so a key can be armored for
// backup. The bindle id of a secret key is its public key.

func (s SecretKey) BindleMagic() [4]byte { return [4]byte{'S', 'S', 'S', 'K'} }

func (s SecretKey) PlateTitle() string { return "SSID SECRET KEY" }

func (s SecretKey) BindleID() algo.PubKey { return s.PubKey() }

func (s SecretKey) BindleMnemonic() string { return s.PubKey().Mnemonic() }

func (s SecretKey) BindleHeaders() map[string]string { return nil }

func (s SecretKey) EncodeStrict(w *strict.Writer) error {
	w.Raw(s.Encode())
	return w.Err()
}

func (s *SecretKey) DecodeStrict(r *strict.Reader) error {
	sk, err := algo.ReadSecKey(r)
	if err != nil {
		return err
	}
	rk, ok := sk.(SecretKey)
	if !ok {
		return fmt.Errorf("%w: algorithm tag %d", algo.ErrBadPayload, sk.Code())
	}
	*s = rk
	return nil
}
