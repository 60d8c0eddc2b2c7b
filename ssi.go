package ssid

import (
	"io"

	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/algo/ristretto"
	"github.com/cyphernet-dao/go-ssid/seal"
)

// Ssi couples a secret key with its certificate. It is the only mutation
// entry point: the holder alone extends the chain, and is responsible for
// serializing revocations against the handle.
type Ssi struct {
	Sk   algo.SecKey
	Cert IdCert
}

// Generate creates a fresh identity bound to s, drawing key material from
// rand (production callers pass crypto/rand.Reader).
func Generate(rand io.Reader, s seal.Seal) (*Ssi, error) {
	sk, err := ristretto.Generate(rand)
	if err != nil {
		return nil, err
	}
	identity := Identity{Key: sk.PubKey(), Seal: s}
	sig, err := sk.Sign(rand, identity.Digest())
	if err != nil {
		return nil, err
	}
	return &Ssi{Sk: sk, Cert: NewIdCert(identity, sig)}, nil
}

// Fingerprint reflects the current key.
func (s *Ssi) Fingerprint() algo.Fingerprint { return s.Cert.Fingerprint() }

// Revoke supersedes the current identity: proof must structurally close the
// current seal, a fresh key is generated and bound to next, and the
// revocation is appended to the chain. The handle's secret key is rotated
// to the new key; the old one is no longer needed for anything.
func (s *Ssi) Revoke(rand io.Reader, next seal.Seal, proof seal.Proof) error {
	current := s.Cert.Identity()
	if err := proof.Closes(current.Seal); err != nil {
		return err
	}
	sk, err := ristretto.Generate(rand)
	if err != nil {
		return err
	}
	s.Cert.Revocations = append(s.Cert.Revocations, Revocation{
		NewIdentity: Identity{Key: sk.PubKey(), Seal: next},
		Proof:       proof,
	})
	s.Sk = sk
	return nil
}
