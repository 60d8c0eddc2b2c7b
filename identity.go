// Package ssid implements the self-sovereign identity model: an identity
// is a public key bound to a single-use seal on a ledger; revoking it
// requires proof the seal was consumed, and the revocation history forms
// an append-only certificate chain any third party can verify offline.
package ssid

import (
	"crypto/sha256"
	"fmt"

	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/seal"
	"github.com/cyphernet-dao/go-ssid/strict"
)

// digestConfinement bounds the serialized identity that gets hashed.
const digestConfinement = 256

// Identity is the atomic "who": a public key bound to a seal.
type Identity struct {
	Key  algo.PubKey
	Seal seal.Seal
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%s", id.Key, id.Seal)
}

func (id Identity) Fingerprint() algo.Fingerprint { return id.Key.Fingerprint() }

// Equal reports whether two identities carry the same key and seal.
func (id Identity) Equal(other Identity) bool {
	return algo.Equal(id.Key, other.Key) && id.Seal == other.Seal
}

// Digest is the SHA-256 of the identity's confined canonical serialization.
// It is the message signed by the genesis signature.
func (id Identity) Digest() algo.Digest {
	w := strict.NewWriterLimit(digestConfinement)
	if err := id.EncodeStrict(w); err != nil {
		panic("ssid: serialized identity exceeds 256-byte confinement")
	}
	b, _ := w.Bytes()
	return sha256.Sum256(b)
}

func (id Identity) EncodeStrict(w *strict.Writer) error {
	w.Raw(id.Key.Encode())
	return id.Seal.EncodeStrict(w)
}

func (id *Identity) DecodeStrict(r *strict.Reader) error {
	key, err := algo.ReadPubKey(r)
	if err != nil {
		return err
	}
	id.Key = key
	return id.Seal.DecodeStrict(r)
}

// Revocation is one chain transition: a new identity, plus proof that the
// previous identity's seal was closed.
type Revocation struct {
	NewIdentity Identity
	Proof       seal.Proof
}

func (rev *Revocation) EncodeStrict(w *strict.Writer) error {
	if err := rev.NewIdentity.EncodeStrict(w); err != nil {
		return err
	}
	return rev.Proof.EncodeStrict(w)
}

func (rev *Revocation) DecodeStrict(r *strict.Reader) error {
	if err := rev.NewIdentity.DecodeStrict(r); err != nil {
		return err
	}
	return rev.Proof.DecodeStrict(r)
}

// IdCert is a full identity certificate: the genesis identity, its
// self-signature, and the ordered revocation chain. The chain is
// append-only; entries are never removed or reordered.
type IdCert struct {
	Revocations []Revocation
	GenesisID   Identity
	GenesisSig  algo.Sig
}

// NewIdCert assembles a genesis certificate.
func NewIdCert(id Identity, sig algo.Sig) IdCert {
	return IdCert{GenesisID: id, GenesisSig: sig}
}

// Identity is the current chain head: the last revocation's new identity,
// or genesis if none.
func (c *IdCert) Identity() Identity {
	if n := len(c.Revocations); n > 0 {
		return c.Revocations[n-1].NewIdentity
	}
	return c.GenesisID
}

// IdentityAt returns the identity at chain index i, where 0 is genesis and
// i>0 is the identity installed by revocation i-1.
func (c *IdCert) IdentityAt(i int) Identity {
	if i == 0 {
		return c.GenesisID
	}
	return c.Revocations[i-1].NewIdentity
}

// Fingerprint reflects the current key, never a historical one.
func (c *IdCert) Fingerprint() algo.Fingerprint { return c.Identity().Fingerprint() }

func (c *IdCert) EncodeStrict(w *strict.Writer) error {
	w.SmallLen(len(c.Revocations))
	for i := range c.Revocations {
		if err := c.Revocations[i].EncodeStrict(w); err != nil {
			return err
		}
	}
	if err := c.GenesisID.EncodeStrict(w); err != nil {
		return err
	}
	w.Raw(c.GenesisSig.Encode())
	return w.Err()
}

func (c *IdCert) DecodeStrict(r *strict.Reader) error {
	n, err := r.SmallLen()
	if err != nil {
		return err
	}
	c.Revocations = nil
	if n > 0 {
		c.Revocations = make([]Revocation, n)
		for i := range c.Revocations {
			if err := c.Revocations[i].DecodeStrict(r); err != nil {
				return err
			}
		}
	}
	if err := c.GenesisID.DecodeStrict(r); err != nil {
		return err
	}
	c.GenesisSig, err = algo.ReadSig(r)
	return err
}

// Bindle content capability: a certificate is armorable for exchange. Its
// bindle id is the current public key.

func (c IdCert) BindleMagic() [4]byte { return [4]byte{'S', 'S', 'I', 'D'} }

func (c IdCert) PlateTitle() string { return "SSID IDENTITY CERTIFICATE" }

func (c IdCert) BindleID() algo.PubKey { return c.Identity().Key }

func (c IdCert) BindleMnemonic() string { return c.Identity().Key.Mnemonic() }

func (c IdCert) BindleHeaders() map[string]string { return nil }
