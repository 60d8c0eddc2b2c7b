package ssid

import (
	"encoding/hex"
	"io"

	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/strict"
)

// Signature couples a signed digest with the signature over it.
type Signature struct {
	Digest algo.Digest
	Sig    algo.Sig
}

// SigCert is a self-contained attached signature: the signature plus the
// signer's full certificate, verifiable without any external key lookup.
type SigCert struct {
	Sig  Signature
	Cert IdCert
}

// NewSigCert signs digest with the holder's current key and attaches the
// holder's certificate.
func NewSigCert(rand io.Reader, signer *Ssi, digest algo.Digest) (SigCert, error) {
	sig, err := signer.Sk.Sign(rand, digest)
	if err != nil {
		return SigCert{}, err
	}
	return SigCert{
		Sig:  Signature{Digest: digest, Sig: sig},
		Cert: signer.Cert,
	}, nil
}

// Identity is the signer's current identity.
func (sc *SigCert) Identity() Identity { return sc.Cert.Identity() }

// VerifyDigest reports whether the attached signature covers digest and
// verifies against the signer's current key.
func (sc *SigCert) VerifyDigest(digest algo.Digest) bool {
	if sc.Sig.Digest != digest {
		return false
	}
	return sc.Identity().Key.Verify(sc.Sig.Digest, sc.Sig.Sig)
}

func (sc *SigCert) EncodeStrict(w *strict.Writer) error {
	w.Raw(sc.Sig.Digest[:])
	w.Raw(sc.Sig.Sig.Encode())
	return sc.Cert.EncodeStrict(w)
}

func (sc *SigCert) DecodeStrict(r *strict.Reader) error {
	b, err := r.Raw(len(sc.Sig.Digest))
	if err != nil {
		return err
	}
	copy(sc.Sig.Digest[:], b)
	if sc.Sig.Sig, err = algo.ReadSig(r); err != nil {
		return err
	}
	return sc.Cert.DecodeStrict(r)
}

// Bindle content capability: a detached signature is armorable so signed
// material can travel alongside the signer's history.

func (sc SigCert) BindleMagic() [4]byte { return [4]byte{'S', 'S', 'I', 'G'} }

func (sc SigCert) PlateTitle() string { return "SSID SIGNATURE" }

func (sc SigCert) BindleID() algo.PubKey { return sc.Cert.Identity().Key }

func (sc SigCert) BindleMnemonic() string { return sc.Cert.Identity().Key.Mnemonic() }

func (sc SigCert) BindleHeaders() map[string]string {
	return map[string]string{"Digest": hex.EncodeToString(sc.Sig.Digest[:])}
}
