package ssid

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyphernet-dao/go-ssid/seal"
)

// ErrGenesisSig indicates a genesis signature that does not verify against
// the genesis key.
var ErrGenesisSig = errors.New("ssid: genesis signature invalid")

// ProofVerifier validates a closure proof against trusted chain state:
// inclusion of the witness transaction under a trusted header, confirmation
// depth, reorg policy. The core never assumes a particular policy; it is
// injected by the caller.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, proof *seal.Proof, closed seal.Seal) error
}

type structuralOnly struct{}

func (structuralOnly) VerifyProof(context.Context, *seal.Proof, seal.Seal) error { return nil }

// StructuralOnly accepts any proof that already passed the structural
// closure checks, without consulting chain state. Use it only where ledger
// confirmation is established out of band.
var StructuralOnly ProofVerifier = structuralOnly{}

// ChainError reports where certificate verification failed. ValidUpTo is
// the index of the last valid identity (0 = genesis, i = identity installed
// by revocation i-1), or -1 when the genesis signature itself is invalid.
// Identities up to and including ValidUpTo remain trustworthy; everything
// after is not.
type ChainError struct {
	ValidUpTo int
	Err       error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("ssid: chain invalid past identity %d: %s", e.ValidUpTo, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// Verify walks the full certificate: the genesis signature, then each
// revocation's proof against the seal of the preceding chain entry, both
// structurally and through the injected verifier. It returns the index of
// the last valid identity; on failure the returned error is a *ChainError
// carrying the same index.
func (c *IdCert) Verify(ctx context.Context, pv ProofVerifier) (int, error) {
	if !c.GenesisID.Key.Verify(c.GenesisID.Digest(), c.GenesisSig) {
		return -1, &ChainError{ValidUpTo: -1, Err: ErrGenesisSig}
	}
	prev := c.GenesisID
	for i := range c.Revocations {
		rev := &c.Revocations[i]
		if err := rev.Proof.Closes(prev.Seal); err != nil {
			return i, &ChainError{ValidUpTo: i, Err: err}
		}
		if err := pv.VerifyProof(ctx, &rev.Proof, prev.Seal); err != nil {
			return i, &ChainError{ValidUpTo: i, Err: err}
		}
		prev = rev.NewIdentity
	}
	return len(c.Revocations), nil
}
