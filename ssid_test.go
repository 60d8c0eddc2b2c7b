package ssid_test

import (
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/seal"
	"github.com/cyphernet-dao/go-ssid/strict"
	"github.com/cyphernet-dao/go-ssid/testing/helpers"
)

// newClosure fabricates a seal over the first output of a synthetic
// defining tx, plus a proof whose witness tx spends it. The nonce keeps
// txids distinct across calls.
func newClosure(nonce uint32) (seal.Seal, seal.Proof) {
	sealTx := seal.Tx{
		Version: 2,
		Inputs: []seal.TxIn{{
			Prev:     seal.Outpoint{Vout: nonce},
			Sequence: 0xffffffff,
		}},
		Outputs: []seal.TxOut{{Value: 10_000, Script: []byte{0x51}}},
	}
	sealed := seal.Outpoint{Txid: sealTx.TxID(), Vout: 0}
	witnessTx := seal.Tx{
		Version: 2,
		Inputs: []seal.TxIn{{
			Prev:     sealed,
			Sequence: 0xffffffff,
		}},
		Outputs: []seal.TxOut{{Value: 9_000, Script: []byte{0x51}}},
	}
	s := seal.Seal{Ledger: seal.Bitcoin, Outpoint: sealed}
	p := seal.Proof{
		Ledger:     seal.Bitcoin,
		SealTx:     sealTx,
		WitnessTx:  witnessTx,
		MerklePath: [][32]byte{{0x01}},
	}
	return s, p
}

func TestGenerateAndVerifyGenesis(t *testing.T) {
	s, _ := newClosure(0)
	me, err := ssid.Generate(rand.Reader, s)
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}

	require.True(t, me.Cert.Identity().Equal(me.Cert.GenesisID))
	require.Equal(t, me.Fingerprint(), me.Cert.Fingerprint())

	n, err := me.Cert.Verify(context.Background(), ssid.StructuralOnly)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestIdentityDigestDeterministic(t *testing.T) {
	s, _ := newClosure(1)
	me := helpers.Must(ssid.Generate(rand.Reader, s))
	id := me.Cert.GenesisID
	require.Equal(t, id.Digest(), id.Digest())

	other := helpers.Must(ssid.Generate(rand.Reader, s))
	require.NotEqual(t, id.Digest(), other.Cert.GenesisID.Digest())
}

func TestRevocationChain(t *testing.T) {
	const n = 3
	seals := make([]seal.Seal, n+1)
	proofs := make([]seal.Proof, n+1)
	for i := range seals {
		seals[i], proofs[i] = newClosure(uint32(i))
	}

	me := helpers.Must(ssid.Generate(rand.Reader, seals[0]))
	heads := []ssid.Identity{me.Cert.GenesisID}
	for i := 0; i < n; i++ {
		prevKey := me.Cert.Identity().Key
		if err := me.Revoke(rand.Reader, seals[i+1], proofs[i]); err != nil {
			t.Fatalf("revocation %d: %v", i, err)
		}
		head := me.Cert.Identity()
		require.Equal(t, seals[i+1], head.Seal)
		require.False(t, head.Key.String() == prevKey.String())
		heads = append(heads, head)
	}

	// history is retained, in order
	require.Len(t, me.Cert.Revocations, n)
	for i, want := range heads {
		require.True(t, me.Cert.IdentityAt(i).Equal(want), "identity at %d", i)
	}

	valid, err := me.Cert.Verify(context.Background(), ssid.StructuralOnly)
	require.NoError(t, err)
	require.Equal(t, n, valid)
}

func TestRevokeRejectsNonClosingProof(t *testing.T) {
	s0, _ := newClosure(0)
	_, wrong := newClosure(1)

	me := helpers.Must(ssid.Generate(rand.Reader, s0))
	next, _ := newClosure(2)
	err := me.Revoke(rand.Reader, next, wrong)
	require.ErrorIs(t, err, seal.ErrSealTxMismatch)
	require.Empty(t, me.Cert.Revocations)
}

func TestVerifyTamperedChain(t *testing.T) {
	seals := make([]seal.Seal, 4)
	proofs := make([]seal.Proof, 4)
	for i := range seals {
		seals[i], proofs[i] = newClosure(uint32(i))
	}
	me := helpers.Must(ssid.Generate(rand.Reader, seals[0]))
	for i := 0; i < 3; i++ {
		require.NoError(t, me.Revoke(rand.Reader, seals[i+1], proofs[i]))
	}

	me.Cert.Revocations[1].Proof.MerklePath = nil
	valid, err := me.Cert.Verify(context.Background(), ssid.StructuralOnly)
	require.Equal(t, 1, valid)

	var chainErr *ssid.ChainError
	require.True(t, errors.As(err, &chainErr))
	require.Equal(t, 1, chainErr.ValidUpTo)
	require.ErrorIs(t, err, seal.ErrEmptyPath)
}

func TestVerifyCorruptGenesis(t *testing.T) {
	s0, _ := newClosure(0)
	me := helpers.Must(ssid.Generate(rand.Reader, s0))

	// rebinding the genesis key to another seal invalidates the
	// self-signature
	other, _ := newClosure(7)
	me.Cert.GenesisID.Seal = other

	valid, err := me.Cert.Verify(context.Background(), ssid.StructuralOnly)
	require.Equal(t, -1, valid)
	require.ErrorIs(t, err, ssid.ErrGenesisSig)

	var chainErr *ssid.ChainError
	require.True(t, errors.As(err, &chainErr))
	require.Equal(t, -1, chainErr.ValidUpTo)
}

type rejectAll struct{ err error }

func (r rejectAll) VerifyProof(context.Context, *seal.Proof, seal.Seal) error { return r.err }

func TestVerifyInjectedVerifier(t *testing.T) {
	s0, p0 := newClosure(0)
	s1, _ := newClosure(1)
	me := helpers.Must(ssid.Generate(rand.Reader, s0))
	require.NoError(t, me.Revoke(rand.Reader, s1, p0))

	sentinel := errors.New("no confirmation")
	valid, err := me.Cert.Verify(context.Background(), rejectAll{sentinel})
	require.Equal(t, 0, valid)
	require.ErrorIs(t, err, sentinel)
}

func TestIdCertStrictRoundTrip(t *testing.T) {
	s0, p0 := newClosure(0)
	s1, _ := newClosure(1)
	me := helpers.Must(ssid.Generate(rand.Reader, s0))
	require.NoError(t, me.Revoke(rand.Reader, s1, p0))

	w := strict.NewWriter()
	require.NoError(t, me.Cert.EncodeStrict(w))
	b, err := w.Bytes()
	require.NoError(t, err)

	var got ssid.IdCert
	r := strict.NewReader(b)
	require.NoError(t, got.DecodeStrict(r))
	require.NoError(t, r.Done())

	require.True(t, got.Identity().Equal(me.Cert.Identity()))
	require.True(t, got.GenesisID.Equal(me.Cert.GenesisID))
	require.Len(t, got.Revocations, 1)

	valid, err := got.Verify(context.Background(), ssid.StructuralOnly)
	require.NoError(t, err)
	require.Equal(t, 1, valid)
}

func TestSigCert(t *testing.T) {
	s0, _ := newClosure(0)
	me := helpers.Must(ssid.Generate(rand.Reader, s0))

	var digest [32]byte
	copy(digest[:], helpers.RandomBytes(32))

	sc, err := ssid.NewSigCert(rand.Reader, me, digest)
	require.NoError(t, err)
	require.True(t, sc.VerifyDigest(digest))
	require.True(t, sc.Identity().Equal(me.Cert.Identity()))

	var other [32]byte
	require.False(t, sc.VerifyDigest(other))
}

func TestSigCertAfterRevocation(t *testing.T) {
	s0, p0 := newClosure(0)
	s1, _ := newClosure(1)
	me := helpers.Must(ssid.Generate(rand.Reader, s0))
	require.NoError(t, me.Revoke(rand.Reader, s1, p0))

	var digest [32]byte
	digest[0] = 0x5a
	sc := helpers.Must(ssid.NewSigCert(rand.Reader, me, digest))

	// signed by the rotated key, verifiable against the chain head
	require.True(t, sc.VerifyDigest(digest))
	require.True(t, sc.Identity().Equal(me.Cert.Revocations[0].NewIdentity))
}
