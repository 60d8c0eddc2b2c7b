package seal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyphernet-dao/go-ssid/strict"
)

// closure builds a seal over the first output of a fresh defining tx, plus
// a proof whose witness tx spends that output.
func closure(t *testing.T) (Seal, Proof) {
	t.Helper()
	sealTx := Tx{
		Version: 2,
		Inputs: []TxIn{{
			Prev:     Outpoint{Vout: 0},
			Sequence: 0xffffffff,
		}},
		Outputs: []TxOut{{Value: 50_000, Script: []byte{0x51}}},
	}
	sealed := Outpoint{Txid: sealTx.TxID(), Vout: 0}
	witnessTx := Tx{
		Version: 2,
		Inputs: []TxIn{{
			Prev:     sealed,
			Sequence: 0xffffffff,
			Witness:  [][]byte{{0x01, 0x02}},
		}},
		Outputs: []TxOut{{Value: 49_000, Script: []byte{0x51}}},
	}
	s := Seal{Ledger: Bitcoin, Outpoint: sealed}
	p := Proof{
		Ledger:     Bitcoin,
		SealTx:     sealTx,
		WitnessTx:  witnessTx,
		MerklePath: [][32]byte{{0xab}},
	}
	return s, p
}

func TestProofCloses(t *testing.T) {
	s, p := closure(t)
	require.NoError(t, p.Closes(s))
}

func TestProofClosesErrors(t *testing.T) {
	s, p := closure(t)

	bad := p
	bad.Ledger = Liquid
	require.ErrorIs(t, bad.Closes(s), ErrLedgerMismatch)

	bad = p
	bad.SealTx.LockTime++
	require.ErrorIs(t, bad.Closes(s), ErrSealTxMismatch)

	bad = p
	bad.WitnessTx = Tx{Version: 2}
	require.ErrorIs(t, bad.Closes(s), ErrNotSpent)

	bad = p
	bad.MerklePath = nil
	require.ErrorIs(t, bad.Closes(s), ErrEmptyPath)

	bad = p
	bad.MerklePath = make([][32]byte, MaxMerkleDepth+1)
	require.ErrorIs(t, bad.Closes(s), ErrPathTooDeep)
}

func TestProofClosesVoutRange(t *testing.T) {
	s, p := closure(t)
	// point the seal past the defining tx's outputs; the witness must spend
	// the same outpoint so the range check is what trips
	s.Outpoint.Vout = 5
	p.WitnessTx.Inputs[0].Prev = s.Outpoint
	require.ErrorIs(t, p.Closes(s), ErrVoutRange)
}

func TestTxIDIgnoresWitness(t *testing.T) {
	_, p := closure(t)
	tx := p.WitnessTx
	id := tx.TxID()

	tx.Inputs[0].Witness = [][]byte{{0xde, 0xad}, {0xbe, 0xef}}
	require.Equal(t, id, tx.TxID())

	tx.Outputs[0].Value++
	require.NotEqual(t, id, tx.TxID())
}

func TestProofStrictRoundTrip(t *testing.T) {
	_, p := closure(t)

	w := strict.NewWriter()
	require.NoError(t, p.EncodeStrict(w))
	b, err := w.Bytes()
	require.NoError(t, err)

	var got Proof
	r := strict.NewReader(b)
	require.NoError(t, got.DecodeStrict(r))
	require.NoError(t, r.Done())

	require.Equal(t, p.Ledger, got.Ledger)
	require.Equal(t, p.MerklePath, got.MerklePath)
	require.Equal(t, p.SealTx.TxID(), got.SealTx.TxID())
	require.Equal(t, p.WitnessTx.TxID(), got.WitnessTx.TxID())
	require.Equal(t, p.WitnessTx.Inputs[0].Witness, got.WitnessTx.Inputs[0].Witness)
}

func TestTxStrictRoundTripEmptyScripts(t *testing.T) {
	tx := Tx{Version: 1, LockTime: 101}

	w := strict.NewWriter()
	require.NoError(t, tx.EncodeStrict(w))
	b, err := w.Bytes()
	require.NoError(t, err)

	var got Tx
	require.NoError(t, got.DecodeStrict(strict.NewReader(b)))
	require.Equal(t, tx.Version, got.Version)
	require.Equal(t, tx.LockTime, got.LockTime)
	require.Empty(t, got.Inputs)
	require.Empty(t, got.Outputs)
}
