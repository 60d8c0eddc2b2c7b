package seal

import (
	"errors"
	"fmt"

	"github.com/cyphernet-dao/go-ssid/strict"
)

// MaxMerkleDepth bounds the inclusion path length a proof may carry.
const MaxMerkleDepth = 32

var (
	// ErrLedgerMismatch indicates the proof targets a different ledger than
	// the seal it is checked against.
	ErrLedgerMismatch = errors.New("seal: proof ledger does not match seal")
	// ErrSealTxMismatch indicates the defining transaction does not assign
	// the sealed outpoint.
	ErrSealTxMismatch = errors.New("seal: defining tx does not match sealed outpoint")
	// ErrVoutRange indicates the sealed output index exceeds the defining
	// transaction's outputs.
	ErrVoutRange = errors.New("seal: sealed output index out of range")
	// ErrNotSpent indicates the witness transaction does not consume the
	// sealed outpoint.
	ErrNotSpent = errors.New("seal: witness tx does not spend sealed outpoint")
	// ErrEmptyPath indicates a proof with no inclusion path.
	ErrEmptyPath = errors.New("seal: empty merkle path")
	// ErrPathTooDeep indicates an inclusion path over MaxMerkleDepth nodes.
	ErrPathTooDeep = errors.New("seal: merkle path too deep")
)

// Proof evidences that a seal was closed: the witness transaction spends
// the exact outpoint the defining (seal) transaction assigns. The merkle
// path ties the witness transaction to a block; validating it against a
// trusted header is the job of an external verifier.
type Proof struct {
	Ledger     Ledger
	SealTx     Tx
	WitnessTx  Tx
	MerklePath [][32]byte
}

// Closes checks, structurally, that the proof closes s. Chain-confirmed
// validity is out of scope here.
func (p *Proof) Closes(s Seal) error {
	if p.Ledger != s.Ledger {
		return fmt.Errorf("%w: proof %s, seal %s", ErrLedgerMismatch, p.Ledger, s.Ledger)
	}
	if p.SealTx.TxID() != s.Outpoint.Txid {
		return ErrSealTxMismatch
	}
	if int(s.Outpoint.Vout) >= len(p.SealTx.Outputs) {
		return fmt.Errorf("%w: vout %d of %d outputs", ErrVoutRange, s.Outpoint.Vout, len(p.SealTx.Outputs))
	}
	if !p.WitnessTx.Spends(s.Outpoint) {
		return ErrNotSpent
	}
	if len(p.MerklePath) == 0 {
		return ErrEmptyPath
	}
	if len(p.MerklePath) > MaxMerkleDepth {
		return fmt.Errorf("%w: %d nodes", ErrPathTooDeep, len(p.MerklePath))
	}
	return nil
}

func (p *Proof) EncodeStrict(w *strict.Writer) error {
	w.U8(uint8(p.Ledger))
	if err := p.SealTx.EncodeStrict(w); err != nil {
		return err
	}
	if err := p.WitnessTx.EncodeStrict(w); err != nil {
		return err
	}
	w.LargeLen(len(p.MerklePath))
	for i := range p.MerklePath {
		w.Raw(p.MerklePath[i][:])
	}
	return w.Err()
}

func (p *Proof) DecodeStrict(r *strict.Reader) error {
	tag, err := r.U8()
	if err != nil {
		return err
	}
	p.Ledger = Ledger(tag)
	if !p.Ledger.known() {
		return fmt.Errorf("%w: tag %d", ErrLedger, tag)
	}
	if err := p.SealTx.DecodeStrict(r); err != nil {
		return err
	}
	if err := p.WitnessTx.DecodeStrict(r); err != nil {
		return err
	}
	n, err := r.LargeLen()
	if err != nil {
		return err
	}
	if n > MaxMerkleDepth {
		return fmt.Errorf("%w: %d nodes", ErrPathTooDeep, n)
	}
	p.MerklePath = make([][32]byte, n)
	for i := range p.MerklePath {
		b, err := r.Raw(32)
		if err != nil {
			return err
		}
		copy(p.MerklePath[i][:], b)
	}
	return nil
}
