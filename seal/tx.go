package seal

import (
	"crypto/sha256"

	"github.com/cyphernet-dao/go-ssid/strict"
)

// TxIn is one transaction input.
type TxIn struct {
	Prev     Outpoint
	Script   []byte
	Sequence uint32
	Witness  [][]byte
}

// TxOut is one transaction output.
type TxOut struct {
	Value  uint64
	Script []byte
}

// Tx is the minimal transaction shape closure proofs carry. It is not a
// consensus implementation: only the fields needed to tie a witness
// transaction to a sealed outpoint are modeled.
type Tx struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

func (tx *Tx) encode(w *strict.Writer, withWitness bool) {
	w.U32(tx.Version)
	w.TinyLen(len(tx.Inputs))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		in.Prev.encodeStrict(w)
		w.SmallBytes(in.Script)
		w.U32(in.Sequence)
		if withWitness {
			w.TinyLen(len(in.Witness))
			for _, item := range in.Witness {
				w.SmallBytes(item)
			}
		} else {
			w.TinyLen(0)
		}
	}
	w.TinyLen(len(tx.Outputs))
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		w.U64(out.Value)
		w.SmallBytes(out.Script)
	}
	w.U32(tx.LockTime)
}

func (tx *Tx) EncodeStrict(w *strict.Writer) error {
	tx.encode(w, true)
	return w.Err()
}

func (tx *Tx) DecodeStrict(r *strict.Reader) error {
	var err error
	if tx.Version, err = r.U32(); err != nil {
		return err
	}
	nin, err := r.TinyLen()
	if err != nil {
		return err
	}
	tx.Inputs = make([]TxIn, nin)
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if err = in.Prev.decodeStrict(r); err != nil {
			return err
		}
		if in.Script, err = r.SmallBytes(); err != nil {
			return err
		}
		if in.Sequence, err = r.U32(); err != nil {
			return err
		}
		nwit, err := r.TinyLen()
		if err != nil {
			return err
		}
		if nwit > 0 {
			in.Witness = make([][]byte, nwit)
			for j := range in.Witness {
				if in.Witness[j], err = r.SmallBytes(); err != nil {
					return err
				}
			}
		}
	}
	nout, err := r.TinyLen()
	if err != nil {
		return err
	}
	tx.Outputs = make([]TxOut, nout)
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if out.Value, err = r.U64(); err != nil {
			return err
		}
		if out.Script, err = r.SmallBytes(); err != nil {
			return err
		}
	}
	tx.LockTime, err = r.U32()
	return err
}

// TxID is the double SHA-256 of the serialization with witnesses stripped,
// so adding a witness does not change the id.
func (tx *Tx) TxID() Txid {
	w := strict.NewWriter()
	tx.encode(w, false)
	b, err := w.Bytes()
	if err != nil {
		// A transaction exceeding the confinement bound cannot be built
		// through this package's decode path.
		panic("seal: transaction exceeds confinement bound")
	}
	first := sha256.Sum256(b)
	return Txid(sha256.Sum256(first[:]))
}

// Spends reports whether any input of tx consumes the given outpoint.
func (tx *Tx) Spends(o Outpoint) bool {
	for i := range tx.Inputs {
		if tx.Inputs[i].Prev == o {
			return true
		}
	}
	return false
}
