// Package seal models single-use seals: references to unspent outputs on a
// designated ledger, and the closure proofs that evidence a seal was
// consumed by a specific transaction.
package seal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cyphernet-dao/go-ssid/strict"
)

// Ledger tags the chain a seal lives on.
type Ledger uint8

const (
	Bitcoin Ledger = 0x00
	Liquid  Ledger = 0x01
)

var (
	// ErrLedger indicates an unknown ledger tag.
	ErrLedger = errors.New("seal: unknown ledger")
	// ErrTxidLength indicates a txid that is not 32 bytes of hex.
	ErrTxidLength = errors.New("seal: invalid txid length")
	// ErrOutpointFormat indicates an outpoint not of the form "txid:vout".
	ErrOutpointFormat = errors.New("seal: malformed outpoint")
)

func (l Ledger) String() string {
	switch l {
	case Bitcoin:
		return "bitcoin"
	case Liquid:
		return "liquid"
	}
	return fmt.Sprintf("ledger(%d)", uint8(l))
}

func (l Ledger) known() bool { return l == Bitcoin || l == Liquid }

// Txid identifies a ledger transaction.
type Txid [32]byte

func (t Txid) String() string { return hex.EncodeToString(t[:]) }

// ParseTxid parses the 64-character hex form of a txid.
func ParseTxid(s string) (Txid, error) {
	var t Txid
	b, err := hex.DecodeString(s)
	if err != nil {
		return t, fmt.Errorf("%w: %s", ErrOutpointFormat, err)
	}
	if len(b) != len(t) {
		return t, ErrTxidLength
	}
	copy(t[:], b)
	return t, nil
}

// Outpoint is a transaction id paired with an output index.
type Outpoint struct {
	Txid Txid
	Vout uint32
}

func (o Outpoint) String() string { return fmt.Sprintf("%s:%d", o.Txid, o.Vout) }

// ParseOutpoint parses "txid:vout".
func ParseOutpoint(s string) (Outpoint, error) {
	var o Outpoint
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return o, ErrOutpointFormat
	}
	txid, err := ParseTxid(s[:i])
	if err != nil {
		return o, err
	}
	vout, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return o, fmt.Errorf("%w: output index: %s", ErrOutpointFormat, err)
	}
	o.Txid = txid
	o.Vout = uint32(vout)
	return o, nil
}

func (o Outpoint) encodeStrict(w *strict.Writer) {
	w.Raw(o.Txid[:])
	w.U32(o.Vout)
}

func (o *Outpoint) decodeStrict(r *strict.Reader) error {
	b, err := r.Raw(len(o.Txid))
	if err != nil {
		return err
	}
	copy(o.Txid[:], b)
	o.Vout, err = r.U32()
	return err
}

// Seal is a single-use reference to an unspent ledger output. It is
// immutable once created.
type Seal struct {
	Ledger   Ledger
	Outpoint Outpoint
}

func (s Seal) String() string { return fmt.Sprintf("%s:%s", s.Ledger, s.Outpoint) }

// Parse parses "<ledger>:<txid>:<vout>", defaulting to the bitcoin ledger
// when the prefix is absent.
func Parse(s string) (Seal, error) {
	switch {
	case strings.HasPrefix(s, "bitcoin:"):
		o, err := ParseOutpoint(strings.TrimPrefix(s, "bitcoin:"))
		return Seal{Bitcoin, o}, err
	case strings.HasPrefix(s, "liquid:"):
		o, err := ParseOutpoint(strings.TrimPrefix(s, "liquid:"))
		return Seal{Liquid, o}, err
	default:
		o, err := ParseOutpoint(s)
		return Seal{Bitcoin, o}, err
	}
}

func (s Seal) EncodeStrict(w *strict.Writer) error {
	w.U8(uint8(s.Ledger))
	s.Outpoint.encodeStrict(w)
	return w.Err()
}

func (s *Seal) DecodeStrict(r *strict.Reader) error {
	tag, err := r.U8()
	if err != nil {
		return err
	}
	s.Ledger = Ledger(tag)
	if !s.Ledger.known() {
		return fmt.Errorf("%w: tag %d", ErrLedger, tag)
	}
	return s.Outpoint.decodeStrict(r)
}
