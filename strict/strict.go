// Package strict implements the length-confined deterministic binary
// encoding used by all SSID wire formats. Integers are little-endian;
// collections carry a fixed-width length prefix sized by their confinement
// bound (tiny = u8, small = u16, large = u32). Whole serializations are
// confined to MaxConfined bytes.
package strict

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxConfined is the upper bound for any confined serialization (16 MiB).
const MaxConfined = 1 << 24

var (
	// ErrSizeExceeded indicates a serialization grew past its confinement
	// bound, or input to decode exceeds it.
	ErrSizeExceeded = errors.New("strict: confined size exceeded")
	// ErrUnexpectedEnd indicates the input ended in the middle of a value.
	ErrUnexpectedEnd = errors.New("strict: unexpected end of data")
	// ErrTrailingData indicates decode completed with bytes left over.
	ErrTrailingData = errors.New("strict: trailing data after value")
)

// Writer accumulates a strict serialization in memory. Errors are sticky:
// once the confinement bound is hit every later call is a no-op and Bytes
// reports the failure.
type Writer struct {
	buf   []byte
	limit int
	err   error
}

// NewWriter returns a Writer confined to MaxConfined bytes.
func NewWriter() *Writer { return &Writer{limit: MaxConfined} }

// NewWriterLimit returns a Writer confined to limit bytes.
func NewWriterLimit(limit int) *Writer {
	if limit > MaxConfined {
		limit = MaxConfined
	}
	return &Writer{limit: limit}
}

func (w *Writer) push(b ...byte) {
	if w.err != nil {
		return
	}
	if len(w.buf)+len(b) > w.limit {
		w.err = ErrSizeExceeded
		return
	}
	w.buf = append(w.buf, b...)
}

func (w *Writer) U8(v uint8) { w.push(v) }

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.push(b[:]...)
}

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.push(b[:]...)
}

func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.push(b[:]...)
}

// Raw appends fixed-width bytes without a length prefix.
func (w *Writer) Raw(b []byte) { w.push(b...) }

// TinyLen writes a u8 collection count.
func (w *Writer) TinyLen(n int) {
	if w.err == nil && n > 0xff {
		w.err = fmt.Errorf("%w: tiny collection holds %d items", ErrSizeExceeded, n)
		return
	}
	w.U8(uint8(n))
}

// SmallLen writes a u16 collection count.
func (w *Writer) SmallLen(n int) {
	if w.err == nil && n > 0xffff {
		w.err = fmt.Errorf("%w: small collection holds %d items", ErrSizeExceeded, n)
		return
	}
	w.U16(uint16(n))
}

// LargeLen writes a u32 collection count.
func (w *Writer) LargeLen(n int) {
	if w.err == nil && uint64(n) > 0xffffffff {
		w.err = fmt.Errorf("%w: large collection holds %d items", ErrSizeExceeded, n)
		return
	}
	w.U32(uint32(n))
}

// TinyBytes writes a u8-length-prefixed byte string.
func (w *Writer) TinyBytes(b []byte) {
	w.TinyLen(len(b))
	w.Raw(b)
}

// SmallBytes writes a u16-length-prefixed byte string.
func (w *Writer) SmallBytes(b []byte) {
	w.SmallLen(len(b))
	w.Raw(b)
}

// Err reports the sticky error, if any.
func (w *Writer) Err() error { return w.err }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated serialization.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// Reader consumes a strict serialization from an in-memory buffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over b. Inputs larger than MaxConfined are
// rejected by decode entry points before a Reader is constructed.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) take(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, ErrUnexpectedEnd
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadByte implements io.ByteReader so varints can be read directly.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U8() (uint8, error) { return r.ReadByte() }

func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Raw reads n fixed-width bytes. The returned slice is a copy.
func (r *Reader) Raw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *Reader) TinyLen() (int, error) {
	v, err := r.U8()
	return int(v), err
}

func (r *Reader) SmallLen() (int, error) {
	v, err := r.U16()
	return int(v), err
}

func (r *Reader) LargeLen() (int, error) {
	v, err := r.U32()
	return int(v), err
}

func (r *Reader) TinyBytes() ([]byte, error) {
	n, err := r.TinyLen()
	if err != nil {
		return nil, err
	}
	return r.Raw(n)
}

func (r *Reader) SmallBytes() ([]byte, error) {
	n, err := r.SmallLen()
	if err != nil {
		return nil, err
	}
	return r.Raw(n)
}

// Rest reports the number of unread bytes.
func (r *Reader) Rest() int { return len(r.buf) - r.off }

// Done fails unless the buffer was consumed exactly.
func (r *Reader) Done() error {
	if r.off != len(r.buf) {
		return ErrTrailingData
	}
	return nil
}
