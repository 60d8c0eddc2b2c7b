package strict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.U8(0x17)
	w.U16(0xbeef)
	w.U32(0xdeadbeef)
	w.U64(0x0102030405060708)
	w.Raw([]byte{1, 2, 3})
	w.TinyBytes([]byte("tiny"))
	w.SmallBytes([]byte("small"))
	b, err := w.Bytes()
	require.NoError(t, err)

	r := NewReader(b)
	u8, err := r.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x17), u8)
	u16, err := r.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xbeef), u16)
	u32, err := r.U32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u32)
	u64, err := r.U64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)
	raw, err := r.Raw(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)
	tiny, err := r.TinyBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("tiny"), tiny)
	small, err := r.SmallBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("small"), small)
	require.NoError(t, r.Done())
}

func TestLittleEndian(t *testing.T) {
	w := NewWriter()
	w.U16(0x0102)
	b, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01}, b)
}

func TestConfinement(t *testing.T) {
	w := NewWriterLimit(4)
	w.U32(1)
	require.NoError(t, w.Err())
	w.U8(1)
	require.ErrorIs(t, w.Err(), ErrSizeExceeded)
	_, err := w.Bytes()
	require.ErrorIs(t, err, ErrSizeExceeded)
}

func TestStickyError(t *testing.T) {
	w := NewWriterLimit(1)
	w.U32(1)
	w.U8(2)
	if !errors.Is(w.Err(), ErrSizeExceeded) {
		t.Fatalf("expected size error, got %v", w.Err())
	}
	if w.Len() != 0 {
		t.Fatalf("failed write must not grow buffer")
	}
}

func TestTinyLenBound(t *testing.T) {
	w := NewWriter()
	w.TinyLen(256)
	require.ErrorIs(t, w.Err(), ErrSizeExceeded)
}

func TestUnexpectedEnd(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.U32()
	require.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestTrailingData(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.U8()
	require.NoError(t, err)
	require.ErrorIs(t, r.Done(), ErrTrailingData)
}
