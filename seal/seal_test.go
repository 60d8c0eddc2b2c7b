package seal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyphernet-dao/go-ssid/strict"
)

const txidA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestParseSeal(t *testing.T) {
	s, err := Parse("bitcoin:" + txidA + ":0")
	require.NoError(t, err)
	require.Equal(t, Bitcoin, s.Ledger)
	require.Equal(t, uint32(0), s.Outpoint.Vout)

	s, err = Parse("liquid:" + txidA + ":7")
	require.NoError(t, err)
	require.Equal(t, Liquid, s.Ledger)
	require.Equal(t, uint32(7), s.Outpoint.Vout)

	// no ledger prefix defaults to bitcoin
	s, err = Parse(txidA + ":1")
	require.NoError(t, err)
	require.Equal(t, Bitcoin, s.Ledger)
}

func TestSealStringRoundTrip(t *testing.T) {
	s, err := Parse("liquid:" + txidA + ":3")
	require.NoError(t, err)
	again, err := Parse(s.String())
	require.NoError(t, err)
	require.Equal(t, s, again)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseTxid("zzzz")
	require.ErrorIs(t, err, ErrOutpointFormat)

	_, err = ParseTxid("aabb")
	require.ErrorIs(t, err, ErrTxidLength)

	_, err = ParseOutpoint(txidA)
	require.ErrorIs(t, err, ErrOutpointFormat)

	_, err = ParseOutpoint(txidA + ":notanumber")
	require.ErrorIs(t, err, ErrOutpointFormat)

	_, err = Parse("bitcoin:" + txidA + ":4294967296")
	require.ErrorIs(t, err, ErrOutpointFormat)
}

func TestSealStrictRoundTrip(t *testing.T) {
	s, err := Parse("liquid:" + txidA + ":9")
	require.NoError(t, err)

	w := strict.NewWriter()
	require.NoError(t, s.EncodeStrict(w))
	b, err := w.Bytes()
	require.NoError(t, err)

	var got Seal
	r := strict.NewReader(b)
	require.NoError(t, got.DecodeStrict(r))
	require.NoError(t, r.Done())
	require.Equal(t, s, got)
}

func TestSealDecodeUnknownLedger(t *testing.T) {
	b := make([]byte, 1+32+4)
	b[0] = 0x42
	var s Seal
	err := s.DecodeStrict(strict.NewReader(b))
	require.ErrorIs(t, err, ErrLedger)
}

func TestLedgerString(t *testing.T) {
	require.Equal(t, "bitcoin", Bitcoin.String())
	require.Equal(t, "liquid", Liquid.String())
	require.True(t, strings.HasPrefix(Ledger(9).String(), "ledger("))
}
