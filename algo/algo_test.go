package algo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyphernet-dao/go-ssid/strict"
)

func TestParseFingerprint(t *testing.T) {
	fp := Fingerprint{0xde, 0xad, 0xbe, 0xef}
	require.Equal(t, "deadbeef", fp.String())

	got, err := ParseFingerprint("deadbeef")
	require.NoError(t, err)
	require.Equal(t, fp, got)

	_, err = ParseFingerprint("nothex!!")
	require.ErrorIs(t, err, ErrBadPayload)

	_, err = ParseFingerprint("deadbe")
	require.ErrorIs(t, err, ErrKeyLength)
}

func TestEqualNil(t *testing.T) {
	require.True(t, Equal(nil, nil))
}

func TestReadUnknownAlgo(t *testing.T) {
	r := strict.NewReader([]byte{0x7e, 1, 2, 3})
	_, err := ReadPubKey(r)
	require.ErrorIs(t, err, ErrUnknownAlgo)
}

func TestLookupUnregistered(t *testing.T) {
	_, ok := Lookup(0xffff)
	require.False(t, ok)
}
