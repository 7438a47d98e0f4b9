package digestalg

import (
	"crypto"
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromOIDRecognizesFullTable(t *testing.T) {
	cases := []struct {
		oid  asn1.ObjectIdentifier
		want crypto.Hash
	}{
		{OIDMD5, crypto.MD5},
		{OIDSHA1, crypto.SHA1},
		{OIDSHA224, crypto.SHA224},
		{OIDSHA256, crypto.SHA256},
		{OIDSHA384, crypto.SHA384},
		{OIDSHA512, crypto.SHA512},
		{OIDSHA3_224, crypto.SHA3_224},
		{OIDSHA3_256, crypto.SHA3_256},
		{OIDSHA3_384, crypto.SHA3_384},
		{OIDSHA3_512, crypto.SHA3_512},
		{OIDRIPEMD160, crypto.RIPEMD160},
	}
	for _, c := range cases {
		h, err := FromOID(c.oid)
		require.NoError(t, err, c.oid.String())
		require.Equal(t, c.want, h)
	}
}

func TestFromOIDRejectsUnknown(t *testing.T) {
	_, err := FromOID(asn1.ObjectIdentifier{9, 9, 9, 9})
	require.Error(t, err)
}

func TestToOIDRoundTrips(t *testing.T) {
	for h, oid := range hashToOID {
		got, err := ToOID(h)
		require.NoError(t, err)
		require.True(t, oid.Equal(got))

		back, err := FromOID(got)
		require.NoError(t, err)
		require.Equal(t, h, back)
	}
}

func TestToOIDRejectsUnregisteredHash(t *testing.T) {
	_, err := ToOID(crypto.BLAKE2b_256)
	require.Error(t, err)
}

func TestSumComputesDigest(t *testing.T) {
	sum, err := Sum(OIDSHA256, []byte("hello"))
	require.NoError(t, err)
	require.Len(t, sum, 32)

	again, err := Sum(OIDSHA256, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, sum, again)

	other, err := Sum(OIDSHA256, []byte("world"))
	require.NoError(t, err)
	require.NotEqual(t, sum, other)
}
