package timestamp

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashOIDNameRecognizesFullTable(t *testing.T) {
	require.Equal(t, "SHA-1", hashOIDName(oidSHA1))
	require.Equal(t, "SHA-256", hashOIDName(oidSHA256))
	require.Equal(t, "SHA-384", hashOIDName(asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}))
	require.Equal(t, "RIPEMD-160", hashOIDName(asn1.ObjectIdentifier{1, 3, 36, 3, 2, 1}))
}

func TestHashOIDNameDefaultsToSHA256WhenAbsent(t *testing.T) {
	require.Equal(t, "SHA-256", hashOIDName(nil))
	require.Equal(t, "SHA-256", hashOIDName(asn1.ObjectIdentifier{}))
}

func TestHashOIDNameFallsBackToOIDString(t *testing.T) {
	unknown := asn1.ObjectIdentifier{1, 2, 3, 4, 5}
	require.Equal(t, unknown.String(), hashOIDName(unknown))
}
