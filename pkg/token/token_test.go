package token

import (
	"crypto/x509/pkix"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBaseDSSIDStability(t *testing.T) {
	der1 := []byte("same bytes")
	der2 := []byte("same bytes")
	der3 := []byte("different bytes")

	b1 := NewBase(der1, time.Now())
	b2 := NewBase(der2, time.Now())
	b3 := NewBase(der3, time.Now())

	require.Equal(t, b1.DSSID(), b2.DSSID(), "byte-identical DER must produce the same dss_id (P1)")
	require.NotEqual(t, b1.DSSID(), b3.DSSID())
}

func TestBaseCheckIsSignedByIdempotent(t *testing.T) {
	b := NewBase([]byte("token"), time.Now())

	calls := 0
	verify := func(candidate CertificateToken) (bool, pkix.Name, SignatureAlgorithm, string, error) {
		calls++
		return true, pkix.Name{CommonName: "tsa"}, SignatureAlgorithm{EncryptionAlgorithm: "RSA", DigestAlgorithm: "SHA-256"}, "", nil
	}

	v1, err := b.CheckIsSignedBy(nil, verify)
	require.NoError(t, err)
	require.Equal(t, SignatureValidityValid, v1)
	require.Equal(t, "tsa", b.IssuerDN().CommonName)

	v2, err := b.CheckIsSignedBy(nil, verify)
	require.NoError(t, err)
	require.Equal(t, v1, v2, "repeated calls must return the same outcome (P4)")
	require.Equal(t, 1, calls, "verify must not run again once cached")
	require.Equal(t, "tsa", b.IssuerDN().CommonName, "DN must not mutate after the first VALID")
}

func TestBaseCheckIsSignedByInvalidRecordsReason(t *testing.T) {
	b := NewBase([]byte("token"), time.Now())

	v, err := b.CheckIsSignedBy(nil, func(candidate CertificateToken) (bool, pkix.Name, SignatureAlgorithm, string, error) {
		return false, pkix.Name{}, SignatureAlgorithm{}, "signature does not verify", nil
	})
	require.NoError(t, err)
	require.Equal(t, SignatureValidityInvalid, v)
	require.Equal(t, "signature does not verify", b.SignatureInvalidityReason())
	require.Empty(t, b.IssuerDN().CommonName)
}

func TestBaseCheckIsSignedByBackendFaultNotCached(t *testing.T) {
	b := NewBase([]byte("token"), time.Now())

	attempts := 0
	verify := func(candidate CertificateToken) (bool, pkix.Name, SignatureAlgorithm, string, error) {
		attempts++
		if attempts == 1 {
			return false, pkix.Name{}, SignatureAlgorithm{}, "", NewCryptoBackendError(errors.New("backend unavailable"))
		}
		return true, pkix.Name{}, SignatureAlgorithm{}, "", nil
	}

	_, err := b.CheckIsSignedBy(nil, verify)
	require.Error(t, err, "a crypto backend fault must propagate, not be folded into the evidence")

	v, err := b.CheckIsSignedBy(nil, verify)
	require.NoError(t, err)
	require.Equal(t, SignatureValidityValid, v, "a retried verify after a backend fault is not the cached-idempotent path")
}
