package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func generateTestCertificate(t *testing.T, commonName string, serial int64) *x509.Certificate {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject:      pkix.Name{CommonName: commonName},
		Issuer:       pkix.Name{CommonName: commonName + "-issuer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		SubjectKeyId: []byte{byte(serial)},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert
}

func TestX509CertificateTokenCapabilities(t *testing.T) {
	cert := generateTestCertificate(t, "alice", 7)
	tok := NewX509CertificateToken(cert)

	require.Equal(t, cert.Raw, tok.DEREncoding())
	require.Equal(t, "RSA", tok.PublicKeyAlgorithm())
	require.NotNil(t, tok.PublicKey())
	require.Equal(t, "alice", tok.SubjectDN().CommonName)
	require.Equal(t, big.NewInt(7), tok.SerialNumber())
	require.Equal(t, cert.SubjectKeyId, tok.SubjectKeyIdentifier())

	holder := tok.AsASN1Holder()
	require.Equal(t, cert.RawIssuer, holder.IssuerRawDN)
	require.Equal(t, big.NewInt(7), holder.SerialNumber)
}

func TestX509CertificateTokenDSSIDStable(t *testing.T) {
	cert := generateTestCertificate(t, "bob", 1)
	a := NewX509CertificateToken(cert)
	b := NewX509CertificateToken(cert)
	require.Equal(t, a.DSSID(), b.DSSID())
}

func TestMatchesSIDByIssuerAndSerial(t *testing.T) {
	cert := generateTestCertificate(t, "carol", 42)
	tok := NewX509CertificateToken(cert)

	sid := IssuerSerial{IssuerRawDN: cert.RawIssuer, SerialNumber: big.NewInt(42)}
	require.True(t, MatchesSID(tok, sid, nil))

	wrongSID := IssuerSerial{IssuerRawDN: cert.RawIssuer, SerialNumber: big.NewInt(43)}
	require.False(t, MatchesSID(tok, wrongSID, nil))
}

func TestMatchesSIDBySubjectKeyIdentifier(t *testing.T) {
	cert := generateTestCertificate(t, "dave", 9)
	tok := NewX509CertificateToken(cert)

	require.True(t, MatchesSID(tok, IssuerSerial{}, cert.SubjectKeyId))
	require.False(t, MatchesSID(tok, IssuerSerial{}, []byte("not the ski")))
}
