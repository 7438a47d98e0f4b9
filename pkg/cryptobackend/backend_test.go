package cryptobackend

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mranest/godss/pkg/digestalg"
	"github.com/mranest/godss/pkg/token"
)

func TestDigestMatchesStandardLibrary(t *testing.T) {
	b := New()
	sum, err := b.Digest([]byte("hello"), digestalg.OIDSHA256)
	require.NoError(t, err)

	want := sha256.Sum256([]byte("hello"))
	require.Equal(t, want[:], sum)
}

func TestVerifyRSAPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	msg := []byte("to be signed")
	digest := sha256.Sum256(msg)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	b := New()
	ok, err := b.Verify(&key.PublicKey, oidRSAEncryption, nil, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.Verify(&key.PublicKey, oidRSAEncryption, nil, []byte("tampered"), sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRSAPSS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	msg := []byte("pss message")
	digest := sha256.Sum256(msg)
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}
	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], opts)
	require.NoError(t, err)

	params := &token.PSSParameters{HashAlgorithm: "SHA-256", SaltLength: 32}

	b := New()
	ok, err := b.Verify(&key.PublicKey, oidRSASSAPSS, params, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRSAPSSRequiresParameters(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	b := New()
	_, err = b.Verify(&key.PublicKey, oidRSASSAPSS, nil, []byte("x"), []byte("y"))
	require.Error(t, err)
}

func TestVerifyECDSA(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	msg := []byte("ecdsa message")
	digest := sha256.Sum256(msg)
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	require.NoError(t, err)

	b := New()
	ok, err := b.Verify(&key.PublicKey, oidECDSAWithSHA256, nil, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)

	// a P-521 key under the SHA-512 OID exercises the digest-variant dispatch
	key521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	digest512 := sha512.Sum512(msg)
	sig512, err := ecdsa.SignASN1(rand.Reader, key521, digest512[:])
	require.NoError(t, err)
	ok, err = b.Verify(&key521.PublicKey, oidECDSAWithSHA512, nil, msg, sig512)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := []byte("ed25519 message")
	sig := ed25519.Sign(priv, msg)

	b := New()
	ok, err := b.Verify(pub, oidEd25519, nil, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.Verify(pub, oidEd25519, nil, []byte("other message"), sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyUnsupportedAlgorithmIsCryptoBackendError(t *testing.T) {
	b := New()
	_, err := b.Verify(nil, asn1.ObjectIdentifier{9, 9, 9, 9}, nil, nil, nil)
	require.Error(t, err)

	var cbe *token.CryptoBackendError
	require.ErrorAs(t, err, &cbe)
}

func TestVerifyRejectsMismatchedKeyType(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	b := New()
	_, err = b.Verify(pub, oidRSAEncryption, nil, []byte("x"), []byte("y"))
	require.Error(t, err)
}
