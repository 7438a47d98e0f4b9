// Package cryptobackend provides the default CryptoBackend handle: a
// concrete DigestEngine + CryptoVerifier pair bundling the digest and
// signature-verification primitives the core needs, injected at session
// construction instead of read from a process-wide singleton (spec §9
// design note "Global security-provider singleton").
//
// Grounded on the teacher's publicKeySize/verifyP7Signature pattern in
// pkg/pdfcpu/sign/sign.go and pkg/pdfcpu/sign/pkcs7.go: the same
// algorithm-dispatch-by-public-key-type shape, generalized from "verify
// one PDF's PKCS#7 signer" to "verify an arbitrary signature given an
// algorithm OID and optional PSS parameters".
package cryptobackend

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/asn1"
	"io"

	"github.com/pkg/errors"

	"github.com/mranest/godss/pkg/digestalg"
	"github.com/mranest/godss/pkg/token"
)

var (
	oidRSAEncryption   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidRSASSAPSS       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}
	oidECDSAWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}
	oidECDSAWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}
	oidECDSAWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}
	oidEd25519         = asn1.ObjectIdentifier{1, 3, 101, 112}
)

// Backend is the default CryptoBackend: a DigestEngine and CryptoVerifier
// backed by the Go standard library's crypto packages plus digestalg's OID
// table. Sessions may carry different backends (spec §9) by implementing
// validation.DigestEngine / validation.CryptoVerifier independently.
type Backend struct{}

// New returns the default backend.
func New() *Backend { return &Backend{} }

// Digest implements validation.DigestEngine.
func (b *Backend) Digest(data []byte, alg asn1.ObjectIdentifier) ([]byte, error) {
	sum, err := digestalg.Sum(alg, data)
	if err != nil {
		return nil, token.NewCryptoBackendError(err)
	}
	return sum, nil
}

// DigestStream implements validation.DigestEngine.
func (b *Backend) DigestStream(r io.Reader, alg asn1.ObjectIdentifier) ([]byte, error) {
	h, err := digestalg.FromOID(alg)
	if err != nil {
		return nil, token.NewCryptoBackendError(err)
	}
	hasher := h.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return nil, errors.Wrap(err, "cryptobackend: read timestamped content")
	}
	return hasher.Sum(nil), nil
}

// Verify implements validation.CryptoVerifier. It dispatches on the
// signature-algorithm OID the same way the teacher dispatches on public
// key concrete type in sign.go's publicKeySize, but keyed on the
// AlgorithmIdentifier the caller resolved from the SignerInfo instead of
// inferring it from the key alone (a key can sign under more than one
// digest).
func (b *Backend) Verify(publicKey any, algorithm asn1.ObjectIdentifier, pss *token.PSSParameters, signed, signature []byte) (bool, error) {
	switch {
	case algorithm.Equal(oidRSASSAPSS):
		return b.verifyRSAPSS(publicKey, pss, signed, signature)
	case algorithm.Equal(oidRSAEncryption):
		return b.verifyRSAPKCS1(publicKey, signed, signature, crypto.SHA256)
	case algorithm.Equal(oidECDSAWithSHA256):
		return b.verifyECDSA(publicKey, signed, signature, crypto.SHA256)
	case algorithm.Equal(oidECDSAWithSHA384):
		return b.verifyECDSA(publicKey, signed, signature, crypto.SHA384)
	case algorithm.Equal(oidECDSAWithSHA512):
		return b.verifyECDSA(publicKey, signed, signature, crypto.SHA512)
	case algorithm.Equal(oidEd25519):
		return b.verifyEd25519(publicKey, signed, signature)
	default:
		return false, token.NewCryptoBackendError(errors.Errorf("cryptobackend: unsupported signature algorithm OID %s", algorithm.String()))
	}
}

func (b *Backend) verifyRSAPKCS1(publicKey any, signed, signature []byte, h crypto.Hash) (bool, error) {
	pub, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return false, token.NewCryptoBackendError(errors.Errorf("cryptobackend: expected *rsa.PublicKey, got %T", publicKey))
	}
	digest, err := digest(h, signed)
	if err != nil {
		return false, err
	}
	err = rsa.VerifyPKCS1v15(pub, h, digest, signature)
	return err == nil, nil
}

func (b *Backend) verifyRSAPSS(publicKey any, pss *token.PSSParameters, signed, signature []byte) (bool, error) {
	pub, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return false, token.NewCryptoBackendError(errors.Errorf("cryptobackend: expected *rsa.PublicKey, got %T", publicKey))
	}
	if pss == nil {
		return false, token.NewCryptoBackendError(errors.New("cryptobackend: RSASSA-PSS requires decoded parameters"))
	}
	h, err := hashByName(pss.HashAlgorithm)
	if err != nil {
		return false, err
	}
	digest, err := digest(h, signed)
	if err != nil {
		return false, err
	}
	opts := &rsa.PSSOptions{SaltLength: pss.SaltLength, Hash: h}
	err = rsa.VerifyPSS(pub, h, digest, signature, opts)
	return err == nil, nil
}

func (b *Backend) verifyECDSA(publicKey any, signed, signature []byte, h crypto.Hash) (bool, error) {
	pub, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return false, token.NewCryptoBackendError(errors.Errorf("cryptobackend: expected *ecdsa.PublicKey, got %T", publicKey))
	}
	digest, err := digest(h, signed)
	if err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(pub, digest, signature), nil
}

func (b *Backend) verifyEd25519(publicKey any, signed, signature []byte) (bool, error) {
	pub, ok := publicKey.(ed25519.PublicKey)
	if !ok {
		return false, token.NewCryptoBackendError(errors.Errorf("cryptobackend: expected ed25519.PublicKey, got %T", publicKey))
	}
	return ed25519.Verify(pub, signed, signature), nil
}

func digest(h crypto.Hash, data []byte) ([]byte, error) {
	if !h.Available() {
		return nil, token.NewCryptoBackendError(errors.Errorf("cryptobackend: hash %s not linked into binary", h))
	}
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

func hashByName(name string) (crypto.Hash, error) {
	switch name {
	case "SHA-1", "SHA1":
		return crypto.SHA1, nil
	case "SHA-224", "SHA224":
		return crypto.SHA224, nil
	case "SHA-256", "SHA256", "":
		return crypto.SHA256, nil
	case "SHA-384", "SHA384":
		return crypto.SHA384, nil
	case "SHA-512", "SHA512":
		return crypto.SHA512, nil
	default:
		return 0, token.NewCryptoBackendError(errors.Errorf("cryptobackend: unknown PSS hash algorithm %q", name))
	}
}
