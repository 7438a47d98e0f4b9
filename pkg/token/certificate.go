package token

import (
	"crypto/x509/pkix"
	"math/big"
)

// IssuerSerial is the core's own minimal "certificate holder" shape used to
// match a CMS SignerInfo's SignerIdentifier against a candidate certificate
// (spec §4.2 step 1). It deliberately does not alias any CMS library's
// internal issuer-and-serial type: those are typically unexported, so
// callers wiring a CMS parser or a CertificateToken implementation translate into
// this shape at the boundary.
type IssuerSerial struct {
	IssuerRawDN  []byte
	SerialNumber *big.Int
}

// Equal reports whether two issuer+serial holders identify the same
// certificate.
func (a IssuerSerial) Equal(b IssuerSerial) bool {
	if a.SerialNumber == nil || b.SerialNumber == nil {
		return false
	}
	return a.SerialNumber.Cmp(b.SerialNumber) == 0 && string(a.IssuerRawDN) == string(b.IssuerRawDN)
}

// CertificateToken is the capability set the core consumes from an opaque
// X.509 certificate bearer (spec §6). Implementations are supplied by the
// caller; the core never parses certificate bytes itself.
type CertificateToken interface {
	// DEREncoding returns the certificate's DER encoding.
	DEREncoding() []byte

	// PublicKeyAlgorithm names the public-key algorithm (e.g. "RSA",
	// "ECDSA", "Ed25519").
	PublicKeyAlgorithm() string

	// PublicKey returns the raw public key for use by a CryptoVerifier.
	PublicKey() any

	SubjectDN() pkix.Name
	IssuerDN() pkix.Name
	SerialNumber() *big.Int
	SubjectKeyIdentifier() []byte

	// AsASN1Holder produces the ASN.1 "certificate holder" representation
	// (issuer+serial) used to match a CMS SignerInfo's SID against this
	// certificate, per spec §4.2 step 1.
	AsASN1Holder() IssuerSerial

	// DSSID returns the stable identifier this certificate is keyed by in
	// a CertificatePool.
	DSSID() string
}

// MatchesSID reports whether candidate is the certificate identified by a
// CMS SignerInfo's SignerIdentifier, tried first by issuer+serial and
// falling back to subject-key-identifier (spec §4.2 step 1).
func MatchesSID(candidate CertificateToken, sid IssuerSerial, subjectKeyID []byte) bool {
	if sid.SerialNumber != nil && candidate.AsASN1Holder().Equal(sid) {
		return true
	}
	if len(subjectKeyID) > 0 && len(candidate.SubjectKeyIdentifier()) > 0 {
		return string(subjectKeyID) == string(candidate.SubjectKeyIdentifier())
	}
	return false
}
