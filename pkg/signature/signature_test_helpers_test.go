package signature

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"io"
	"math/big"

	"github.com/mranest/godss/pkg/token"
)

type fakeCert struct {
	der []byte
	id  string
	ski []byte
}

func (f *fakeCert) DEREncoding() []byte              { return f.der }
func (f *fakeCert) PublicKeyAlgorithm() string       { return "RSA" }
func (f *fakeCert) PublicKey() any                   { return nil }
func (f *fakeCert) SubjectDN() pkix.Name             { return pkix.Name{CommonName: "subject"} }
func (f *fakeCert) IssuerDN() pkix.Name              { return pkix.Name{CommonName: "issuer"} }
func (f *fakeCert) SerialNumber() *big.Int           { return big.NewInt(1) }
func (f *fakeCert) SubjectKeyIdentifier() []byte     { return f.ski }
func (f *fakeCert) AsASN1Holder() token.IssuerSerial { return token.IssuerSerial{} }
func (f *fakeCert) DSSID() string                    { return f.id }

// fakeDigester is a validation.DigestEngine test double that returns a
// fixed digest regardless of input, letting tests control whether
// CheckSigningCertificate's comparison matches.
type fakeDigester struct {
	sum []byte
	err error
}

func (d *fakeDigester) Digest(data []byte, alg asn1.ObjectIdentifier) ([]byte, error) {
	return d.sum, d.err
}

func (d *fakeDigester) DigestStream(r io.Reader, alg asn1.ObjectIdentifier) ([]byte, error) {
	return d.sum, d.err
}

// fakeVerifier is a validation.CryptoVerifier test double whose verdict is
// fixed at construction.
type fakeVerifier struct {
	ok  bool
	err error
}

func (v *fakeVerifier) Verify(publicKey any, algorithm asn1.ObjectIdentifier, pss *token.PSSParameters, signed, signature []byte) (bool, error) {
	return v.ok, v.err
}
