package token

import (
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
)

// X509CertificateToken adapts a parsed *x509.Certificate to the
// CertificateToken contract (spec §6). Parsing the certificate bytes
// themselves is out of the core's scope; this adapter only exposes the
// bit-exact DER wire format and the capability set the core needs once a
// caller has already produced an *x509.Certificate, the way the teacher's
// CertificateDetails extraction in pkg/pdfcpu/sign/sign.go (setupCertDetails,
// certUsage, publicKeySize) reads fields off an already-parsed certificate
// instead of parsing DER itself.
type X509CertificateToken struct {
	cert *x509.Certificate
}

// NewX509CertificateToken wraps cert.
func NewX509CertificateToken(cert *x509.Certificate) *X509CertificateToken {
	return &X509CertificateToken{cert: cert}
}

func (c *X509CertificateToken) DEREncoding() []byte { return c.cert.Raw }

func (c *X509CertificateToken) PublicKeyAlgorithm() string {
	return c.cert.PublicKeyAlgorithm.String()
}

func (c *X509CertificateToken) PublicKey() any { return c.cert.PublicKey }

func (c *X509CertificateToken) SubjectDN() pkix.Name { return c.cert.Subject }

func (c *X509CertificateToken) IssuerDN() pkix.Name { return c.cert.Issuer }

func (c *X509CertificateToken) SerialNumber() *big.Int { return c.cert.SerialNumber }

func (c *X509CertificateToken) SubjectKeyIdentifier() []byte { return c.cert.SubjectKeyId }

func (c *X509CertificateToken) AsASN1Holder() IssuerSerial {
	return IssuerSerial{IssuerRawDN: c.cert.RawIssuer, SerialNumber: c.cert.SerialNumber}
}

func (c *X509CertificateToken) DSSID() string {
	sum := sha256.Sum256(c.cert.Raw)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}

// Certificate returns the wrapped certificate.
func (c *X509CertificateToken) Certificate() *x509.Certificate { return c.cert }
