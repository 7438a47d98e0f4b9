package signature

import (
	"bytes"
	"encoding/asn1"

	"github.com/pkg/errors"

	"github.com/mranest/godss/pkg/token"
	"github.com/mranest/godss/pkg/validation"
)

// CandidateSourceHint names how a Candidate's certificate reference was
// discovered (spec §4.6).
type CandidateSourceHint int

const (
	SignedPropertyReference CandidateSourceHint = iota
	UnsignedHeader
	CallerSupplied
)

func (h CandidateSourceHint) String() string {
	switch h {
	case SignedPropertyReference:
		return "SIGNED_PROPERTY_REFERENCE"
	case UnsignedHeader:
		return "UNSIGNED_HEADER"
	case CallerSupplied:
		return "CALLER_SUPPLIED"
	default:
		return "UNKNOWN"
	}
}

// Candidate is one entry of CandidatesForSigningCertificate (spec §4.6):
// a source hint, the certificate it resolved to (nil if unresolved), and
// the validity/election flags CheckSignatureIntegrity fills in.
type Candidate struct {
	SourceHint   CandidateSourceHint
	Certificate  token.CertificateToken
	DigestAlgo   string
	Digest       []byte
	Valid        bool
	Elected      bool
	Disqualified bool
}

// AddCandidate registers a candidate signing certificate reference, mirroring
// the teacher's buildP7CertChains loop over every embedded certificate
// before concluding none validates (pkg/pdfcpu/sign/sign.go), generalized
// to record the source hint and a pending validity flag instead of trying
// chains inline.
func (b *baseSignature) AddCandidate(hint CandidateSourceHint, cert token.CertificateToken, digestAlgo string, digest []byte) *Candidate {
	c := &Candidate{SourceHint: hint, Certificate: cert, DigestAlgo: digestAlgo, Digest: digest}
	b.candidates = append(b.candidates, c)
	return c
}

// CandidatesForSigningCertificate returns every candidate recorded so far.
// Per spec §4.6 it is guaranteed non-null: an empty, non-nil slice when no
// candidate was ever registered.
func (b *baseSignature) CandidatesForSigningCertificate() []*Candidate {
	if b.candidates == nil {
		return []*Candidate{}
	}
	return b.candidates
}

// SetSignedCertificateDigest records the digest of the certificate the
// signed properties reference (XAdES SigningCertificate / CAdES
// ESSCertIDv2), used by CheckSigningCertificate to detect a KeyInfo/CMS-bag
// substitution (S6).
func (b *baseSignature) SetSignedCertificateDigest(alg string, digest []byte) {
	b.signedCertDigestAlg = alg
	b.signedCertDigest = digest
}

// CheckSigningCertificate detects the substitution attack in which the
// KeyInfo set (XAdES) or CMS certificates bag (CAdES) carries a certificate
// whose digest disagrees with the one the signed SigningCertificate
// property references (spec §4.4, S6). It never removes candidates — it
// only withholds election: CandidatesForSigningCertificate keeps returning
// every candidate, but none gets Elected = true when the digest mismatches.
func (b *baseSignature) CheckSigningCertificate(digester validation.DigestEngine) error {
	if len(b.signedCertDigest) == 0 {
		return nil
	}
	oid, err := digestAlgOIDByName(b.signedCertDigestAlg)
	if err != nil {
		return err
	}
	matched := false
	for _, c := range b.candidates {
		if c.Certificate == nil {
			continue
		}
		sum, err := digester.Digest(c.Certificate.DEREncoding(), oid)
		if err != nil {
			return err
		}
		if bytes.Equal(sum, b.signedCertDigest) {
			matched = true
			continue
		}
		// This candidate's certificate disagrees with the signed reference:
		// it cannot be elected even if it otherwise verifies the signature.
		c.Disqualified = true
		c.Valid = false
		c.Elected = false
	}
	if !matched {
		return errors.New("signature: no certificate in the container matches the signed SigningCertificate digest")
	}
	return nil
}

func (b *baseSignature) SigningCertificateToken() token.CertificateToken {
	return b.signingCertificateToken
}

// electSigningCertificate picks the certificate CheckSignatureIntegrity
// should verify against: the caller-provided certificate takes precedence
// (spec §4.4 "optional provided signing certificate, for signatures
// missing the cert"), then the first candidate that CheckSigningCertificate
// didn't already disqualify.
func (b *baseSignature) electSigningCertificate() token.CertificateToken {
	if b.providedSigningCert != nil {
		return b.providedSigningCert
	}
	for _, c := range b.candidates {
		if c.Disqualified || c.Certificate == nil {
			continue
		}
		return c.Certificate
	}
	return nil
}

func digestAlgOIDByName(name string) (asn1.ObjectIdentifier, error) {
	switch name {
	case "SHA-1", "SHA1":
		return asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}, nil
	case "SHA-256", "SHA256", "":
		return asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}, nil
	case "SHA-384", "SHA384":
		return asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}, nil
	case "SHA-512", "SHA512":
		return asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}, nil
	default:
		return nil, errors.Errorf("signature: unknown digest algorithm name %q", name)
	}
}
