// Package validation holds the contracts the core consumes from its
// external collaborators (spec §6): the digest engine, the cryptographic
// verifier, the signature-policy store, the signature-scope finder, and the
// validation-context sink tokens are reported into. CMS/RFC 3161 parsing
// has no contract here: pkg/timestamp calls github.com/hhrutter/pkcs7
// directly. The CertificateToken contract lives in pkg/token. The core
// never implements any of these itself — ASN.1/
// XML-DSig/PDF parsing, path building, revocation transports and trust
// decisions are explicitly out of scope (spec §1).
package validation

import (
	"encoding/asn1"
	"io"

	"github.com/mranest/godss/pkg/token"
)

// DigestEngine computes digests over in-memory bytes or a streamed
// document (spec §6).
type DigestEngine interface {
	Digest(data []byte, alg asn1.ObjectIdentifier) ([]byte, error)
	DigestStream(r io.Reader, alg asn1.ObjectIdentifier) ([]byte, error)
}

// CryptoVerifier checks a raw signature against a public key, a signature
// algorithm (OID plus optional RSASSA-PSS parameters), and the signed
// bytes (spec §6).
type CryptoVerifier interface {
	Verify(publicKey any, algorithm asn1.ObjectIdentifier, pss *token.PSSParameters, signed, signature []byte) (bool, error)
}

// SignaturePolicy is the resolved result of a SignaturePolicyProvider
// lookup; its internal shape is opaque to the core beyond identity and
// availability (spec §4.4 check_signature_policy).
type SignaturePolicy struct {
	Identifier string
	Present    bool
}

// SignaturePolicyProvider resolves a policy identifier against whatever
// store the caller configures (spec §6).
type SignaturePolicyProvider interface {
	Resolve(policyID string) (*SignaturePolicy, error)
}

// SignatureScope is an abstract "what was signed" descriptor produced by a
// SignatureScopeFinder (spec §6, Glossary).
type SignatureScope struct {
	Name        string
	Description string
	Scope       string
}

// SignatureScopeFinder inspects a signature's payload references and
// produces the scopes it covers (spec §4.4 find_signature_scope).
type SignatureScopeFinder interface {
	Find(sig any) ([]SignatureScope, error)
}

// Token is anything a ValidationContext can be handed: a TimestampToken, a
// CertificateToken, or a revocation token (spec §6). The core does not
// require more than identity from it.
type Token interface {
	DSSID() string
}

// ValidationContext is the sink external orchestration provides for tokens
// discovered during validation (spec §6); AdvancedSignature.PrepareTimestamps
// emits into it as a side effect with no return value.
type ValidationContext interface {
	AddToken(t Token)
}
