// Package token provides the abstract identity and signer-verification
// protocol shared by every cryptographic token in the core (timestamp
// tokens today; revocation tokens are a straightforward future extension
// of the same Base), plus the certificate pool and per-container artifact
// sources that sit underneath them.
//
// Grounded on the teacher's evidence-record idiom in
// pkg/pdfcpu/model/sign.go (Signer/CertificateDetails carry flags + reason
// strings, never a bare bool) and generalized per spec §4.1/§9: the
// "virtual methods" check_is_signed_by/build_token_identifier become a
// concrete Base plus a per-kind verify function, since Go has no
// inheritance to hang a template-method hook off.
package token

import (
	"crypto/sha256"
	"crypto/x509/pkix"
	"sync"
	"time"
)

// SignatureValidity is the tri-state outcome of CheckIsSignedBy.
type SignatureValidity int

const (
	SignatureValidityUnknown SignatureValidity = iota
	SignatureValidityValid
	SignatureValidityInvalid
)

func (v SignatureValidity) String() string {
	switch v {
	case SignatureValidityValid:
		return "VALID"
	case SignatureValidityInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// SignatureAlgorithm names the concrete algorithm pair (or parametric OID)
// a token was signed with, resolved only once CheckIsSignedBy succeeds.
type SignatureAlgorithm struct {
	EncryptionAlgorithm string
	DigestAlgorithm     string

	// PSS holds the decoded RSASSA-PSS parameter block when
	// EncryptionAlgorithm == "RSASSA-PSS"; nil otherwise.
	PSS *PSSParameters
}

func (a SignatureAlgorithm) String() string {
	if a.EncryptionAlgorithm == "" {
		return ""
	}
	return a.EncryptionAlgorithm + "-" + a.DigestAlgorithm
}

// PSSParameters is the decoded AlgorithmIdentifier.Parameters for an
// RSASSA-PSS signature, per spec §6 "RSASSA-PSS AlgorithmIdentifier
// parameters (OAEP-style parameter block)".
type PSSParameters struct {
	HashAlgorithm    string
	MaskGenAlgorithm string
	MaskGenHash      string
	SaltLength       int
	TrailerField     int
}

// Verifier is the hook each token kind supplies to Base.CheckIsSignedBy: it
// performs the concrete cryptographic check against candidate and reports
// either a VALID outcome (with the signer DN and resolved algorithm) or an
// INVALID one (with a short reason). A CryptoBackendError returned here is
// propagated unchanged by Base.CheckIsSignedBy rather than folded into the
// evidence (spec §7).
type Verifier func(candidate CertificateToken) (valid bool, issuer pkix.Name, alg SignatureAlgorithm, reason string, err error)

// Base is embedded by every concrete token kind. It owns the identity and
// signer-verification bookkeeping common to all tokens (spec §4.1) and
// enforces idempotence (P4): once a verification outcome is VALID or
// INVALID it is cached and never recomputed or overwritten.
type Base struct {
	mu sync.Mutex

	dssID       string
	issuerDN    pkix.Name
	validity    SignatureValidity
	alg         SignatureAlgorithm
	invalidity  string
	createdAt   time.Time
	hasVerified bool
}

// NewBase builds the identity half of a token from its DER encoding. Per P1,
// byte-identical DER always yields the same DSSID (a SHA-256 digest of the
// encoding, hex-encoded).
func NewBase(der []byte, createdAt time.Time) Base {
	return Base{
		dssID:     buildTokenIdentifier(der),
		createdAt: createdAt,
	}
}

func buildTokenIdentifier(der []byte) string {
	sum := sha256.Sum256(der)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}

// DSSID returns the stable identifier derived from the token's DER
// encoding (spec §3 Token.dss_id).
func (b *Base) DSSID() string { return b.dssID }

// IssuerDN returns the signer DN recorded on a VALID verification; it is
// the zero pkix.Name until then.
func (b *Base) IssuerDN() pkix.Name { return b.issuerDN }

// SignatureValidity returns the cached verification outcome.
func (b *Base) SignatureValidity() SignatureValidity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validity
}

// SignatureAlgorithm returns the algorithm resolved on a VALID outcome.
func (b *Base) SignatureAlgorithm() SignatureAlgorithm { return b.alg }

// SignatureInvalidityReason returns the short reason string recorded on an
// INVALID outcome.
func (b *Base) SignatureInvalidityReason() string { return b.invalidity }

// CreationDate returns the token's creation date.
func (b *Base) CreationDate() time.Time { return b.createdAt }

// CheckIsSignedBy runs verify at most once; subsequent calls return the
// cached outcome unchanged regardless of the candidate passed (P4). A
// CryptoBackendError from verify is never cached — it is a transient
// environmental fault, and the caller may legitimately retry with a
// differently configured backend.
func (b *Base) CheckIsSignedBy(candidate CertificateToken, verify Verifier) (SignatureValidity, error) {
	b.mu.Lock()
	if b.hasVerified {
		v := b.validity
		b.mu.Unlock()
		return v, nil
	}
	b.mu.Unlock()

	valid, issuer, alg, reason, err := verify(candidate)
	if err != nil {
		return SignatureValidityUnknown, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hasVerified {
		// Another goroutine raced us; first writer wins (idempotence).
		return b.validity, nil
	}
	b.hasVerified = true
	if valid {
		b.validity = SignatureValidityValid
		b.issuerDN = issuer
		b.alg = alg
	} else {
		b.validity = SignatureValidityInvalid
		b.invalidity = reason
	}
	return b.validity, nil
}
