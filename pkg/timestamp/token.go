// Package timestamp implements TimestampToken and TimestampSource: the
// RFC 3161 / CAdES-timestamp half of the core (spec §3, §4.2).
//
// Grounded on the teacher's pkg/pdfcpu/sign/pkcs7.go and dts.go
// (checkTimestampToken/handleTimestampToken/timestampToken/
// locateTimestampToken/validateTimestampToken and ValidateDTS), generalized
// from "the one DocTimeStamp embedded in a PDF's DSS" to every construction
// path and timestamp kind the spec names.
package timestamp

import (
	"bytes"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"sync"
	"time"

	"github.com/hhrutter/pkcs7"
	"github.com/pkg/errors"

	"github.com/mranest/godss/pkg/log"
	"github.com/mranest/godss/pkg/token"
	"github.com/mranest/godss/pkg/validation"
)

// CryptoVerifier is the signature-verification capability this package
// needs from the injected crypto backend; it is validation.CryptoVerifier
// by another name so this package's public surface does not force callers
// to import pkg/validation just to spell the type in CheckIsSignedBy calls.
type CryptoVerifier = validation.CryptoVerifier

// TimestampToken is a parsed RFC 3161 time-stamp token embedded in, or
// attached to, an advanced signature or a PDF revision (spec §3).
type TimestampToken struct {
	token.Base

	der []byte
	p7  *pkcs7.PKCS7

	type_       Type
	archiveType ArchiveType
	location    Location

	timestampedReferences []Reference
	messageImprint        MessageImprint
	genTime               time.Time

	certificateSource *token.CertificateSource
	crlSource         *token.RevocationSource
	ocspSource        *token.RevocationSource

	canonicalizationMethod string
	includes               []string
	manifestFile           string
	fileName               string
	timestampScopes        []string
	pdfRevision            any
	domHashCode            string

	mu            sync.Mutex
	processed     bool
	imprintFound  bool
	imprintIntact bool
}

// Option configures optional TimestampToken metadata at construction.
type Option func(*TimestampToken)

// WithLocation sets the signature family this timestamp is embedded in.
func WithLocation(l Location) Option { return func(t *TimestampToken) { t.location = l } }

// WithArchiveType qualifies an ArchiveTimestamp by profile variant.
func WithArchiveType(a ArchiveType) Option { return func(t *TimestampToken) { t.archiveType = a } }

// WithTimestampedReferences records what this timestamp attests to have
// covered, beyond its own message imprint (XAdES/CAdES X1/X2 references).
func WithTimestampedReferences(refs []Reference) Option {
	return func(t *TimestampToken) { t.timestampedReferences = refs }
}

// WithCanonicalizationMethod records the XML canonicalization algorithm URI
// an XAdES timestamp's imprint was computed over.
func WithCanonicalizationMethod(m string) Option {
	return func(t *TimestampToken) { t.canonicalizationMethod = m }
}

// WithIncludes records the ds:Include URIs of an IndividualDataObjectsTimeStamp.
func WithIncludes(includes []string) Option {
	return func(t *TimestampToken) { t.includes = includes }
}

// WithManifestFile records the ASiC-E manifest file a detached CAdES
// timestamp's scope was computed from.
func WithManifestFile(name string) Option { return func(t *TimestampToken) { t.manifestFile = name } }

// WithFileName records the detached file name this timestamp covers.
func WithFileName(name string) Option { return func(t *TimestampToken) { t.fileName = name } }

// WithTimestampScopes records the human-readable detached scope
// descriptions associated with this timestamp.
func WithTimestampScopes(scopes []string) Option {
	return func(t *TimestampToken) { t.timestampScopes = scopes }
}

// WithPDFRevision attaches an opaque reference to the PDF incremental
// revision this DocTimeStamp terminates (PAdES); the core never interprets
// it, only carries it for a PDF-aware caller.
func WithPDFRevision(rev any) Option { return func(t *TimestampToken) { t.pdfRevision = rev } }

// WithDOMHashCode records the XML node identity marker a caller's DOM
// implementation assigned (spec §9 Open Question: left to the caller,
// carried opaquely here).
func WithDOMHashCode(code string) Option { return func(t *TimestampToken) { t.domHashCode = code } }

// NewTimestampTokenFromBytes parses der as a CMS SignedData wrapping a
// TSTInfo (RFC 3161), the primary construction path (spec §4.2). Parsing is
// done with hhrutter/pkcs7, the same CMS parser the teacher uses for PDF
// signature verification (pkg/pdfcpu/sign/pkcs7.go), and TSTInfo is then
// decoded off the CMS eContent with encoding/asn1 exactly as the teacher's
// ValidateDTS does.
func NewTimestampTokenFromBytes(der []byte, typ Type, opts ...Option) (*TimestampToken, error) {
	p7, err := pkcs7.Parse(der)
	if err != nil {
		return nil, token.NewParseError(errors.Wrap(err, "timestamp: parse CMS SignedData"))
	}
	if !p7.ContentType.Equal(oidTSTInfo) {
		return nil, token.NewParseError(errors.Errorf("timestamp: unexpected eContentType %s, want TSTInfo", p7.ContentType.String()))
	}

	var info tstInfo
	if _, err := asn1.Unmarshal(p7.Content, &info); err != nil {
		return nil, token.NewParseError(errors.Wrap(err, "timestamp: decode TSTInfo"))
	}

	t := &TimestampToken{
		Base:    token.NewBase(der, info.GenTime),
		der:     der,
		p7:      p7,
		type_:   typ,
		genTime: info.GenTime,
		messageImprint: MessageImprint{
			Algorithm: info.MessageImprint.HashAlgorithm.Algorithm,
			Value:     info.MessageImprint.HashedMessage,
		},
	}
	for _, o := range opts {
		o(t)
	}
	t.buildSources()
	return t, nil
}

// NewTimestampTokenFromTST builds a TimestampToken from an already-parsed
// RFC 3161 timestamp object (raw CMS bytes plus the fields a caller's own
// timestamp library already decoded off it), re-parsing rawToken through
// hhrutter/pkcs7 so CheckIsSignedBy has the same CMS SignerInfo access as
// the bytes-constructor path. This is the "caller already has a parsed
// timestamp library object and wants a TimestampToken view of it" path.
func NewTimestampTokenFromTST(rawToken []byte, hashAlgorithm asn1.ObjectIdentifier, hashedMessage []byte, genTime time.Time, typ Type, opts ...Option) (*TimestampToken, error) {
	p7, err := pkcs7.Parse(rawToken)
	if err != nil {
		return nil, token.NewParseError(errors.Wrap(err, "timestamp: parse CMS SignedData from RawToken"))
	}
	t := &TimestampToken{
		Base:    token.NewBase(rawToken, genTime),
		der:     rawToken,
		p7:      p7,
		type_:   typ,
		genTime: genTime,
		messageImprint: MessageImprint{
			Algorithm: hashAlgorithm,
			Value:     hashedMessage,
		},
	}
	for _, o := range opts {
		o(t)
	}
	t.buildSources()
	return t, nil
}

// NewTimestampTokenFromPDFRevision builds a DocumentTimestamp from a PDF
// DocTimeStamp's CMS bytes plus the opaque revision reference it closes
// (PAdES), mirroring the teacher's checkTimestampToken entry point in
// pkg/pdfcpu/sign/pkcs7.go.
func NewTimestampTokenFromPDFRevision(der []byte, revision any, opts ...Option) (*TimestampToken, error) {
	opts = append(opts, WithPDFRevision(revision), WithLocation(LocationPAdES))
	return NewTimestampTokenFromBytes(der, DocumentTimestamp, opts...)
}

// NewTimestampTokenForTesting builds a TimestampToken directly from known
// field values, without parsing der as CMS at all. It exists for packages
// that embed a TimestampToken by identity alone (pkg/signature's
// PrepareTimestamps, which only needs DSSID) to exercise that wiring in
// their own tests without a real, parseable CMS byte stream; production
// code always goes through one of the NewTimestampTokenFrom* constructors
// above instead.
func NewTimestampTokenForTesting(der []byte, typ Type, genTime time.Time) *TimestampToken {
	return &TimestampToken{
		Base:    token.NewBase(der, genTime),
		type_:   typ,
		genTime: genTime,
	}
}

func (t *TimestampToken) buildSources() {
	certSource := token.NewCertificateSource(token.SourceTypeTimestamp)
	for _, c := range t.p7.Certificates {
		certSource.Add(token.NewX509CertificateToken(c))
	}
	t.certificateSource = certSource

	crlSource := token.NewRevocationSource()
	ocspSource := token.NewRevocationSource()
	for _, signer := range t.p7.Signers {
		for _, attr := range signer.AuthenticatedAttributes {
			if !attr.Type.Equal(oidRevocationInfoArchival) {
				continue
			}
			var archival revocationInfoArchival
			if _, err := asn1.Unmarshal(attr.Value.Bytes, &archival); err != nil {
				continue
			}
			for _, c := range archival.CRLs {
				crlSource.Add(token.RevocationArtifact{Type: token.SourceTypeTimestamp, DER: c.FullBytes})
			}
			for _, o := range archival.OCSPs {
				ocspSource.Add(token.RevocationArtifact{Type: token.SourceTypeTimestamp, DER: o.FullBytes})
			}
		}
		for _, attr := range signer.UnauthenticatedAttributes {
			if !attr.Type.Equal(oidCertificateValues) {
				continue
			}
			var rawCerts []asn1.RawValue
			if _, err := asn1.Unmarshal(attr.Value.Bytes, &rawCerts); err != nil {
				continue
			}
			for _, rc := range rawCerts {
				if cert, err := x509.ParseCertificate(rc.FullBytes); err == nil {
					certSource.Add(token.NewX509CertificateToken(cert))
				}
			}
		}
	}
	t.crlSource = crlSource
	t.ocspSource = ocspSource
}

// Type returns the timestamp's classification (spec §3).
func (t *TimestampToken) Type() Type { return t.type_ }

// ArchiveType returns the archive-timestamp profile variant, meaningful
// only when Type() == ArchiveTimestamp.
func (t *TimestampToken) ArchiveType() ArchiveType { return t.archiveType }

// Location returns the signature family this timestamp is embedded in.
func (t *TimestampToken) Location() Location { return t.location }

// TimestampedReferences returns what this timestamp attests to cover.
func (t *TimestampToken) TimestampedReferences() []Reference { return t.timestampedReferences }

// MessageImprint returns the (algorithm, digest) pair extracted from the
// TSTInfo.
func (t *TimestampToken) MessageImprint() MessageImprint { return t.messageImprint }

// GenerationTime returns the TSTInfo genTime field.
func (t *TimestampToken) GenerationTime() time.Time { return t.genTime }

// CertificateSource returns the certificates embedded in this timestamp's
// own CMS bag.
func (t *TimestampToken) CertificateSource() *token.CertificateSource { return t.certificateSource }

// CRLSource returns the CRLs carried in this timestamp's archived
// revocation info, if any.
func (t *TimestampToken) CRLSource() *token.RevocationSource { return t.crlSource }

// OCSPSource returns the OCSP responses carried in this timestamp's
// archived revocation info, if any.
func (t *TimestampToken) OCSPSource() *token.RevocationSource { return t.ocspSource }

// DER returns the token's raw CMS encoding.
func (t *TimestampToken) DER() []byte { return t.der }

// Certificates returns every certificate embedded in this timestamp's own
// CMS bag, a convenience over CertificateSource().Certificates() (spec
// §4.2 "Other accessors").
func (t *TimestampToken) Certificates() []token.CertificateToken {
	return t.certificateSource.Certificates()
}

// CertificateReferences returns the issuer+serial holders of every
// certificate in the CMS's embedded certificates bag (spec §4.2 "Other
// accessors"). The CompleteCertificateRefs attribute is not read, so a
// reference to a certificate that is absent from the bag is not returned.
func (t *TimestampToken) CertificateReferences() []token.IssuerSerial {
	out := make([]token.IssuerSerial, 0, len(t.p7.Certificates))
	for _, c := range t.p7.Certificates {
		out = append(out, token.IssuerSerial{IssuerRawDN: c.RawIssuer, SerialNumber: c.SerialNumber})
	}
	return out
}

// UnsignedAttributes returns the raw unsigned attributes of the token's
// first SignerInfo, letting a caller inspect nested artifacts such as
// CertificateValues that buildSources already folds into CertificateSource
// (spec §4.2 "Other accessors": "unsigned attributes (for nested artifacts
// such as TSA certificates in CertificateValues)").
func (t *TimestampToken) UnsignedAttributes() []pkcs7.Attribute {
	if len(t.p7.Signers) == 0 {
		return nil
	}
	return t.p7.Signers[0].UnauthenticatedAttributes
}

// CanonicalizationMethod returns the XML canonicalization URI an XAdES
// timestamp's imprint was computed with, or "" outside XAdES.
func (t *TimestampToken) CanonicalizationMethod() string { return t.canonicalizationMethod }

// Includes returns the ds:Include URIs for an IndividualDataObjectsTimeStamp.
func (t *TimestampToken) Includes() []string { return t.includes }

// ManifestFile returns the ASiC-E manifest this timestamp's scope was
// computed from, or "" when not applicable.
func (t *TimestampToken) ManifestFile() string { return t.manifestFile }

// FileName returns the detached file name this timestamp covers.
func (t *TimestampToken) FileName() string { return t.fileName }

// TimestampScopes returns human-readable detached scope descriptions.
func (t *TimestampToken) TimestampScopes() []string { return t.timestampScopes }

// PDFRevision returns the opaque PDF incremental-revision reference this
// DocTimeStamp closes, or nil outside PAdES.
func (t *TimestampToken) PDFRevision() any { return t.pdfRevision }

// DOMHashCode returns the caller-supplied XML node identity marker.
func (t *TimestampToken) DOMHashCode() string { return t.domHashCode }

// MatchData recomputes the digest of data under the TSTInfo's hash
// algorithm and compares it against the message imprint, recording both
// "was the imprint data supplied" and "did it match" (spec §4.2, P2/P3).
// It is the verifying call that MessageImprintDataFound/MessageImprintIntact
// gate on. A mismatch is logged at Info (this core's nearest equivalent of
// WARN, per the teacher's logger set — spec §7 "logged at WARN").
func (t *TimestampToken) MatchData(data []byte, digestFn func(alg asn1.ObjectIdentifier, data []byte) ([]byte, error)) error {
	return t.matchData(data, digestFn, false)
}

// MatchDataQuiet is MatchData with diagnostic logging suppressed (spec
// §4.2 "a second variant carries a suppress_match_warnings flag to
// silence mismatch logging; diagnostic side effects are the only
// difference").
func (t *TimestampToken) MatchDataQuiet(data []byte, digestFn func(alg asn1.ObjectIdentifier, data []byte) ([]byte, error)) error {
	return t.matchData(data, digestFn, true)
}

func (t *TimestampToken) matchData(data []byte, digestFn func(alg asn1.ObjectIdentifier, data []byte) ([]byte, error), suppressWarnings bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed = true
	if len(data) == 0 {
		t.imprintFound = false
		t.imprintIntact = false
		return nil
	}
	t.imprintFound = true

	sum, err := digestFn(t.messageImprint.Algorithm, data)
	if err != nil {
		t.imprintIntact = false
		return token.NewCryptoBackendError(err)
	}
	t.imprintIntact = bytes.Equal(sum, t.messageImprint.Value)
	if !t.imprintIntact && !suppressWarnings {
		log.Info.Printf("timestamp %s: message imprint mismatch\n", t.DSSID())
	}
	return nil
}

// MatchDataBytes byte-compares digest, already computed by the caller,
// against the pre-computed imprint (spec §4.2 "match_data(expected_bytes)
// -> bool"). Warnings are never suppressed on this path.
func (t *TimestampToken) MatchDataBytes(digest []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed = true
	t.imprintFound = len(digest) > 0
	t.imprintIntact = t.imprintFound && bytes.Equal(digest, t.messageImprint.Value)
	if t.imprintFound && !t.imprintIntact {
		log.Info.Printf("timestamp %s: message imprint mismatch\n", t.DSSID())
	}
	return t.imprintIntact
}

// Processed reports whether a MatchData* call has run.
func (t *TimestampToken) Processed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

// MessageImprintDataFound reports whether MatchData was given non-empty
// covered data. Calling this before any MatchData* call is a contract
// violation (P2).
func (t *TimestampToken) MessageImprintDataFound() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.processed {
		return false, token.ErrContractViolation
	}
	return t.imprintFound, nil
}

// MessageImprintIntact reports whether the recomputed digest matched the
// TSTInfo's message imprint. Calling this before MatchData ran is a
// contract violation (P2): there is no "unknown but safe" default.
func (t *TimestampToken) MessageImprintIntact() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.processed {
		return false, token.ErrContractViolation
	}
	return t.imprintIntact, nil
}

// CheckIsSignedBy verifies the TSA's signature over the TSTInfo, delegating
// to Base.CheckIsSignedBy for idempotence (P4). It runs a strict RFC 3161
// profile check first (exactly one SignerInfo, SID resolves to candidate)
// and, only if that fails to even apply, falls back to a plain CMS
// SignerInfo signature check — mirroring the teacher's two-stage
// checkTimestampToken/verifyP7Signature fallback in pkg/pdfcpu/sign/pkcs7.go
// (spec §4.2 P8).
func (t *TimestampToken) CheckIsSignedBy(candidate token.CertificateToken, verifier CryptoVerifier) (token.SignatureValidity, error) {
	return t.Base.CheckIsSignedBy(candidate, func(candidate token.CertificateToken) (bool, pkix.Name, token.SignatureAlgorithm, string, error) {
		return verifyTSA(t.p7, candidate, verifier)
	})
}
