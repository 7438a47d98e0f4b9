// Package signature implements AdvancedSignature: the format-agnostic
// contract a validator uses regardless of whether the underlying container
// is XML-DSig (XAdES), CMS (CAdES), or PDF (PAdES).
//
// Grounded on the teacher's model.Signer / model.SignatureDetails
// (pkg/pdfcpu/model/sign.go), which already carries every PDF signature's
// evidence (certificate chain, timestamp, problems, status/reason) in one
// struct dispatched internally by subfilter string. Per spec §9's design
// note, that dispatch becomes a Go type (Format) instead of a string, with
// one shared baseSignature embedded by three thin format wrappers.
package signature

import (
	"encoding/asn1"
	"time"

	"github.com/mranest/godss/pkg/timestamp"
	"github.com/mranest/godss/pkg/token"
	"github.com/mranest/godss/pkg/validation"
)

// Format tags which AdES family a signature belongs to.
type Format int

const (
	XAdES Format = iota
	CAdES
	PAdES
)

func (f Format) String() string {
	switch f {
	case XAdES:
		return "XAdES"
	case CAdES:
		return "CAdES"
	case PAdES:
		return "PAdES"
	default:
		return "UNKNOWN"
	}
}

// AdvancedSignature is the contract of spec §4.4, implemented identically
// by every format wrapper through the embedded baseSignature.
type AdvancedSignature interface {
	ID() string
	DSSID() string
	DAIdentifier() string
	Format() Format

	Filename() string
	SetFilename(string)

	DetachedContents() []byte
	SetDetachedContents([]byte)
	ContainerContents() []byte
	SetContainerContents([]byte)
	ManifestFiles() []string
	ManifestedDocuments() map[string][]byte

	ProvidedSigningCertificateToken() token.CertificateToken
	SetProvidedSigningCertificateToken(token.CertificateToken)

	EncryptionAlgorithm() string
	DigestAlgorithm() string
	MaskGenerationFunction() string
	SigningTime() time.Time
	ClaimedSignerRoles() []string
	CertifiedSignerRoles() []string
	CommitmentTypeIndications() []string
	ProductionPlace() string
	PolicyID() string
	ContentType() string
	MimeType() string
	ContentIdentifier() string
	ContentHints() string

	SignatureValue() []byte
	MessageDigestValue() []byte
	PDFRevision() any

	CertificateSource() *token.CertificateSource
	CRLSource() *token.RevocationSource
	OCSPSource() *token.RevocationSource
	CompleteCertificateSource() []token.CertificateToken
	CompleteCRLSource() []token.RevocationArtifact
	CompleteOCSPSource() []token.RevocationArtifact

	CheckSignatureIntegrity(verifier validation.CryptoVerifier, digester validation.DigestEngine) *SignatureCryptographicVerification
	CryptographicVerification() *SignatureCryptographicVerification
	ReferenceValidations() []ReferenceValidation
	SetReferenceValidations([]ReferenceValidation)

	CandidatesForSigningCertificate() []*Candidate
	SetSignedCertificateDigest(alg string, digest []byte)
	CheckSigningCertificate(digester validation.DigestEngine) error
	SigningCertificateToken() token.CertificateToken

	ContentTimestamps() []*timestamp.TimestampToken
	SignatureTimestamps() []*timestamp.TimestampToken
	X1Timestamps() []*timestamp.TimestampToken
	X2Timestamps() []*timestamp.TimestampToken
	ArchiveTimestamps() []*timestamp.TimestampToken
	DocumentTimestamps() []*timestamp.TimestampToken
	AllTimestamps() []*timestamp.TimestampToken
	AddTimestamp(t *timestamp.TimestampToken)

	FindSignatureScope(finder validation.SignatureScopeFinder) ([]validation.SignatureScope, error)
	SignatureScopes() []validation.SignatureScope

	ValidateStructure(validator func(AdvancedSignature) string)
	StructureValidationResult() string

	CheckSignaturePolicy(provider validation.SignaturePolicyProvider) (*validation.SignaturePolicy, error)

	IsDataForSignatureLevelPresent(level Level) bool
	DataFoundUpToLevel() Level
	SignatureLevels() []Level

	CounterSignatures() []AdvancedSignature
	MasterSignature() AdvancedSignature
	SetMasterSignature(master AdvancedSignature) error

	IsDocHashOnlyValidation() bool
	IsHashOnlyValidation() bool

	PrepareTimestamps(ctx validation.ValidationContext)
}

// baseSignature carries every field and behavior common across XAdES,
// CAdES, and PAdES (spec §9 "shared helpers ... live in a generic wrapper
// that holds the variant").
type baseSignature struct {
	id     string
	dssID  string
	daID   string
	format Format

	filename           string
	detachedContents   []byte
	containerContents  []byte
	manifestFiles      []string
	manifestedDocuments map[string][]byte

	providedSigningCert token.CertificateToken

	encryptionAlgorithm     string
	digestAlgorithm         string
	maskGenerationFunction  string
	signingTime             time.Time
	claimedSignerRoles      []string
	certifiedSignerRoles    []string
	commitmentTypeIndications []string
	productionPlace         string
	policyID                string
	contentType             string
	mimeType                string
	contentIdentifier       string
	contentHints            string

	signatureValue        []byte
	messageDigestValue    []byte
	pdfRevision           any
	signatureAlgorithmOID asn1.ObjectIdentifier
	pssParams             *token.PSSParameters

	certificateSource *token.CertificateSource
	crlSource         *token.RevocationSource
	ocspSource        *token.RevocationSource
	timestampSource   *timestamp.Source

	candidates              []*Candidate
	signedCertDigestAlg     string
	signedCertDigest        []byte
	signingCertificateToken token.CertificateToken

	cryptoVerification   *SignatureCryptographicVerification
	referenceValidations []ReferenceValidation
	signatureScopes      []validation.SignatureScope
	structureResult      string

	counterSignatures []AdvancedSignature
	masterSignature   AdvancedSignature

	pool *token.CertificatePool

	docHashOnly  bool
	hashOnly     bool

	// self holds the concrete format wrapper embedding this baseSignature,
	// set once by the wrapper's constructor, so shared helpers that must
	// hand back an AdvancedSignature (ValidateStructure's callback,
	// SetMasterSignature's back-link) return the wrapper instead of a bare
	// *baseSignature that doesn't implement the interface on its own.
	self AdvancedSignature
}

func newBaseSignature(id string, der []byte, format Format, pool *token.CertificatePool) baseSignature {
	return baseSignature{
		id:                  id,
		dssID:               token.NewBase(der, time.Time{}).DSSID(),
		format:              format,
		certificateSource:   token.NewCertificateSource(token.SourceTypeSignature),
		crlSource:           token.NewRevocationSource(),
		ocspSource:          token.NewRevocationSource(),
		timestampSource:     timestamp.NewSource(),
		pool:                pool,
		manifestedDocuments: make(map[string][]byte),
	}
}

func (b *baseSignature) ID() string         { return b.id }
func (b *baseSignature) DSSID() string      { return b.dssID }
func (b *baseSignature) DAIdentifier() string { return b.daID }
func (b *baseSignature) Format() Format     { return b.format }

func (b *baseSignature) Filename() string         { return b.filename }
func (b *baseSignature) SetFilename(f string)     { b.filename = f }
func (b *baseSignature) DetachedContents() []byte { return b.detachedContents }
func (b *baseSignature) SetDetachedContents(c []byte) { b.detachedContents = c }
func (b *baseSignature) ContainerContents() []byte    { return b.containerContents }
func (b *baseSignature) SetContainerContents(c []byte) { b.containerContents = c }
func (b *baseSignature) ManifestFiles() []string       { return b.manifestFiles }
func (b *baseSignature) ManifestedDocuments() map[string][]byte { return b.manifestedDocuments }

// AddManifestedDocument registers the resolved bytes for one manifest entry
// (spec §4.4 "manifested_documents (ASiC-E resolves manifest references to
// actual documents)"). Resolving a manifest URI against the ASiC container
// is the external parser's job (spec §1: byte-level container parsing is
// out of scope); this only records the outcome.
func (b *baseSignature) AddManifestedDocument(name string, content []byte) {
	b.manifestedDocuments[name] = content
}

func (b *baseSignature) ProvidedSigningCertificateToken() token.CertificateToken {
	return b.providedSigningCert
}
func (b *baseSignature) SetProvidedSigningCertificateToken(c token.CertificateToken) {
	b.providedSigningCert = c
}

func (b *baseSignature) EncryptionAlgorithm() string    { return b.encryptionAlgorithm }
func (b *baseSignature) DigestAlgorithm() string        { return b.digestAlgorithm }
func (b *baseSignature) MaskGenerationFunction() string { return b.maskGenerationFunction }
func (b *baseSignature) SigningTime() time.Time         { return b.signingTime }
func (b *baseSignature) ClaimedSignerRoles() []string   { return b.claimedSignerRoles }
func (b *baseSignature) CertifiedSignerRoles() []string { return b.certifiedSignerRoles }
func (b *baseSignature) CommitmentTypeIndications() []string {
	return b.commitmentTypeIndications
}
func (b *baseSignature) ProductionPlace() string   { return b.productionPlace }
func (b *baseSignature) PolicyID() string          { return b.policyID }
func (b *baseSignature) ContentType() string       { return b.contentType }
func (b *baseSignature) MimeType() string          { return b.mimeType }
func (b *baseSignature) ContentIdentifier() string { return b.contentIdentifier }
func (b *baseSignature) ContentHints() string      { return b.contentHints }

func (b *baseSignature) SignatureValue() []byte     { return b.signatureValue }
func (b *baseSignature) MessageDigestValue() []byte { return b.messageDigestValue }
func (b *baseSignature) PDFRevision() any           { return b.pdfRevision }

func (b *baseSignature) CertificateSource() *token.CertificateSource { return b.certificateSource }
func (b *baseSignature) CRLSource() *token.RevocationSource          { return b.crlSource }
func (b *baseSignature) OCSPSource() *token.RevocationSource         { return b.ocspSource }

func (b *baseSignature) ContentTimestamps() []*timestamp.TimestampToken {
	out := append(b.timestampSource.ContentTimestamps(), b.timestampSource.AllDataObjectsTimestamps()...)
	return append(out, b.timestampSource.IndividualDataObjectsTimestamps()...)
}
func (b *baseSignature) SignatureTimestamps() []*timestamp.TimestampToken {
	return b.timestampSource.SignatureTimestamps()
}
func (b *baseSignature) X1Timestamps() []*timestamp.TimestampToken {
	return b.timestampSource.ValidationDataRefsOnlyTimestamps()
}
func (b *baseSignature) X2Timestamps() []*timestamp.TimestampToken {
	return b.timestampSource.ValidationDataTimestamps()
}
func (b *baseSignature) ArchiveTimestamps() []*timestamp.TimestampToken {
	return b.timestampSource.ArchiveTimestamps()
}
func (b *baseSignature) DocumentTimestamps() []*timestamp.TimestampToken {
	return b.timestampSource.DocumentTimestamps()
}
func (b *baseSignature) AllTimestamps() []*timestamp.TimestampToken {
	return b.timestampSource.All()
}
func (b *baseSignature) AddTimestamp(t *timestamp.TimestampToken) {
	b.timestampSource.Add(t)
}

// ValidateStructure runs a format-specific schema validator against self
// and records its textual outcome (spec §4.4 "Structure"). validator is
// supplied by the caller (an XML schema check for XAdES, an ASN.1
// structure check for CAdES, ...); the core does not implement any
// byte-level parser itself (spec §1).
func (b *baseSignature) ValidateStructure(validator func(AdvancedSignature) string) {
	b.structureResult = validator(b.self)
}
func (b *baseSignature) StructureValidationResult() string { return b.structureResult }

func (b *baseSignature) IsDocHashOnlyValidation() bool { return b.docHashOnly }
func (b *baseSignature) IsHashOnlyValidation() bool    { return b.hashOnly }

// SetDocHashOnly and SetHashOnly record the validation-input mode (spec
// §4.4 "Validation modes"); set by the caller once it knows what bytes it
// was handed.
func (b *baseSignature) SetDocHashOnly(v bool) { b.docHashOnly = v }
func (b *baseSignature) SetHashOnly(v bool)    { b.hashOnly = v }

// SetSigningTime, SetEncryptionAlgorithm, ... bulk metadata setters used by
// the external parser while building the signature, mirroring the
// teacher's setupCertDetails/handleClaimedSigningTime population pattern.
func (b *baseSignature) SetSigningTime(t time.Time)              { b.signingTime = t }
func (b *baseSignature) SetEncryptionAlgorithm(a string)         { b.encryptionAlgorithm = a }
func (b *baseSignature) SetDigestAlgorithm(a string)             { b.digestAlgorithm = a }
func (b *baseSignature) SetMaskGenerationFunction(m string)      { b.maskGenerationFunction = m }
func (b *baseSignature) SetClaimedSignerRoles(r []string)        { b.claimedSignerRoles = r }
func (b *baseSignature) SetCertifiedSignerRoles(r []string)      { b.certifiedSignerRoles = r }
func (b *baseSignature) SetCommitmentTypeIndications(c []string) { b.commitmentTypeIndications = c }
func (b *baseSignature) SetProductionPlace(p string)             { b.productionPlace = p }
func (b *baseSignature) SetPolicyID(p string)                    { b.policyID = p }
func (b *baseSignature) SetContentType(c string)                 { b.contentType = c }
func (b *baseSignature) SetMimeType(m string)                    { b.mimeType = m }
func (b *baseSignature) SetContentIdentifier(c string)           { b.contentIdentifier = c }
func (b *baseSignature) SetContentHints(c string)                { b.contentHints = c }
func (b *baseSignature) SetSignatureValue(v []byte)              { b.signatureValue = v }
func (b *baseSignature) SetMessageDigestValue(v []byte)          { b.messageDigestValue = v }
func (b *baseSignature) SetPDFRevision(r any)                    { b.pdfRevision = r }
func (b *baseSignature) SetManifestFiles(f []string)             { b.manifestFiles = f }
func (b *baseSignature) SetDAIdentifier(id string)               { b.daID = id }

// PrepareTimestamps implements the validation-orchestration hook of spec
// §4.4: every owned timestamp is emitted into ctx (certificates are not
// emitted), mirroring the teacher's
// buildP7CertChains feeding discovered certificates back for chain
// validation.
func (b *baseSignature) PrepareTimestamps(ctx validation.ValidationContext) {
	for _, t := range b.timestampSource.All() {
		ctx.AddToken(tokenAdapter{t})
	}
}

// tokenAdapter satisfies validation.Token for a *timestamp.TimestampToken
// without timestamp needing to import validation back (it already does,
// for CryptoVerifier, but keeping PrepareTimestamps's dependency local to
// this package avoids growing that surface further).
type tokenAdapter struct {
	t *timestamp.TimestampToken
}

func (a tokenAdapter) DSSID() string { return a.t.DSSID() }
