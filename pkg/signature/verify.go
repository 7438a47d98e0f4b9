package signature

import (
	"encoding/asn1"

	"github.com/mranest/godss/pkg/token"
	"github.com/mranest/godss/pkg/validation"
)

// SignatureCryptographicVerification is the evidence record produced by
// CheckSignatureIntegrity (spec §4.5), grounded on the teacher's
// SignatureValidationResult (pkg/pdfcpu/model/sign.go): flags plus a
// free-text error, never a bare bool.
type SignatureCryptographicVerification struct {
	SignatureIntact        bool
	ReferencesValid        bool
	ErrorMessage           string
	UsedSigningCertificate token.CertificateToken
}

// ReferenceValidation is one entry of spec §4.5: a single CAdES
// message-imprint reference, or one XAdES ds:Reference.
type ReferenceValidation struct {
	Type          string
	Name          string
	DigestAlgo    string
	DigestValue   []byte
	Found         bool
	Intact        bool
}

// CheckSignatureIntegrity recomputes the DTBSR and verifies the raw
// signature using the signing certificate (either extracted from the
// container or supplied via SetProvidedSigningCertificateToken), recording
// a SignatureCryptographicVerification (spec §4.4/§4.5). Missing detached
// content is a non-fatal recorded failure (S5), never an error return.
func (b *baseSignature) CheckSignatureIntegrity(verifier validation.CryptoVerifier, digester validation.DigestEngine) *SignatureCryptographicVerification {
	result := &SignatureCryptographicVerification{}
	defer func() { b.cryptoVerification = result }()

	cert := b.electSigningCertificate()
	if cert == nil {
		result.ErrorMessage = "no candidate signing certificate could be elected"
		return result
	}
	result.UsedSigningCertificate = cert

	signed := b.dataToBeSigned()
	if signed == nil {
		result.ErrorMessage = "detached content required for integrity check was not supplied"
		return result
	}

	ok, err := verifier.Verify(cert.PublicKey(), b.signatureAlgorithmOID, b.pssParams, signed, b.signatureValue)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}
	result.SignatureIntact = ok
	if !ok {
		result.ErrorMessage = "cryptographic signature verification failed"
	}

	result.ReferencesValid = b.checkReferences(digester)

	if ok {
		b.signingCertificateToken = cert
		for _, c := range b.candidates {
			c.Valid = c.Certificate != nil && c.Certificate.DSSID() == cert.DSSID()
			c.Elected = c.Valid
		}
	}
	return result
}

// dataToBeSigned returns the bytes CheckSignatureIntegrity verifies the
// signature over: the message digest value when already computed (CAdES
// detached, digest-only inputs), otherwise the detached content, otherwise
// the container contents, otherwise nil when nothing was supplied (S5).
func (b *baseSignature) dataToBeSigned() []byte {
	if len(b.messageDigestValue) > 0 {
		return b.messageDigestValue
	}
	if len(b.detachedContents) > 0 {
		return b.detachedContents
	}
	if b.containerContents != nil {
		return b.containerContents
	}
	return nil
}

// checkReferences reports whether every recorded ReferenceValidation found
// and intact digest matches, recomputing none itself: the per-reference
// digests are populated by the format-specific parser (outside this core's
// scope) via SetReferenceValidations, and this only folds them into one
// flag.
func (b *baseSignature) checkReferences(_ validation.DigestEngine) bool {
	if len(b.referenceValidations) == 0 {
		return true
	}
	for _, r := range b.referenceValidations {
		if !r.Found || !r.Intact {
			return false
		}
	}
	return true
}

func (b *baseSignature) CryptographicVerification() *SignatureCryptographicVerification {
	return b.cryptoVerification
}

func (b *baseSignature) ReferenceValidations() []ReferenceValidation { return b.referenceValidations }
func (b *baseSignature) SetReferenceValidations(r []ReferenceValidation) {
	b.referenceValidations = r
}

// SetSignatureAlgorithmOID records the exact AlgorithmIdentifier
// CheckSignatureIntegrity verifies the raw signature under, resolved
// upstream by the CMS/XML parser from the SignerInfo/ds:SignatureMethod;
// pss is non-nil only for RSASSA-PSS.
func (b *baseSignature) SetSignatureAlgorithmOID(oid asn1.ObjectIdentifier, pss *token.PSSParameters) {
	b.signatureAlgorithmOID = oid
	b.pssParams = pss
}
