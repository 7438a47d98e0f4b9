package signature

import (
	"github.com/mranest/godss/pkg/token"
)

// PAdESSignature is the PDF/ISO-32000-based AdES format wrapper (spec §2,
// §4.4), grounded on the teacher's model.SignatureDetails/model.Signer
// (pkg/pdfcpu/model/sign.go) which already carries one PDF signature
// dictionary's /ByteRange, /Contents (the CMS blob) and DSS-derived
// revocation material. A PAdES signature is one PDF incremental revision's
// /Sig dictionary; its DocTimeStamp counterpart (also PAdES-shaped) is
// represented the same way with PDFRevision set and no SignatureValue.
type PAdESSignature struct {
	baseSignature
}

// NewPAdESSignature builds an empty PAdES signature for the PDF revision
// pdfRevision, keyed by the CMS /Contents blob's DER encoding (der).
func NewPAdESSignature(id string, der []byte, pdfRevision any, pool *token.CertificatePool) *PAdESSignature {
	s := &PAdESSignature{baseSignature: newBaseSignature(id, der, PAdES, pool)}
	s.self = s
	s.SetPDFRevision(pdfRevision)
	return s
}
