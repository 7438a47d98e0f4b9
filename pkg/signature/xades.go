package signature

import (
	"github.com/mranest/godss/pkg/token"
)

// XAdESSignature is the XML-DSig-based AdES format wrapper (spec §2, §4.4).
// It carries no state beyond baseSignature: every XAdES-specific detail
// (canonicalization method, IndividualDataObjectsTimeStamp includes, DOM
// hash code) lives on the embedded timestamps, not on the signature
// itself, per spec §3.
type XAdESSignature struct {
	baseSignature
}

// NewXAdESSignature builds an empty XAdES signature, keyed by the
// signature element's DER/canonical-XML encoding (der) for DSSID
// derivation, per spec §3's "dss_id is deterministic" invariant.
func NewXAdESSignature(id string, der []byte, pool *token.CertificatePool) *XAdESSignature {
	s := &XAdESSignature{baseSignature: newBaseSignature(id, der, XAdES, pool)}
	s.self = s
	return s
}
