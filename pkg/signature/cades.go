package signature

import (
	"github.com/mranest/godss/pkg/token"
)

// CAdESSignature is the CMS/PKCS#7-based AdES format wrapper (spec §2,
// §4.4). Its single ReferenceValidation entry is the message-imprint over
// the signed content, set via SetReferenceValidations by the CMS parser.
type CAdESSignature struct {
	baseSignature
}

// NewCAdESSignature builds an empty CAdES signature, keyed by the CMS
// SignedData's DER encoding (der).
func NewCAdESSignature(id string, der []byte, pool *token.CertificatePool) *CAdESSignature {
	s := &CAdESSignature{baseSignature: newBaseSignature(id, der, CAdES, pool)}
	s.self = s
	return s
}
