package timestamp

import (
	"encoding/asn1"
	"time"

	"github.com/mranest/godss/pkg/digestalg"
)

// algorithmIdentifier and tstInfo mirror RFC 3161's TSTInfo ASN.1 structure
// bit-for-bit, grounded on the teacher's own hand-rolled TSTInfo struct in
// pkg/pdfcpu/sign/dts.go (ValidateDTS/checkDTSDigest) rather than on a
// third-party RFC 3161 parser: pdfcpu already decodes TSTInfo directly off
// the CMS eContent with encoding/asn1, and this core generalizes that exact
// decode from "one PDF's DocTimeStamp" to every construction path.
type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"tag:0,optional"`
}

type tstInfo struct {
	Version        int
	Policy         asn1.ObjectIdentifier
	MessageImprint struct {
		HashAlgorithm algorithmIdentifier
		HashedMessage []byte
	}
	SerialNumber asn1.RawValue
	GenTime      time.Time
	Accuracy     asn1.RawValue `asn1:"optional"`
	Ordering     bool          `asn1:"optional"`
	Nonce        asn1.RawValue `asn1:"optional"`
	TSA          asn1.RawValue `asn1:"optional,tag:0"`
	Extensions   asn1.RawValue `asn1:"optional,tag:1"`
}

// otherRevInfo and revocationInfoArchival mirror the teacher's
// RevocationInfoArchival (pkg/pdfcpu/sign/revocate.go), reused verbatim in
// shape: a timestamp's own SignerInfo carries the same CAdES-X "archived
// revocation info" signed attribute the teacher decodes for PDF signatures.
type otherRevInfo struct {
	Type  asn1.ObjectIdentifier
	Value []byte
}

type revocationInfoArchival struct {
	CRLs         []asn1.RawValue `asn1:"optional,explicit,tag:0"`
	OCSPs        []asn1.RawValue `asn1:"optional,explicit,tag:1"`
	OtherRevInfo []otherRevInfo  `asn1:"optional,explicit,tag:2"`
}

// pssParameters mirrors RFC 4055's RSASSA-PSS-params. No teacher precedent
// exists for it (pdfcpu never signs/verifies with PSS); decoded directly
// from the RFC since spec §6 requires it as an in-scope wire format.
type pssParameters struct {
	Hash         algorithmIdentifier `asn1:"explicit,tag:0,optional"`
	MGF          maskGenAlgorithm    `asn1:"explicit,tag:1,optional"`
	SaltLength   int                 `asn1:"explicit,tag:2,optional,default:20"`
	TrailerField int                 `asn1:"explicit,tag:3,optional,default:1"`
}

type maskGenAlgorithm struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters algorithmIdentifier
}

var (
	oidTSTInfo             = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 1, 4}
	oidSigningTime         = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 5}
	oidRevocationInfoArchival = asn1.ObjectIdentifier{1, 2, 840, 113583, 1, 1, 8}
	oidCertificateValues   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 23}
	oidCompleteCertRefs    = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 21}
	oidCompleteRevocRefs   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 22}
	oidRSASSAPSS           = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}
	oidSHA1                = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}
	oidSHA256              = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
	oidMGF1                = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 8}
)

// hashOIDName names a digest-algorithm OID using the shared digestalg
// table (spec §6: SHA-1 through SHA-512, SHA3-*, RIPEMD-160, MD5), falling
// back to the dotted OID string for anything digestalg doesn't recognize
// rather than failing the whole signer-algorithm resolution over a naming
// gap.
func hashOIDName(oid asn1.ObjectIdentifier) string {
	if len(oid) == 0 {
		return "SHA-256"
	}
	if h, err := digestalg.FromOID(oid); err == nil {
		return h.String()
	}
	return oid.String()
}
