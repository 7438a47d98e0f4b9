package timestamp

import "encoding/asn1"

// Type classifies what a timestamp attests to (spec §3 TimestampToken.type).
type Type int

const (
	ContentTimestamp Type = iota
	AllDataObjectsTimestamp
	IndividualDataObjectsTimestamp
	SignatureTimestamp
	ValidationDataRefsOnlyTimestamp
	ValidationDataTimestamp
	ArchiveTimestamp
	DocumentTimestamp
)

func (t Type) String() string {
	switch t {
	case ContentTimestamp:
		return "CONTENT_TIMESTAMP"
	case AllDataObjectsTimestamp:
		return "ALL_DATA_OBJECTS_TIMESTAMP"
	case IndividualDataObjectsTimestamp:
		return "INDIVIDUAL_DATA_OBJECTS_TIMESTAMP"
	case SignatureTimestamp:
		return "SIGNATURE_TIMESTAMP"
	case ValidationDataRefsOnlyTimestamp:
		return "VALIDATION_DATA_REFS_ONLY_TIMESTAMP"
	case ValidationDataTimestamp:
		return "VALIDATION_DATA_TIMESTAMP"
	case ArchiveTimestamp:
		return "ARCHIVE_TIMESTAMP"
	case DocumentTimestamp:
		return "DOCUMENT_TIMESTAMP"
	default:
		return "UNKNOWN"
	}
}

// ArchiveType further qualifies an ArchiveTimestamp by the profile variant
// that produced it (spec §3 TimestampToken.archive_type).
type ArchiveType int

const (
	ArchiveTypeNone ArchiveType = iota
	ArchiveTypeXAdES141
	ArchiveTypeXAdES
	ArchiveTypeCAdESV2
	ArchiveTypeCAdESV3
	ArchiveTypePAdES
)

func (a ArchiveType) String() string {
	switch a {
	case ArchiveTypeXAdES141:
		return "XAdES-141"
	case ArchiveTypeXAdES:
		return "XAdES"
	case ArchiveTypeCAdESV2:
		return "CAdES-V2"
	case ArchiveTypeCAdESV3:
		return "CAdES-V3"
	case ArchiveTypePAdES:
		return "PAdES"
	default:
		return "NONE"
	}
}

// Location names the signature family that embeds this timestamp (spec §3
// TimestampToken.location).
type Location int

const (
	LocationCAdES Location = iota
	LocationXAdES
	LocationPAdES
	LocationDoc
	LocationASiC
)

func (l Location) String() string {
	switch l {
	case LocationCAdES:
		return "CAdES"
	case LocationXAdES:
		return "XAdES"
	case LocationPAdES:
		return "PAdES"
	case LocationDoc:
		return "DOC"
	case LocationASiC:
		return "ASiC"
	default:
		return "UNKNOWN"
	}
}

// ReferenceCategory groups what a TimestampedReference points at.
type ReferenceCategory int

const (
	ReferenceCategorySignature ReferenceCategory = iota
	ReferenceCategoryCertificate
	ReferenceCategoryRevocation
	ReferenceCategoryTimestamp
)

// Reference is one entry of a timestamp's timestamped_references list
// (spec §3): a category tag plus the id of the referenced object.
type Reference struct {
	Category ReferenceCategory
	ID       string
}

// MessageImprint is the (digest algorithm, digest value) pair extracted
// from an RFC 3161 TSTInfo (spec §3 TimestampToken.message_imprint).
type MessageImprint struct {
	Algorithm asn1.ObjectIdentifier
	Value     []byte
}
