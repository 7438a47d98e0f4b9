package timestamp

// Source buckets a signature's timestamps by what they attest to, mirroring
// the teacher's handleDSS level-upgrade buckets in pkg/pdfcpu/sign/pkcs7.go
// (B-T / B-LT / B-LTA) generalized to the full spec §3 TimestampSource
// classification (Content/Signature/X1/X2/Archive/Document/All).
type Source struct {
	content  []*TimestampToken
	allData  []*TimestampToken
	individualData []*TimestampToken
	signature []*TimestampToken
	refsOnly []*TimestampToken
	validationData []*TimestampToken
	archive  []*TimestampToken
	document []*TimestampToken
}

// NewSource returns an empty TimestampSource.
func NewSource() *Source { return &Source{} }

// Add classifies t into its bucket by Type() and appends it; a token added
// twice (same DSSID) is kept out of the bucket it's already in.
func (s *Source) Add(t *TimestampToken) {
	switch t.Type() {
	case ContentTimestamp:
		s.content = appendUnique(s.content, t)
	case AllDataObjectsTimestamp:
		s.allData = appendUnique(s.allData, t)
	case IndividualDataObjectsTimestamp:
		s.individualData = appendUnique(s.individualData, t)
	case SignatureTimestamp:
		s.signature = appendUnique(s.signature, t)
	case ValidationDataRefsOnlyTimestamp:
		s.refsOnly = appendUnique(s.refsOnly, t)
	case ValidationDataTimestamp:
		s.validationData = appendUnique(s.validationData, t)
	case ArchiveTimestamp:
		s.archive = appendUnique(s.archive, t)
	case DocumentTimestamp:
		s.document = appendUnique(s.document, t)
	}
}

// AddExternalTimestamp registers a timestamp produced outside the
// signature's own embedded structure (e.g. a detached container-level
// timestamp supplied alongside a CAdES signature) under the bucket its
// Type() names, the same as Add.
func (s *Source) AddExternalTimestamp(t *TimestampToken) { s.Add(t) }

func appendUnique(bucket []*TimestampToken, t *TimestampToken) []*TimestampToken {
	for _, existing := range bucket {
		if existing.DSSID() == t.DSSID() {
			return bucket
		}
	}
	return append(bucket, t)
}

// ContentTimestamps returns the ContentTimestamp bucket.
func (s *Source) ContentTimestamps() []*TimestampToken { return s.content }

// AllDataObjectsTimestamps returns the AllDataObjectsTimestamp bucket.
func (s *Source) AllDataObjectsTimestamps() []*TimestampToken { return s.allData }

// IndividualDataObjectsTimestamps returns the IndividualDataObjectsTimestamp bucket.
func (s *Source) IndividualDataObjectsTimestamps() []*TimestampToken { return s.individualData }

// SignatureTimestamps returns the SignatureTimestamp bucket.
func (s *Source) SignatureTimestamps() []*TimestampToken { return s.signature }

// ValidationDataRefsOnlyTimestamps returns the ValidationDataRefsOnlyTimestamp bucket.
func (s *Source) ValidationDataRefsOnlyTimestamps() []*TimestampToken { return s.refsOnly }

// ValidationDataTimestamps returns the ValidationDataTimestamp bucket.
func (s *Source) ValidationDataTimestamps() []*TimestampToken { return s.validationData }

// ArchiveTimestamps returns the ArchiveTimestamp bucket.
func (s *Source) ArchiveTimestamps() []*TimestampToken { return s.archive }

// DocumentTimestamps returns the DocumentTimestamp bucket.
func (s *Source) DocumentTimestamps() []*TimestampToken { return s.document }

// All returns every timestamp across every bucket, in bucket-then-insertion
// order (spec §3 TimestampSource.All).
func (s *Source) All() []*TimestampToken {
	var out []*TimestampToken
	for _, bucket := range [][]*TimestampToken{
		s.content, s.allData, s.individualData, s.signature,
		s.refsOnly, s.validationData, s.archive, s.document,
	} {
		out = append(out, bucket...)
	}
	return out
}
