package token

// CertificateSource is the set of certificates extracted from one
// container (one signature's CMS certificates bag, one timestamp's CMS
// certificates bag, a trusted store, ...), tagged with the SourceType it
// came from (spec §3).
type CertificateSource struct {
	Type  SourceType
	certs []CertificateToken
}

// NewCertificateSource builds a source of the given type.
func NewCertificateSource(t SourceType) *CertificateSource {
	return &CertificateSource{Type: t}
}

// Add appends cert to the source; duplicates (by DSSID) are kept out.
func (s *CertificateSource) Add(cert CertificateToken) {
	for _, c := range s.certs {
		if c.DSSID() == cert.DSSID() {
			return
		}
	}
	s.certs = append(s.certs, cert)
}

// Certificates returns every certificate in the source.
func (s *CertificateSource) Certificates() []CertificateToken {
	return s.certs
}

// RevocationArtifact is one CRL or OCSP response blob extracted from a
// container, kept in DER form: the core does not parse revocation data, it
// only collects and relays it (spec §1 Non-goals).
type RevocationArtifact struct {
	Type SourceType
	DER  []byte
}

// RevocationSource is a deduplicated (by DER identity) set of revocation
// artifacts of one kind (CRLSource or OCSPSource, spec §3).
type RevocationSource struct {
	artifacts []RevocationArtifact
	seen      map[string]struct{}
}

// NewRevocationSource builds an empty revocation source.
func NewRevocationSource() *RevocationSource {
	return &RevocationSource{seen: make(map[string]struct{})}
}

// Add appends artifact, collapsing duplicates by byte identity.
func (s *RevocationSource) Add(a RevocationArtifact) {
	key := string(a.DER)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.artifacts = append(s.artifacts, a)
}

// Artifacts returns every artifact in the source.
func (s *RevocationSource) Artifacts() []RevocationArtifact {
	return s.artifacts
}

// MergeCertificateSources returns the union of every source's certificates,
// deduplicated by DSSID (spec §3 ListCertificateSource, P6).
func MergeCertificateSources(sources ...*CertificateSource) []CertificateToken {
	seen := make(map[string]struct{})
	var out []CertificateToken
	for _, s := range sources {
		if s == nil {
			continue
		}
		for _, c := range s.Certificates() {
			if _, ok := seen[c.DSSID()]; ok {
				continue
			}
			seen[c.DSSID()] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// MergeRevocationSources returns the union of every source's artifacts,
// deduplicated by byte identity.
func MergeRevocationSources(sources ...*RevocationSource) []RevocationArtifact {
	seen := make(map[string]struct{})
	var out []RevocationArtifact
	for _, s := range sources {
		if s == nil {
			continue
		}
		for _, a := range s.Artifacts() {
			key := string(a.DER)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
