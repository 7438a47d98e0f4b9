package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCertificateSourceAddDeduplicates(t *testing.T) {
	s := NewCertificateSource(SourceTypeSignature)
	a := &fakeCert{der: []byte("a"), id: "id-a"}
	aAgain := &fakeCert{der: []byte("a"), id: "id-a"}
	b := &fakeCert{der: []byte("b"), id: "id-b"}

	s.Add(a)
	s.Add(aAgain)
	s.Add(b)

	require.Len(t, s.Certificates(), 2)
}

func TestMergeCertificateSourcesDeduplicatesAcrossSources(t *testing.T) {
	sig := NewCertificateSource(SourceTypeSignature)
	sig.Add(&fakeCert{der: []byte("a"), id: "id-a"})

	ts := NewCertificateSource(SourceTypeTimestamp)
	ts.Add(&fakeCert{der: []byte("a"), id: "id-a"})
	ts.Add(&fakeCert{der: []byte("c"), id: "id-c"})

	merged := MergeCertificateSources(sig, ts, nil)
	require.Len(t, merged, 2, "P6: duplicates collapsed by certificate identity across every source")
}

func TestRevocationSourceDeduplicatesByDERIdentity(t *testing.T) {
	s := NewRevocationSource()
	s.Add(RevocationArtifact{Type: SourceTypeTimestamp, DER: []byte("crl-1")})
	s.Add(RevocationArtifact{Type: SourceTypeTimestamp, DER: []byte("crl-1")})
	s.Add(RevocationArtifact{Type: SourceTypeTimestamp, DER: []byte("crl-2")})

	require.Len(t, s.Artifacts(), 2)
}

func TestMergeRevocationSourcesDeduplicatesAcrossSources(t *testing.T) {
	a := NewRevocationSource()
	a.Add(RevocationArtifact{DER: []byte("x")})

	b := NewRevocationSource()
	b.Add(RevocationArtifact{DER: []byte("x")})
	b.Add(RevocationArtifact{DER: []byte("y")})

	merged := MergeRevocationSources(a, b)
	require.Len(t, merged, 2)
}

func TestSourceTypeString(t *testing.T) {
	cases := map[SourceType]string{
		SourceTypeSignature:    "SIGNATURE",
		SourceTypeTimestamp:    "TIMESTAMP",
		SourceTypeOCSPResponse: "OCSP_RESPONSE",
		SourceTypeAIA:          "AIA",
		SourceTypeTrustedStore: "TRUSTED_STORE",
		SourceType(99):         "UNKNOWN",
	}
	for st, want := range cases {
		require.Equal(t, want, st.String())
	}
}
