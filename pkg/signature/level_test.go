package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mranest/godss/pkg/token"
)

func newTestSignature(t *testing.T) *CAdESSignature {
	t.Helper()
	return NewCAdESSignature("sig-1", []byte("der"), token.NewCertificatePool())
}

func TestSignatureLevelsAreFormatQualifiedAndAscending(t *testing.T) {
	s := newTestSignature(t)
	levels := s.SignatureLevels()
	require.Equal(t, []Level{"CADES_BASELINE_B", "CADES_BASELINE_T", "CADES_BASELINE_LT", "CADES_BASELINE_LTA"}, levels)
}

func TestLevelBRequiresACertificate(t *testing.T) {
	s := newTestSignature(t)
	require.False(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_B"))

	s.SetProvidedSigningCertificateToken(&fakeCert{der: []byte("cert"), id: "id-1"})
	require.True(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_B"))
}

func TestLevelLadderIsMonotone(t *testing.T) {
	s := newTestSignature(t)
	s.SetProvidedSigningCertificateToken(&fakeCert{der: []byte("cert"), id: "id-1"})

	require.True(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_B"))
	require.False(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_T"), "T also requires a signature timestamp")
	require.False(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_LT"))
	require.False(t, s.IsDataForSignatureLevelPresent("CADES_BASELINE_LTA"))

	require.Equal(t, Level("CADES_BASELINE_B"), s.DataFoundUpToLevel())
}

func TestDataFoundUpToLevelWithNothingPresent(t *testing.T) {
	s := newTestSignature(t)
	require.Equal(t, Level(""), s.DataFoundUpToLevel())
}

func TestIsDataForSignatureLevelPresentRejectsUnknownLevel(t *testing.T) {
	s := newTestSignature(t)
	require.False(t, s.IsDataForSignatureLevelPresent("NOT_A_REAL_LEVEL"))
}
