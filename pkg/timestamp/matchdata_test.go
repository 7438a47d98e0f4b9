package timestamp

import (
	"encoding/asn1"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mranest/godss/pkg/digestalg"
	"github.com/mranest/godss/pkg/token"
)

func newTestToken(t *testing.T, imprint []byte) *TimestampToken {
	t.Helper()
	return &TimestampToken{
		Base: token.NewBase([]byte("fixture-der"), time.Now()),
		messageImprint: MessageImprint{
			Algorithm: digestalg.OIDSHA256,
			Value:     imprint,
		},
	}
}

func TestMessageImprintAccessorsAreContractViolationsBeforeMatch(t *testing.T) {
	tok := newTestToken(t, []byte("imprint"))

	_, err := tok.MessageImprintDataFound()
	require.ErrorIs(t, err, token.ErrContractViolation)

	_, err = tok.MessageImprintIntact()
	require.ErrorIs(t, err, token.ErrContractViolation)
}

func TestMatchDataRecordsIntactOnMatch(t *testing.T) {
	imprint, err := digestalg.Sum(digestalg.OIDSHA256, []byte("covered content"))
	require.NoError(t, err)
	tok := newTestToken(t, imprint)

	err = tok.MatchData([]byte("covered content"), digestalg.Sum)
	require.NoError(t, err)

	found, err := tok.MessageImprintDataFound()
	require.NoError(t, err)
	require.True(t, found)

	intact, err := tok.MessageImprintIntact()
	require.NoError(t, err)
	require.True(t, intact)
	require.True(t, tok.Processed())
}

func TestMatchDataRecordsMismatch(t *testing.T) {
	tok := newTestToken(t, []byte("not a real digest"))

	err := tok.MatchData([]byte("covered content"), digestalg.Sum)
	require.NoError(t, err)

	intact, err := tok.MessageImprintIntact()
	require.NoError(t, err)
	require.False(t, intact)
}

func TestMatchDataEmptyRecordsNotFound(t *testing.T) {
	tok := newTestToken(t, []byte("whatever"))

	err := tok.MatchData(nil, digestalg.Sum)
	require.NoError(t, err)

	found, err := tok.MessageImprintDataFound()
	require.NoError(t, err)
	require.False(t, found)

	intact, err := tok.MessageImprintIntact()
	require.NoError(t, err)
	require.False(t, intact)
}

func TestMatchDataPropagatesCryptoBackendFault(t *testing.T) {
	tok := newTestToken(t, []byte("imprint"))

	failing := func(alg asn1.ObjectIdentifier, data []byte) ([]byte, error) {
		return nil, errors.New("digest engine unavailable")
	}

	err := tok.MatchData([]byte("covered content"), failing)
	require.Error(t, err)

	var cbe *token.CryptoBackendError
	require.ErrorAs(t, err, &cbe)
}

func TestMatchDataQuietHasSameOutcomeAsMatchData(t *testing.T) {
	tok := newTestToken(t, []byte("not a real digest"))

	err := tok.MatchDataQuiet([]byte("covered content"), digestalg.Sum)
	require.NoError(t, err)

	intact, err := tok.MessageImprintIntact()
	require.NoError(t, err)
	require.False(t, intact, "MatchDataQuiet differs from MatchData only in logging, never in outcome")
}

func TestMatchDataBytesComparesPrecomputedDigest(t *testing.T) {
	imprint, err := digestalg.Sum(digestalg.OIDSHA256, []byte("covered content"))
	require.NoError(t, err)
	tok := newTestToken(t, imprint)

	require.True(t, tok.MatchDataBytes(imprint))
	require.True(t, tok.Processed())

	tok2 := newTestToken(t, imprint)
	require.False(t, tok2.MatchDataBytes([]byte("wrong digest")))
}
