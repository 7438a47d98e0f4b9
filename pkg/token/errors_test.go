package token

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseErrorUnwraps(t *testing.T) {
	cause := errors.New("truncated DER")
	err := NewParseError(cause)

	require.Contains(t, err.Error(), "truncated DER")
	require.ErrorIs(t, err, cause)
}

func TestCryptoBackendErrorUnwraps(t *testing.T) {
	cause := errors.New("unsupported curve")
	err := NewCryptoBackendError(cause)

	require.Contains(t, err.Error(), "unsupported curve")
	require.ErrorIs(t, err, cause)
}

func TestErrContractViolationIsDistinctFromEvidentialFailure(t *testing.T) {
	require.NotErrorIs(t, ErrContractViolation, NewParseError(errors.New("x")))
	require.NotErrorIs(t, ErrContractViolation, NewCryptoBackendError(errors.New("x")))
}
