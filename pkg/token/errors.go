package token

import "github.com/pkg/errors"

// ParseError is returned when a token's supporting bytes (CMS, RFC 3161
// TSTInfo, certificate DER) are malformed. It is terminal for the affected
// construction: the token is never created (spec §7 "Parse error").
type ParseError struct {
	cause error
}

func NewParseError(cause error) error {
	return &ParseError{cause: cause}
}

func (e *ParseError) Error() string {
	return "token: parse error: " + e.cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// CryptoBackendError wraps a fault raised by the injected crypto backend
// (an unsupported algorithm, a verifier that could not be instantiated).
// It is an environmental defect, not an evidential outcome, and is always
// propagated to the caller unchanged (spec §7).
type CryptoBackendError struct {
	cause error
}

func NewCryptoBackendError(cause error) error {
	return &CryptoBackendError{cause: cause}
}

func (e *CryptoBackendError) Error() string {
	return "token: crypto backend fault: " + e.cause.Error()
}

func (e *CryptoBackendError) Unwrap() error {
	return e.cause
}

// ErrContractViolation is raised when a caller violates the "must verify
// before reading the outcome" ordering rule (spec §7, P2): e.g. reading
// MessageImprintIntact before MatchData has run. It is never masked as an
// evidential failure.
var ErrContractViolation = errors.New("token: contract violation: outcome read before the verifying call ran")
