package validation

import "github.com/google/uuid"

// RecordingContext is a ValidationContext test double that keys every
// token it receives with a fresh bookkeeping identifier, so concurrent
// test fixtures exercising the same DSSID space (e.g. two signatures that
// happen to share a re-used certificate fixture) don't collide when
// asserting on call order.
type RecordingContext struct {
	SessionID string
	Received  []RecordedToken
}

// RecordedToken pairs a token with the bookkeeping key it was received
// under.
type RecordedToken struct {
	Key   string
	Token Token
}

// NewRecordingContext returns a RecordingContext scoped to a fresh session
// identifier.
func NewRecordingContext() *RecordingContext {
	return &RecordingContext{SessionID: uuid.NewString()}
}

// AddToken implements ValidationContext.
func (c *RecordingContext) AddToken(t Token) {
	c.Received = append(c.Received, RecordedToken{Key: uuid.NewString(), Token: t})
}

// DSSIDs returns the DSSID of every token received, in order.
func (c *RecordingContext) DSSIDs() []string {
	out := make([]string, len(c.Received))
	for i, r := range c.Received {
		out[i] = r.Token.DSSID()
	}
	return out
}
