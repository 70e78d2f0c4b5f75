package interfaces

import (
	"github.com/hrslabs/kiffscore/internal/kiff"
)

// MockScorer records the last computation request and returns a canned
// result.
type MockScorer struct {
	Result      *kiff.Result
	Err         error
	GotUserID   string
	GotOptions  kiff.Options
	CallCounter int
}

func (m *MockScorer) ComputeScore(userID string, opts kiff.Options) (*kiff.Result, error) {
	m.CallCounter++
	m.GotUserID = userID
	m.GotOptions = opts
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
