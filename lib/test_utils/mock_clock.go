package test_utils

import severityVote "bounty-node/modules/severity-vote"

// MockClock is a hand-cranked platform time unit source.
type MockClock struct {
	Unit uint64
}

var _ severityVote.TimeSource = &MockClock{}

func (m *MockClock) NowUnit() uint64 {
	return m.Unit
}

func (m *MockClock) Advance(units uint64) {
	m.Unit += units
}
