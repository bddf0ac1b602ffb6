package test_utils

import (
	"errors"

	votesDb "bounty-node/modules/db/bounty/votes"

	"github.com/chebyrash/promise"
)

// In-memory Votes store. Records are deep-copied on the way in and out
// so tests observe the same isolation Mongo would give.
type MockVotes struct {
	Records map[string]votesDb.VoteRecord
}

var _ votesDb.Votes = &MockVotes{}

func NewMockVotes() *MockVotes {
	return &MockVotes{
		Records: make(map[string]votesDb.VoteRecord),
	}
}

func copyRecord(record votesDb.VoteRecord) votesDb.VoteRecord {
	out := record
	out.Ballots = make(map[string]votesDb.Ballot, len(record.Ballots))
	for k, v := range record.Ballots {
		out.Ballots[k] = v
	}
	if record.FinalSeverity != nil {
		fs := *record.FinalSeverity
		out.FinalSeverity = &fs
	}
	return out
}

func (m *MockVotes) StoreVote(record votesDb.VoteRecord) error {
	m.Records[record.Id] = copyRecord(record)
	return nil
}

func (m *MockVotes) GetVote(id string) (*votesDb.VoteRecord, error) {
	record, ok := m.Records[id]
	if !ok {
		return nil, errors.New("no documents in result")
	}
	out := copyRecord(record)
	return &out, nil
}

func (m *MockVotes) GetExpirable(nowUnit uint64, gracePeriod uint64) ([]votesDb.VoteRecord, error) {
	results := make([]votesDb.VoteRecord, 0)
	for _, record := range m.Records {
		if record.Status == votesDb.StatusActive && record.VotingDeadlineUnit+gracePeriod <= nowUnit {
			results = append(results, copyRecord(record))
		}
	}
	return results, nil
}

func (m *MockVotes) Init() error {
	return nil
}

func (m *MockVotes) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (m *MockVotes) Stop() error {
	return nil
}
