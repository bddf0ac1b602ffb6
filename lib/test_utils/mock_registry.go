package test_utils

import (
	"bounty-node/modules/db/bounty/registry"

	"github.com/chebyrash/promise"
)

type MockRegistry struct {
	Entries map[string]string
}

var _ registry.VoteRegistry = &MockRegistry{}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		Entries: make(map[string]string),
	}
}

func (m *MockRegistry) Register(reportRef string, voteId string, createdAt uint64) error {
	if _, ok := m.Entries[reportRef]; ok {
		return registry.ErrReportAlreadyRegistered
	}
	m.Entries[reportRef] = voteId
	return nil
}

func (m *MockRegistry) GetVoteIdForReport(reportRef string) *string {
	voteId, ok := m.Entries[reportRef]
	if !ok {
		return nil
	}
	return &voteId
}

func (m *MockRegistry) HasVoteForReport(reportRef string) bool {
	return m.GetVoteIdForReport(reportRef) != nil
}

func (m *MockRegistry) Init() error {
	return nil
}

func (m *MockRegistry) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (m *MockRegistry) Stop() error {
	return nil
}
