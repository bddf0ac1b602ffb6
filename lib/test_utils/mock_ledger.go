package test_utils

import (
	ledgerSystem "bounty-node/modules/ledger-system"
)

// In-memory LedgerSystem with the same session semantics as the real
// one: transfers stage in the session and only land on Done.
type MockLedger struct {
	Balances map[string]int64
	Oplog    []ledgerSystem.OpLogEvent
}

var _ ledgerSystem.LedgerSystem = &MockLedger{}

func NewMockLedger() *MockLedger {
	return &MockLedger{
		Balances: make(map[string]int64),
	}
}

func (m *MockLedger) key(account, asset string) string {
	return account + "#" + asset
}

// Test seeding.
func (m *MockLedger) SetBalance(account string, asset string, amount int64) {
	m.Balances[m.key(account, asset)] = amount
}

func (m *MockLedger) GetBalance(account string, asset string) int64 {
	return m.Balances[m.key(account, asset)]
}

func (m *MockLedger) NewSession() ledgerSystem.LedgerSession {
	return &mockLedgerSession{
		ledger:   m,
		balances: make(map[string]int64),
	}
}

type mockLedgerSession struct {
	ledger   *MockLedger
	balances map[string]int64
	touched  []string
	oplog    []ledgerSystem.OpLogEvent
}

func (s *mockLedgerSession) GetBalance(account string, asset string) int64 {
	key := s.ledger.key(account, asset)
	if bal, ok := s.balances[key]; ok {
		return bal
	}
	return s.ledger.Balances[key]
}

func (s *mockLedgerSession) setBalance(account string, asset string, amount int64) {
	key := s.ledger.key(account, asset)
	if _, ok := s.balances[key]; !ok {
		s.touched = append(s.touched, key)
	}
	s.balances[key] = amount
}

func (s *mockLedgerSession) ExecuteTransfer(op ledgerSystem.OpLogEvent) ledgerSystem.LedgerResult {
	if op.Amount <= 0 {
		return ledgerSystem.LedgerResult{Ok: false, Msg: "invalid amount"}
	}
	if op.From == "" || op.To == "" || op.From == op.To {
		return ledgerSystem.LedgerResult{Ok: false, Msg: "invalid to/from"}
	}
	if s.GetBalance(op.From, op.Asset) < op.Amount {
		return ledgerSystem.LedgerResult{Ok: false, Msg: "insufficient balance"}
	}

	s.setBalance(op.From, op.Asset, s.GetBalance(op.From, op.Asset)-op.Amount)
	s.setBalance(op.To, op.Asset, s.GetBalance(op.To, op.Asset)+op.Amount)
	s.oplog = append(s.oplog, op)
	return ledgerSystem.LedgerResult{Ok: true, Msg: "success"}
}

func (s *mockLedgerSession) Deposit(op ledgerSystem.OpLogEvent) ledgerSystem.LedgerResult {
	if op.Amount <= 0 {
		return ledgerSystem.LedgerResult{Ok: false, Msg: "invalid amount"}
	}
	s.setBalance(op.To, op.Asset, s.GetBalance(op.To, op.Asset)+op.Amount)
	s.oplog = append(s.oplog, op)
	return ledgerSystem.LedgerResult{Ok: true, Msg: "success"}
}

func (s *mockLedgerSession) Done() ([]string, error) {
	ids := make([]string, 0, len(s.oplog))
	for _, op := range s.oplog {
		ids = append(ids, op.Id)
	}
	for key, bal := range s.balances {
		s.ledger.Balances[key] = bal
	}
	s.ledger.Oplog = append(s.ledger.Oplog, s.oplog...)
	s.Revert()
	return ids, nil
}

func (s *mockLedgerSession) Revert() {
	s.balances = make(map[string]int64)
	s.touched = nil
	s.oplog = nil
}
