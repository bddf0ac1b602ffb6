package ledgerSystem

import (
	"bounty-node/lib/logger"
	ledgerDb "bounty-node/modules/db/bounty/ledger"

	"github.com/chebyrash/promise"
)

// The ledger system is the monetary backbone of the platform.
// Balances are compiled records; every movement of value is an oplog
// entry executed through a session so a failed entry point can revert
// without touching storage.

type ledgerSystem struct {
	BalanceDb ledgerDb.Balances
	LedgerDb  ledgerDb.Ledger

	log logger.Logger
}

var _ LedgerSystem = &ledgerSystem{}

func New(balanceDb ledgerDb.Balances, ledgerDbi ledgerDb.Ledger) *ledgerSystem {
	return &ledgerSystem{
		BalanceDb: balanceDb,
		LedgerDb:  ledgerDbi,

		log: logger.PrefixedLogger{Prefix: "ledger-system"},
	}
}

func (ls *ledgerSystem) GetBalance(account string, asset string) int64 {
	return ls.BalanceDb.GetBalance(account, asset)
}

func (ls *ledgerSystem) NewSession() LedgerSession {
	return &ledgerSession{
		ls:       ls,
		balances: make(map[string]*int64),
		oplog:    make([]OpLogEvent, 0),
		idCache:  make(map[string]int),
	}
}

func (ls *ledgerSystem) Init() error {
	return nil
}

func (ls *ledgerSystem) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (ls *ledgerSystem) Stop() error {
	return nil
}
