package ledgerDb

import a "bounty-node/modules/aggregate"

type Balances interface {
	a.Plugin
	GetBalance(account string, asset string) int64
	SetBalance(account string, asset string, amount int64) error
}

type Ledger interface {
	a.Plugin
	StoreOps(ops ...LedgerRecord) error
	GetOpsForAccount(account string, limit *int64) ([]LedgerRecord, error)
}

type BalanceRecord struct {
	Account string `bson:"account"`
	Asset   string `bson:"asset"`
	Amount  int64  `bson:"amount"`
}

// One executed movement of value. Persisted permanently as the audit trail.
type LedgerRecord struct {
	Id       string `bson:"id"`
	From     string `bson:"from"`
	To       string `bson:"to"`
	Amount   int64  `bson:"amount"`
	Asset    string `bson:"tk"`
	Memo     string `bson:"memo"`
	Type     string `bson:"t"`
	TimeUnit uint64 `bson:"time_unit"`
}
