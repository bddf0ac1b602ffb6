package ledgerSystem

type OpLogEvent struct {
	Id       string `json:"id" bson:"id"`
	To       string `json:"to" bson:"to"`
	From     string `json:"fr" bson:"from"`
	Amount   int64  `json:"am" bson:"amount"`
	Asset    string `json:"as" bson:"asset"`
	Memo     string `json:"mo" bson:"memo"`
	Type     string `json:"ty" bson:"type"`
	TimeUnit uint64 `json:"-" bson:"-"`
}

type LedgerResult struct {
	Ok  bool
	Msg string
}

type LedgerSession interface {
	GetBalance(account string, asset string) int64
	ExecuteTransfer(op OpLogEvent) LedgerResult
	//Credit with no source-balance check. Bridge deposits only.
	Deposit(op OpLogEvent) LedgerResult
	//Flushes accumulated ops to storage, returns the op ids written
	Done() ([]string, error)
	Revert()
}

type LedgerSystem interface {
	GetBalance(account string, asset string) int64
	NewSession() LedgerSession
}
