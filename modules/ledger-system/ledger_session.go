package ledgerSystem

import (
	"strconv"
	"strings"

	ledgerDb "bounty-node/modules/db/bounty/ledger"
)

type ledgerSession struct {
	ls *ledgerSystem

	oplog    []OpLogEvent
	balances map[string]*int64
	idCache  map[string]int
}

func (session *ledgerSession) GetBalance(account string, asset string) int64 {
	if session.balances[session.key(account, asset)] == nil {
		bal := session.ls.GetBalance(account, asset)
		session.balances[session.key(account, asset)] = &bal
	}

	return *session.balances[session.key(account, asset)]
}

func (session *ledgerSession) setBalance(account string, asset string, amount int64) {
	session.balances[session.key(account, asset)] = &amount
}

func (session *ledgerSession) key(account, asset string) string {
	return account + "#" + asset
}

func (session *ledgerSession) ExecuteTransfer(op OpLogEvent) LedgerResult {
	if op.Amount <= 0 {
		return LedgerResult{
			Ok:  false,
			Msg: "invalid amount",
		}
	}
	if op.From == "" || op.To == "" || op.From == op.To {
		return LedgerResult{
			Ok:  false,
			Msg: "invalid to/from",
		}
	}

	balAmt := session.GetBalance(op.From, op.Asset)
	if balAmt < op.Amount {
		return LedgerResult{
			Ok:  false,
			Msg: "insufficient balance",
		}
	}

	session.setBalance(op.From, op.Asset, balAmt-op.Amount)
	session.setBalance(op.To, op.Asset, session.GetBalance(op.To, op.Asset)+op.Amount)
	session.appendOplog(op)

	return LedgerResult{
		Ok:  true,
		Msg: "success",
	}
}

func (session *ledgerSession) Deposit(op OpLogEvent) LedgerResult {
	if op.Amount <= 0 {
		return LedgerResult{
			Ok:  false,
			Msg: "invalid amount",
		}
	}
	if op.To == "" {
		return LedgerResult{
			Ok:  false,
			Msg: "invalid to",
		}
	}

	session.setBalance(op.To, op.Asset, session.GetBalance(op.To, op.Asset)+op.Amount)
	session.appendOplog(op)

	return LedgerResult{
		Ok:  true,
		Msg: "success",
	}
}

// Appends an oplog entry with no validation.
// Repeated ids within one session get a :n suffix.
func (session *ledgerSession) appendOplog(op OpLogEvent) {
	id2 := op.Id
	if session.idCache[id2] > 0 {
		op.Id = id2 + ":" + strconv.Itoa(session.idCache[id2])
	}
	session.idCache[id2]++

	session.oplog = append(session.oplog, op)
}

func (session *ledgerSession) Done() ([]string, error) {
	ledgerIds := make([]string, 0)
	records := make([]ledgerDb.LedgerRecord, 0, len(session.oplog))
	for _, v := range session.oplog {
		ledgerIds = append(ledgerIds, v.Id)
		records = append(records, ledgerDb.LedgerRecord{
			Id:       v.Id,
			From:     v.From,
			To:       v.To,
			Amount:   v.Amount,
			Asset:    v.Asset,
			Memo:     v.Memo,
			Type:     v.Type,
			TimeUnit: v.TimeUnit,
		})
	}

	if err := session.ls.LedgerDb.StoreOps(records...); err != nil {
		return nil, err
	}

	for key, bal := range session.balances {
		account, asset, _ := strings.Cut(key, "#")
		if err := session.ls.BalanceDb.SetBalance(account, asset, *bal); err != nil {
			return nil, err
		}
	}

	session.Revert()
	return ledgerIds, nil
}

func (session *ledgerSession) Revert() {
	session.oplog = make([]OpLogEvent, 0)
	session.balances = make(map[string]*int64)
}
