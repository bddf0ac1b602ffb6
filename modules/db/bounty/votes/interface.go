package votes

import a "bounty-node/modules/aggregate"

type Votes interface {
	a.Plugin
	StoreVote(record VoteRecord) error
	GetVote(id string) (*VoteRecord, error)
	//Active votes whose deadline plus grace period has elapsed at nowUnit
	GetExpirable(nowUnit uint64, gracePeriod uint64) ([]VoteRecord, error)
}
