package txProcessing

import (
	"bounty-node/lib/logger"
	severityVote "bounty-node/modules/severity-vote"

	"github.com/chebyrash/promise"
)

type TxResult struct {
	Success bool
	Ret     string
}

// More information about the TX
type TxSelf struct {
	TxId          string
	BlockId       string
	TimeUnit      uint64
	Index         int
	OpIndex       int
	RequiredAuths []string
}

type BountyTransaction interface {
	ExecuteTx(ve *VoteExecutor) TxResult
	Type() string
	TxSelf() TxSelf
	ToData() map[string]interface{}
}

// VoteExecutor hosts the vote system for transaction dispatch. The
// host's signature checks have already run by the time ExecuteTx is
// called; RequiredAuths is trusted.
type VoteExecutor struct {
	VoteSystem *severityVote.VoteSystem
	//nil until IssueEmergencyKey hands it out at startup
	EmergencyKey *severityVote.EmergencyKey
	//account allowed to consume the emergency key
	EmergencyAdmin string

	log logger.Logger
}

func NewVoteExecutor(vs *severityVote.VoteSystem) *VoteExecutor {
	return &VoteExecutor{
		VoteSystem: vs,

		log: logger.PrefixedLogger{Prefix: "tx-processing"},
	}
}

func (ve *VoteExecutor) Init() error {
	return nil
}

func (ve *VoteExecutor) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (ve *VoteExecutor) Stop() error {
	return nil
}
