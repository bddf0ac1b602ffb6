package severityVote

import (
	"sync"

	"bounty-node/lib/logger"
	"bounty-node/modules/common/params"
	"bounty-node/modules/db/bounty/registry"
	votesDb "bounty-node/modules/db/bounty/votes"
	ledgerSystem "bounty-node/modules/ledger-system"

	"github.com/JustinKnueppel/go-result"
	"github.com/chebyrash/promise"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
)

// VoteSystem is the severity dispute engine: one ledger record per
// disputed report, weighted ballots, deadline+quorum gated
// finalization and lazy per-voter settlement.
//
// The host is expected to serialize conflicting transactions; outside
// a chain context every mutation still takes a per-vote lock so
// concurrent casts on one vote serialize deterministically.
type VoteSystem struct {
	VoteDb     votesDb.Votes
	RegistryDb registry.VoteRegistry
	Ledger     ledgerSystem.LedgerSystem

	log   logger.Logger
	locks sync.Map

	keyMu     sync.Mutex
	keyIssued bool
}

func New(voteDb votesDb.Votes, registryDb registry.VoteRegistry, ledger ledgerSystem.LedgerSystem) *VoteSystem {
	return &VoteSystem{
		VoteDb:     voteDb,
		RegistryDb: registryDb,
		Ledger:     ledger,

		log: logger.PrefixedLogger{Prefix: "severity-vote"},
	}
}

func (vs *VoteSystem) lockVote(id string) func() {
	mtx, _ := vs.locks.LoadOrStore(id, &sync.Mutex{})
	m := mtx.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (vs *VoteSystem) poolAccount(voteId string) string {
	return params.VOTE_POOL_PREFIX + voteId
}

// CreateVote opens a standard severity dispute for a report. The
// report lifecycle module is the caller; it guarantees the report is
// actually disputable. One vote per report is enforced here via the
// registry.
func (vs *VoteSystem) CreateVote(createParams CreateVoteParams, now uint64) (*votesDb.VoteRecord, error) {
	quorum := createParams.MinimumQuorum
	if quorum == 0 {
		quorum = params.DEFAULT_MINIMUM_QUORUM
	}

	record := votesDb.VoteRecord{
		Id:         uuid.NewString(),
		ReportRef:  createParams.ReportRef,
		ProgramRef: createParams.ProgramRef,
		Creator:    createParams.Creator,
		Status:     votesDb.StatusActive,
		Kind:       votesDb.KindStandard,

		CreatedAtUnit:      now,
		VotingDeadlineUnit: now + params.STANDARD_VOTING_WINDOW,
		MinimumQuorum:      quorum,

		Ballots: make(map[string]votesDb.Ballot),
	}

	if err := vs.RegistryDb.Register(record.ReportRef, record.Id, now); err != nil {
		return nil, err
	}
	if err := vs.VoteDb.StoreVote(record); err != nil {
		return nil, err
	}

	vs.log.Debug("vote created", record.Id, "report", record.ReportRef)
	return &record, nil
}

// CastBallot records one voter's weighted ballot. Ballots are final
// commitments: no top-ups, no amendments. Deadline is exclusive here
// (casting exactly at the deadline unit is already closed).
func (vs *VoteSystem) CastBallot(voteId string, voter string, choice votesDb.Severity, stakeAmount int64, now uint64) error {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return ErrVoteNotFound
	}

	if record.Status != votesDb.StatusActive || now >= record.VotingDeadlineUnit {
		return ErrVotingClosed
	}
	if !choice.Valid() {
		return ErrInvalidSeverity
	}
	if stakeAmount <= 0 {
		return ErrZeroStake
	}
	if _, voted := record.Ballots[voter]; voted {
		return ErrAlreadyVoted
	}

	session := vs.Ledger.NewSession()
	transfer := session.ExecuteTransfer(ledgerSystem.OpLogEvent{
		Id:       record.Id + "-cast-" + voter,
		From:     voter,
		To:       vs.poolAccount(record.Id),
		Amount:   stakeAmount,
		Asset:    params.STAKE_ASSET,
		Type:     "vote_stake",
		TimeUnit: now,
	})
	if !transfer.Ok {
		return ErrInsufficientFunds
	}

	record.Ballots[voter] = votesDb.Ballot{
		Choice: choice,
		Stake:  stakeAmount,
	}
	record.SeverityStakes[choice] += stakeAmount
	record.TotalStaked += stakeAmount
	record.RewardPool += stakeAmount

	if err := vs.VoteDb.StoreVote(*record); err != nil {
		session.Revert()
		return err
	}
	if _, err := session.Done(); err != nil {
		return err
	}

	return nil
}

// Finalize closes the vote once the deadline has passed (inclusive)
// and quorum is met. The winning bucket is the one with the greatest
// stake; ties resolve to the more severe level because buckets are
// scanned in severity order. Any caller may trigger it.
func (vs *VoteSystem) Finalize(voteId string, now uint64) (votesDb.Severity, error) {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return 0, ErrVoteNotFound
	}

	if record.Status != votesDb.StatusActive {
		return 0, ErrAlreadyFinalized
	}
	if now < record.VotingDeadlineUnit {
		return 0, ErrNotYetDeadline
	}
	if record.TotalStaked < record.MinimumQuorum {
		return 0, ErrQuorumNotMet
	}

	winner := votesDb.SeverityCritical
	for i := votesDb.Severity(1); i < votesDb.SeverityCount; i++ {
		if record.SeverityStakes[i] > record.SeverityStakes[winner] {
			winner = i
		}
	}

	record.Status = votesDb.StatusFinalized
	record.FinalSeverity = &winner

	if err := vs.VoteDb.StoreVote(*record); err != nil {
		return 0, err
	}

	vs.log.Debug("vote finalized", record.Id, "severity", winner.String())
	return winner, nil
}

// ClaimReward settles one majority voter: their stake back plus their
// proportional share of the slash pot. Idempotent through the ballot's
// claimed flag.
func (vs *VoteSystem) ClaimReward(voteId string, voter string) (int64, error) {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return 0, ErrVoteNotFound
	}
	if record.Status != votesDb.StatusFinalized {
		return 0, ErrNotFinalized
	}

	ballot, ok := record.Ballots[voter]
	if !ok {
		return 0, ErrNoBallot
	}
	if ballot.Choice != *record.FinalSeverity {
		return 0, ErrNotMajorityVoter
	}
	if ballot.Claimed {
		return 0, ErrAlreadyClaimed
	}

	winningStake := record.SeverityStakes[*record.FinalSeverity]
	slashAmount := SlashAmount(record.TotalStaked, winningStake)
	payout := ballot.Stake + RewardShare(ballot.Stake, slashAmount, winningStake)

	return vs.settle(record, voter, ballot, payout, "vote_reward")
}

// ClaimMinorityReturn settles one losing voter: their stake minus the
// slashed portion. The slashed portion stays in the pool for the
// majority side.
func (vs *VoteSystem) ClaimMinorityReturn(voteId string, voter string) (int64, error) {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return 0, ErrVoteNotFound
	}
	if record.Status != votesDb.StatusFinalized {
		return 0, ErrNotFinalized
	}

	ballot, ok := record.Ballots[voter]
	if !ok {
		return 0, ErrNoBallot
	}
	if ballot.Choice == *record.FinalSeverity {
		return 0, ErrNotMinorityVoter
	}
	if ballot.Claimed {
		return 0, ErrAlreadyClaimed
	}

	return vs.settle(record, voter, ballot, MinorityReturn(ballot.Stake), "vote_return")
}

// ClaimRefund returns the full stake of a ballot on a cancelled vote.
// No slashing applies because no outcome was reached.
func (vs *VoteSystem) ClaimRefund(voteId string, voter string) (int64, error) {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return 0, ErrVoteNotFound
	}
	if record.Status != votesDb.StatusCancelled {
		return 0, ErrNotCancelled
	}

	ballot, ok := record.Ballots[voter]
	if !ok {
		return 0, ErrNoBallot
	}
	if ballot.Claimed {
		return 0, ErrAlreadyClaimed
	}

	return vs.settle(record, voter, ballot, ballot.Stake, "vote_refund")
}

func (vs *VoteSystem) settle(record *votesDb.VoteRecord, voter string, ballot votesDb.Ballot, payout int64, opType string) (int64, error) {
	if record.RewardPool < payout {
		vs.log.Error("pool underflow", record.Id, "pool", record.RewardPool, "payout", payout)
		return 0, ErrPoolUnderflow
	}

	session := vs.Ledger.NewSession()
	if payout > 0 {
		transfer := session.ExecuteTransfer(ledgerSystem.OpLogEvent{
			Id:     record.Id + "-claim-" + voter,
			From:   vs.poolAccount(record.Id),
			To:     voter,
			Amount: payout,
			Asset:  params.STAKE_ASSET,
			Type:   opType,
		})
		if !transfer.Ok {
			return 0, ErrPoolUnderflow
		}
	}

	ballot.Claimed = true
	record.Ballots[voter] = ballot
	record.RewardPool -= payout

	if err := vs.VoteDb.StoreVote(*record); err != nil {
		session.Revert()
		return 0, err
	}
	if _, err := session.Done(); err != nil {
		return 0, err
	}

	return payout, nil
}

// CancelExpiredVote retires a vote that sat past its deadline plus the
// grace period without ever reaching quorum. Ballots become refundable
// in full. Any caller may trigger it; the expiry sweeper does so on a
// schedule.
func (vs *VoteSystem) CancelExpiredVote(voteId string, now uint64) error {
	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return ErrVoteNotFound
	}

	if record.Status != votesDb.StatusActive {
		return ErrNotCancellable
	}
	if now < record.VotingDeadlineUnit+params.QUORUM_GRACE_PERIOD {
		return ErrNotCancellable
	}
	//A vote at quorum must finalize, not cancel
	if record.TotalStaked >= record.MinimumQuorum {
		return ErrNotCancellable
	}

	record.Status = votesDb.StatusCancelled
	if err := vs.VoteDb.StoreVote(*record); err != nil {
		return err
	}

	vs.log.Debug("vote cancelled", record.Id, "staked", record.TotalStaked)
	return nil
}

func (vs *VoteSystem) GetVoteStatus(voteId string) (*VoteStatus, error) {
	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return nil, ErrVoteNotFound
	}

	status := VoteStatus{
		Status:      record.Status,
		TotalStaked: record.TotalStaked,
		Deadline:    record.VotingDeadlineUnit,
	}
	if record.FinalSeverity != nil {
		status.FinalSeverity = optional.Some(*record.FinalSeverity)
	}
	return &status, nil
}

func (vs *VoteSystem) GetVoterInfo(voteId string, voter string) (*VoterInfo, error) {
	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return nil, ErrVoteNotFound
	}

	ballot, ok := record.Ballots[voter]
	if !ok {
		return nil, ErrNoBallot
	}
	return &VoterInfo{
		Choice:  ballot.Choice,
		Stake:   ballot.Stake,
		Claimed: ballot.Claimed,
	}, nil
}

func (vs *VoteSystem) GetVoteDistribution(voteId string) ([votesDb.SeverityCount]int64, error) {
	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return [votesDb.SeverityCount]int64{}, ErrVoteNotFound
	}
	return record.SeverityStakes, nil
}

// CalculateVoterReward is the pure pre-claim projection of what a
// voter's settlement would pay. Majority voters see stake plus reward
// share, minority voters their post-slash return. Nothing is moved.
func (vs *VoteSystem) CalculateVoterReward(voteId string, voter string) result.Result[int64] {
	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return result.Err[int64](ErrVoteNotFound)
	}
	if record.Status != votesDb.StatusFinalized {
		return result.Err[int64](ErrNotFinalized)
	}

	ballot, ok := record.Ballots[voter]
	if !ok {
		return result.Err[int64](ErrNoBallot)
	}

	if ballot.Choice != *record.FinalSeverity {
		return result.Ok(MinorityReturn(ballot.Stake))
	}

	winningStake := record.SeverityStakes[*record.FinalSeverity]
	slashAmount := SlashAmount(record.TotalStaked, winningStake)
	return result.Ok(ballot.Stake + RewardShare(ballot.Stake, slashAmount, winningStake))
}

func (vs *VoteSystem) Init() error {
	return nil
}

func (vs *VoteSystem) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (vs *VoteSystem) Stop() error {
	return nil
}
