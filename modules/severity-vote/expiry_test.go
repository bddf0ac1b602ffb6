package severityVote_test

import (
	"testing"

	"bounty-node/lib/test_utils"
	"bounty-node/modules/common/params"
	votesDb "bounty-node/modules/db/bounty/votes"
	severityVote "bounty-node/modules/severity-vote"

	"github.com/stretchr/testify/assert"
)

func TestCancelExpiredVote(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 20_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)
	deadline := record.VotingDeadlineUnit

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityHigh, 5_000, 200))

	//not before the grace period lapses
	err := env.vs.CancelExpiredVote(record.Id, deadline)
	assert.ErrorIs(t, err, severityVote.ErrNotCancellable)
	err = env.vs.CancelExpiredVote(record.Id, deadline+params.QUORUM_GRACE_PERIOD-1)
	assert.ErrorIs(t, err, severityVote.ErrNotCancellable)

	assert.NoError(t, env.vs.CancelExpiredVote(record.Id, deadline+params.QUORUM_GRACE_PERIOD))

	status, err := env.vs.GetVoteStatus(record.Id)
	assert.NoError(t, err)
	assert.Equal(t, votesDb.StatusCancelled, status.Status)

	//cancelled ballots refund in full, once
	payout, err := env.vs.ClaimRefund(record.Id, "acct:alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(5_000), payout)
	assert.Equal(t, int64(20_000), env.ledger.GetBalance("acct:alice", params.STAKE_ASSET))

	_, err = env.vs.ClaimRefund(record.Id, "acct:alice")
	assert.ErrorIs(t, err, severityVote.ErrAlreadyClaimed)
}

func TestCancelExpiredVoteAtQuorum(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 20_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityHigh, 10_000, 200))

	//a vote at quorum must finalize instead
	err := env.vs.CancelExpiredVote(record.Id, record.VotingDeadlineUnit+params.QUORUM_GRACE_PERIOD)
	assert.ErrorIs(t, err, severityVote.ErrNotCancellable)

	_, err = env.vs.Finalize(record.Id, record.VotingDeadlineUnit)
	assert.NoError(t, err)
}

func TestExpirySweeper(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 20_000)
	env.fund("acct:bob", 20_000)

	clock := &test_utils.MockClock{Unit: 100}
	sweeper := severityVote.NewExpirySweeper(env.vs, env.votes, clock)

	stale, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)
	healthy, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-2",
		ProgramRef:    "program-1",
		Creator:       "acct:bob",
		MinimumQuorum: 10_000,
	}, 100)

	assert.NoError(t, env.vs.CastBallot(stale.Id, "acct:alice", votesDb.SeverityHigh, 1_000, 200))
	assert.NoError(t, env.vs.CastBallot(healthy.Id, "acct:bob", votesDb.SeverityHigh, 15_000, 200))

	//nothing to do while the grace period runs
	clock.Unit = stale.VotingDeadlineUnit + params.QUORUM_GRACE_PERIOD - 1
	sweeper.Sweep()
	status, _ := env.vs.GetVoteStatus(stale.Id)
	assert.Equal(t, votesDb.StatusActive, status.Status)

	clock.Advance(1)
	sweeper.Sweep()

	status, _ = env.vs.GetVoteStatus(stale.Id)
	assert.Equal(t, votesDb.StatusCancelled, status.Status)

	//the quorum-met vote is left for finalization
	status, _ = env.vs.GetVoteStatus(healthy.Id)
	assert.Equal(t, votesDb.StatusActive, status.Status)
}
