package severityVote_test

import (
	"testing"

	"bounty-node/lib/test_utils"
	"bounty-node/modules/common/params"
	votesDb "bounty-node/modules/db/bounty/votes"
	severityVote "bounty-node/modules/severity-vote"

	"github.com/stretchr/testify/assert"
)

type voteEnv struct {
	vs       *severityVote.VoteSystem
	votes    *test_utils.MockVotes
	registry *test_utils.MockRegistry
	ledger   *test_utils.MockLedger
}

func setupVoteEnv() *voteEnv {
	votes := test_utils.NewMockVotes()
	registry := test_utils.NewMockRegistry()
	ledger := test_utils.NewMockLedger()

	return &voteEnv{
		vs:       severityVote.New(votes, registry, ledger),
		votes:    votes,
		registry: registry,
		ledger:   ledger,
	}
}

func (env *voteEnv) fund(account string, amount int64) {
	env.ledger.SetBalance(account, params.STAKE_ASSET, amount)
}

func TestCreateVote(t *testing.T) {
	env := setupVoteEnv()

	record, err := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)
	assert.NoError(t, err)
	assert.Equal(t, votesDb.StatusActive, record.Status)
	assert.Equal(t, votesDb.KindStandard, record.Kind)
	assert.Equal(t, uint64(100+params.STANDARD_VOTING_WINDOW), record.VotingDeadlineUnit)
	assert.Equal(t, int64(10_000), record.MinimumQuorum)

	assert.True(t, env.registry.HasVoteForReport("report-1"))
	assert.Equal(t, record.Id, *env.registry.GetVoteIdForReport("report-1"))

	//one vote per report
	_, err = env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:  "report-1",
		ProgramRef: "program-1",
		Creator:    "acct:bob",
	}, 101)
	assert.Error(t, err)
}

func TestCreateVoteDefaultQuorum(t *testing.T) {
	env := setupVoteEnv()

	record, err := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:  "report-1",
		ProgramRef: "program-1",
		Creator:    "acct:alice",
	}, 100)
	assert.NoError(t, err)
	assert.Equal(t, params.DEFAULT_MINIMUM_QUORUM, record.MinimumQuorum)
}

func TestCastBallot(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 10_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:  "report-1",
		ProgramRef: "program-1",
		Creator:    "acct:alice",
	}, 100)

	err := env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityHigh, 4_000, 200)
	assert.NoError(t, err)

	info, err := env.vs.GetVoterInfo(record.Id, "acct:alice")
	assert.NoError(t, err)
	assert.Equal(t, votesDb.SeverityHigh, info.Choice)
	assert.Equal(t, int64(4_000), info.Stake)
	assert.False(t, info.Claimed)

	//stake moved into the pool account
	assert.Equal(t, int64(6_000), env.ledger.GetBalance("acct:alice", params.STAKE_ASSET))
	assert.Equal(t, int64(4_000), env.ledger.GetBalance(params.VOTE_POOL_PREFIX+record.Id, params.STAKE_ASSET))
}

func TestCastBallotRejections(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 10_000)
	env.fund("acct:bob", 10_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:  "report-1",
		ProgramRef: "program-1",
		Creator:    "acct:alice",
	}, 100)

	err := env.vs.CastBallot("no-such-vote", "acct:alice", votesDb.SeverityLow, 100, 200)
	assert.ErrorIs(t, err, severityVote.ErrVoteNotFound)

	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.Severity(5), 100, 200)
	assert.ErrorIs(t, err, severityVote.ErrInvalidSeverity)

	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.Severity(-1), 100, 200)
	assert.ErrorIs(t, err, severityVote.ErrInvalidSeverity)

	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityLow, 0, 200)
	assert.ErrorIs(t, err, severityVote.ErrZeroStake)

	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityLow, -5, 200)
	assert.ErrorIs(t, err, severityVote.ErrZeroStake)

	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityLow, 20_000, 200)
	assert.ErrorIs(t, err, severityVote.ErrInsufficientFunds)

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityLow, 100, 200))

	//ballots are final commitments, top-ups included
	err = env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityLow, 100, 201)
	assert.ErrorIs(t, err, severityVote.ErrAlreadyVoted)

	//deadline is exclusive for casting
	err = env.vs.CastBallot(record.Id, "acct:bob", votesDb.SeverityLow, 100, record.VotingDeadlineUnit)
	assert.ErrorIs(t, err, severityVote.ErrVotingClosed)
}

func TestStakeConservation(t *testing.T) {
	env := setupVoteEnv()
	voters := []string{"acct:a", "acct:b", "acct:c", "acct:d", "acct:e"}
	for _, v := range voters {
		env.fund(v, 100_000)
	}

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:  "report-1",
		ProgramRef: "program-1",
		Creator:    "acct:a",
	}, 100)

	stakes := []int64{11, 222, 3_333, 44_444, 55_555}
	for i, v := range voters {
		assert.NoError(t, env.vs.CastBallot(record.Id, v, votesDb.Severity(i), stakes[i], 200))

		dist, err := env.vs.GetVoteDistribution(record.Id)
		assert.NoError(t, err)
		sum := int64(0)
		for _, amt := range dist {
			sum += amt
		}

		status, err := env.vs.GetVoteStatus(record.Id)
		assert.NoError(t, err)
		assert.Equal(t, sum, status.TotalStaked)
	}
}

func TestFinalize(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 20_000)
	env.fund("acct:bob", 20_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)
	deadline := record.VotingDeadlineUnit

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityMedium, 8_000, 200))
	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:bob", votesDb.SeverityLow, 4_000, 200))

	_, err := env.vs.Finalize(record.Id, deadline-1)
	assert.ErrorIs(t, err, severityVote.ErrNotYetDeadline)

	//deadline is inclusive for finalizing
	severity, err := env.vs.Finalize(record.Id, deadline)
	assert.NoError(t, err)
	assert.Equal(t, votesDb.SeverityMedium, severity)

	status, err := env.vs.GetVoteStatus(record.Id)
	assert.NoError(t, err)
	assert.Equal(t, votesDb.StatusFinalized, status.Status)
	assert.Equal(t, votesDb.SeverityMedium, status.FinalSeverity.Unwrap())

	//not reentrant
	_, err = env.vs.Finalize(record.Id, deadline+1)
	assert.ErrorIs(t, err, severityVote.ErrAlreadyFinalized)

	//casting after finalize is closed regardless of time
	err = env.vs.CastBallot(record.Id, "acct:bob", votesDb.SeverityLow, 100, deadline+2)
	assert.ErrorIs(t, err, severityVote.ErrVotingClosed)
}

func TestFinalizeQuorumGating(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 20_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityCritical, 9_999, 200))

	//no amount of elapsed time substitutes for quorum
	_, err := env.vs.Finalize(record.Id, record.VotingDeadlineUnit+1_000_000)
	assert.ErrorIs(t, err, severityVote.ErrQuorumNotMet)
}

// Exact stake ties resolve to the more severe bucket.
func TestFinalizeTieBreak(t *testing.T) {
	cases := []struct {
		a, b   votesDb.Severity
		winner votesDb.Severity
	}{
		{votesDb.SeverityCritical, votesDb.SeverityHigh, votesDb.SeverityCritical},
		{votesDb.SeverityHigh, votesDb.SeverityMedium, votesDb.SeverityHigh},
		{votesDb.SeverityLow, votesDb.SeverityNone, votesDb.SeverityLow},
		{votesDb.SeverityNone, votesDb.SeverityCritical, votesDb.SeverityCritical},
	}

	for _, tc := range cases {
		env := setupVoteEnv()
		env.fund("acct:alice", 20_000)
		env.fund("acct:bob", 20_000)

		record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
			ReportRef:     "report-1",
			ProgramRef:    "program-1",
			Creator:       "acct:alice",
			MinimumQuorum: 10_000,
		}, 100)

		assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", tc.a, 6_000, 200))
		assert.NoError(t, env.vs.CastBallot(record.Id, "acct:bob", tc.b, 6_000, 200))

		severity, err := env.vs.Finalize(record.Id, record.VotingDeadlineUnit)
		assert.NoError(t, err)
		assert.Equal(t, tc.winner, severity, "tie between %s and %s", tc.a, tc.b)
	}
}

// The worked scenario: 6,000/2,000 on Critical vs 3,000 on High with a
// 10,000 quorum. Slash pot is 300; payouts 6,225 and 2,075.
func TestRewardScenario(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 6_000)
	env.fund("acct:bob", 2_000)
	env.fund("acct:carol", 3_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityCritical, 6_000, 200))
	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:bob", votesDb.SeverityCritical, 2_000, 200))
	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:carol", votesDb.SeverityHigh, 3_000, 200))

	severity, err := env.vs.Finalize(record.Id, record.VotingDeadlineUnit)
	assert.NoError(t, err)
	assert.Equal(t, votesDb.SeverityCritical, severity)

	//pre-claim projections match the settlement amounts
	assert.Equal(t, int64(6_225), env.vs.CalculateVoterReward(record.Id, "acct:alice").Unwrap())
	assert.Equal(t, int64(2_075), env.vs.CalculateVoterReward(record.Id, "acct:bob").Unwrap())

	payout, err := env.vs.ClaimReward(record.Id, "acct:alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(6_225), payout)
	assert.Equal(t, int64(6_225), env.ledger.GetBalance("acct:alice", params.STAKE_ASSET))

	payout, err = env.vs.ClaimReward(record.Id, "acct:bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(2_075), payout)

	//minority voter reclaims the unslashed 90%
	payout, err = env.vs.ClaimMinorityReturn(record.Id, "acct:carol")
	assert.NoError(t, err)
	assert.Equal(t, int64(2_700), payout)

	//everything settled, pool fully drained
	assert.Equal(t, int64(0), env.ledger.GetBalance(params.VOTE_POOL_PREFIX+record.Id, params.STAKE_ASSET))
}

func TestClaimIdempotence(t *testing.T) {
	env := setupVoteEnv()
	env.fund("acct:alice", 6_000)
	env.fund("acct:bob", 2_000)
	env.fund("acct:carol", 3_000)

	record, _ := env.vs.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     "report-1",
		ProgramRef:    "program-1",
		Creator:       "acct:alice",
		MinimumQuorum: 10_000,
	}, 100)

	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:alice", votesDb.SeverityCritical, 6_000, 200))
	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:bob", votesDb.SeverityCritical, 2_000, 200))
	assert.NoError(t, env.vs.CastBallot(record.Id, "acct:carol", votesDb.SeverityHigh, 3_000, 200))

	_, err := env.vs.ClaimReward(record.Id, "acct:alice")
	assert.ErrorIs(t, err, severityVote.ErrNotFinalized)

	_, err = env.vs.Finalize(record.Id, record.VotingDeadlineUnit)
	assert.NoError(t, err)

	payout, err := env.vs.ClaimReward(record.Id, "acct:alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(6_225), payout)

	_, err = env.vs.ClaimReward(record.Id, "acct:alice")
	assert.ErrorIs(t, err, severityVote.ErrAlreadyClaimed)

	//balance reflects exactly one settlement
	assert.Equal(t, int64(6_225), env.ledger.GetBalance("acct:alice", params.STAKE_ASSET))

	//a minority voter cannot claim the majority reward, nor vice versa
	_, err = env.vs.ClaimReward(record.Id, "acct:carol")
	assert.ErrorIs(t, err, severityVote.ErrNotMajorityVoter)
	_, err = env.vs.ClaimMinorityReturn(record.Id, "acct:alice")
	assert.ErrorIs(t, err, severityVote.ErrNotMinorityVoter)

	//strangers have nothing to claim
	_, err = env.vs.ClaimReward(record.Id, "acct:mallory")
	assert.ErrorIs(t, err, severityVote.ErrNoBallot)
}
