package severityVote

import (
	"bounty-node/modules/common/params"
	votesDb "bounty-node/modules/db/bounty/votes"
	ledgerSystem "bounty-node/modules/ledger-system"

	"github.com/google/uuid"
)

// Urgent path: a premium-paid vote with a narrower window and a wider
// quorum, for reports that cannot wait out the standard timeline.

// CreateUrgentVote charges the creator the platform premium (paid to
// the treasury, not the reward pool) and opens the vote on the urgent
// timeline.
func (vs *VoteSystem) CreateUrgentVote(createParams CreateVoteParams, now uint64) (*votesDb.VoteRecord, error) {
	quorum := createParams.MinimumQuorum
	if quorum == 0 {
		quorum = params.DEFAULT_MINIMUM_QUORUM
	}
	quorum = quorum * params.URGENT_QUORUM_MULTIPLIER

	record := votesDb.VoteRecord{
		Id:         uuid.NewString(),
		ReportRef:  createParams.ReportRef,
		ProgramRef: createParams.ProgramRef,
		Creator:    createParams.Creator,
		Status:     votesDb.StatusActive,

		Kind:        votesDb.KindUrgent,
		PremiumPaid: params.URGENT_PREMIUM_FEE,

		CreatedAtUnit:      now,
		VotingDeadlineUnit: now + params.URGENT_VOTING_WINDOW,
		MinimumQuorum:      quorum,

		Ballots: make(map[string]votesDb.Ballot),
	}

	session := vs.Ledger.NewSession()
	premium := session.ExecuteTransfer(ledgerSystem.OpLogEvent{
		Id:       record.Id + "-premium",
		From:     createParams.Creator,
		To:       params.TREASURY_ACCOUNT,
		Amount:   params.URGENT_PREMIUM_FEE,
		Asset:    params.STAKE_ASSET,
		Type:     "vote_premium",
		TimeUnit: now,
	})
	if !premium.Ok {
		return nil, ErrPremiumNotPaid
	}

	if err := vs.RegistryDb.Register(record.ReportRef, record.Id, now); err != nil {
		session.Revert()
		return nil, err
	}
	if err := vs.VoteDb.StoreVote(record); err != nil {
		session.Revert()
		return nil, err
	}
	if _, err := session.Done(); err != nil {
		return nil, err
	}

	vs.log.Debug("urgent vote created", record.Id, "report", record.ReportRef)
	return &record, nil
}

// IssueEmergencyKey mints the fast-track credential. At most one key
// exists per vote system; a second issue attempt fails permanently.
func (vs *VoteSystem) IssueEmergencyKey(holder string) (*EmergencyKey, error) {
	vs.keyMu.Lock()
	defer vs.keyMu.Unlock()

	if vs.keyIssued {
		return nil, ErrKeyAlreadyIssued
	}
	vs.keyIssued = true
	return &EmergencyKey{holder: holder}, nil
}

// EmergencyFastTrack pulls an active vote's deadline in to the urgent
// window, converting it to the urgent timeline mid flight. This is the
// only third-party mutation a vote ledger admits and it is gated on
// holding the key itself, not on who the caller claims to be. The
// stored quorum is left untouched; see DESIGN.md.
func (vs *VoteSystem) EmergencyFastTrack(key *EmergencyKey, voteId string, now uint64) error {
	if key == nil {
		return ErrNotAuthorized
	}

	unlock := vs.lockVote(voteId)
	defer unlock()

	record, err := vs.VoteDb.GetVote(voteId)
	if err != nil {
		return ErrVoteNotFound
	}
	if record.Status != votesDb.StatusActive {
		return ErrAlreadyFinalized
	}

	record.Kind = votesDb.KindUrgent
	record.VotingDeadlineUnit = now + params.URGENT_VOTING_WINDOW

	if err := vs.VoteDb.StoreVote(*record); err != nil {
		return err
	}

	vs.log.Debug("vote fast-tracked", record.Id, "by", key.Holder(), "deadline", record.VotingDeadlineUnit)
	return nil
}
