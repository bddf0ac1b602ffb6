package txProcessing

import (
	"slices"

	votesDb "bounty-node/modules/db/bounty/votes"
	severityVote "bounty-node/modules/severity-vote"

	"github.com/go-playground/validator/v10"
)

var txValidator = validator.New(validator.WithRequiredStructEnabled())

func errorToTxResult(err error) TxResult {
	return TxResult{
		Success: false,
		Ret:     err.Error(),
	}
}

// Opens a standard severity dispute. Only the report lifecycle module
// crafts this op, so the payload is already tied to a real report.
type TxDisputeSeverity struct {
	Self TxSelf

	ReportRef     string `json:"report_ref" validate:"required"`
	ProgramRef    string `json:"program_ref" validate:"required"`
	MinimumQuorum int64  `json:"minimum_quorum" validate:"gte=0"`
}

func (tx *TxDisputeSeverity) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}
	if len(tx.Self.RequiredAuths) == 0 {
		return TxResult{Success: false, Ret: "missing auths"}
	}

	record, err := ve.VoteSystem.CreateVote(severityVote.CreateVoteParams{
		ReportRef:     tx.ReportRef,
		ProgramRef:    tx.ProgramRef,
		Creator:       tx.Self.RequiredAuths[0],
		MinimumQuorum: tx.MinimumQuorum,
	}, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     record.Id,
	}
}

func (tx *TxDisputeSeverity) Type() string {
	return "dispute_severity"
}

func (tx *TxDisputeSeverity) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxDisputeSeverity) ToData() map[string]interface{} {
	return map[string]interface{}{
		"report_ref":     tx.ReportRef,
		"program_ref":    tx.ProgramRef,
		"minimum_quorum": tx.MinimumQuorum,
	}
}

type TxCastBallot struct {
	Self TxSelf

	VoteId   string `json:"vote_id" validate:"required"`
	Voter    string `json:"voter" validate:"required"`
	Severity int    `json:"severity" validate:"gte=0"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

func (tx *TxCastBallot) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}
	if !slices.Contains(tx.Self.RequiredAuths, tx.Voter) {
		return TxResult{Success: false, Ret: "invalid RequiredAuths"}
	}

	err := ve.VoteSystem.CastBallot(tx.VoteId, tx.Voter, votesDb.Severity(tx.Severity), tx.Amount, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     "success",
	}
}

func (tx *TxCastBallot) Type() string {
	return "cast_ballot"
}

func (tx *TxCastBallot) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxCastBallot) ToData() map[string]interface{} {
	return map[string]interface{}{
		"vote_id":  tx.VoteId,
		"voter":    tx.Voter,
		"severity": tx.Severity,
		"amount":   tx.Amount,
	}
}

// Anyone may finalize once the deadline and quorum conditions hold.
type TxFinalizeVote struct {
	Self TxSelf

	VoteId string `json:"vote_id" validate:"required"`
}

func (tx *TxFinalizeVote) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}

	severity, err := ve.VoteSystem.Finalize(tx.VoteId, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     severity.String(),
	}
}

func (tx *TxFinalizeVote) Type() string {
	return "finalize_vote"
}

func (tx *TxFinalizeVote) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxFinalizeVote) ToData() map[string]interface{} {
	return map[string]interface{}{
		"vote_id": tx.VoteId,
	}
}

type TxClaimReward struct {
	Self TxSelf

	VoteId string `json:"vote_id" validate:"required"`
	Voter  string `json:"voter" validate:"required"`
	//reward for majority voters, return for minority voters,
	//refund on cancelled votes
	Mode string `json:"mode" validate:"oneof=reward return refund"`
}

func (tx *TxClaimReward) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}
	if !slices.Contains(tx.Self.RequiredAuths, tx.Voter) {
		return TxResult{Success: false, Ret: "invalid RequiredAuths"}
	}

	var payout int64
	var err error
	switch tx.Mode {
	case "reward":
		payout, err = ve.VoteSystem.ClaimReward(tx.VoteId, tx.Voter)
	case "return":
		payout, err = ve.VoteSystem.ClaimMinorityReturn(tx.VoteId, tx.Voter)
	case "refund":
		payout, err = ve.VoteSystem.ClaimRefund(tx.VoteId, tx.Voter)
	}
	if err != nil {
		return errorToTxResult(err)
	}

	ve.log.Debug("claim settled", tx.VoteId, tx.Voter, tx.Mode, payout)
	return TxResult{
		Success: true,
		Ret:     "success",
	}
}

func (tx *TxClaimReward) Type() string {
	return "claim_reward"
}

func (tx *TxClaimReward) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxClaimReward) ToData() map[string]interface{} {
	return map[string]interface{}{
		"vote_id": tx.VoteId,
		"voter":   tx.Voter,
		"mode":    tx.Mode,
	}
}

type TxCreateUrgentVote struct {
	Self TxSelf

	ReportRef     string `json:"report_ref" validate:"required"`
	ProgramRef    string `json:"program_ref" validate:"required"`
	MinimumQuorum int64  `json:"minimum_quorum" validate:"gte=0"`
}

func (tx *TxCreateUrgentVote) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}
	if len(tx.Self.RequiredAuths) == 0 {
		return TxResult{Success: false, Ret: "missing auths"}
	}

	record, err := ve.VoteSystem.CreateUrgentVote(severityVote.CreateVoteParams{
		ReportRef:     tx.ReportRef,
		ProgramRef:    tx.ProgramRef,
		Creator:       tx.Self.RequiredAuths[0],
		MinimumQuorum: tx.MinimumQuorum,
	}, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     record.Id,
	}
}

func (tx *TxCreateUrgentVote) Type() string {
	return "create_urgent_vote"
}

func (tx *TxCreateUrgentVote) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxCreateUrgentVote) ToData() map[string]interface{} {
	return map[string]interface{}{
		"report_ref":     tx.ReportRef,
		"program_ref":    tx.ProgramRef,
		"minimum_quorum": tx.MinimumQuorum,
	}
}

type TxEmergencyFastTrack struct {
	Self TxSelf

	VoteId string `json:"vote_id" validate:"required"`
}

func (tx *TxEmergencyFastTrack) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}
	//The key is the capability; the auth check only decides whether
	//this caller may wield the executor's key at all.
	if !slices.Contains(tx.Self.RequiredAuths, ve.EmergencyAdmin) {
		return TxResult{Success: false, Ret: severityVote.ErrNotAuthorized.Error()}
	}

	err := ve.VoteSystem.EmergencyFastTrack(ve.EmergencyKey, tx.VoteId, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     "success",
	}
}

func (tx *TxEmergencyFastTrack) Type() string {
	return "emergency_fast_track"
}

func (tx *TxEmergencyFastTrack) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxEmergencyFastTrack) ToData() map[string]interface{} {
	return map[string]interface{}{
		"vote_id": tx.VoteId,
	}
}

// Retires an under-quorum vote past its grace period. Usually crafted
// by the expiry sweeper but any caller may submit it.
type TxCancelExpiredVote struct {
	Self TxSelf

	VoteId string `json:"vote_id" validate:"required"`
}

func (tx *TxCancelExpiredVote) ExecuteTx(ve *VoteExecutor) TxResult {
	if err := txValidator.Struct(tx); err != nil {
		return errorToTxResult(err)
	}

	err := ve.VoteSystem.CancelExpiredVote(tx.VoteId, tx.Self.TimeUnit)
	if err != nil {
		return errorToTxResult(err)
	}

	return TxResult{
		Success: true,
		Ret:     "success",
	}
}

func (tx *TxCancelExpiredVote) Type() string {
	return "cancel_expired_vote"
}

func (tx *TxCancelExpiredVote) TxSelf() TxSelf {
	return tx.Self
}

func (tx *TxCancelExpiredVote) ToData() map[string]interface{} {
	return map[string]interface{}{
		"vote_id": tx.VoteId,
	}
}
