package severityVote

import "errors"

// Every violation aborts the whole entry point with one of these.
// The tx layer maps them onto rejected transaction results.
var (
	ErrVoteNotFound = errors.New("vote not found")

	//temporal
	ErrVotingClosed     = errors.New("voting closed")
	ErrNotYetDeadline   = errors.New("deadline not reached")
	ErrAlreadyFinalized = errors.New("already finalized")
	ErrNotFinalized     = errors.New("vote not finalized")
	ErrNotCancellable   = errors.New("vote not cancellable")
	ErrNotCancelled     = errors.New("vote not cancelled")

	//integrity
	ErrAlreadyVoted    = errors.New("already voted")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrZeroStake       = errors.New("zero stake")
	ErrAlreadyClaimed  = errors.New("already claimed")

	//authorization / economic
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNoBallot          = errors.New("no ballot for voter")
	ErrNotMajorityVoter  = errors.New("voter not in winning bucket")
	ErrNotMinorityVoter  = errors.New("voter not in losing bucket")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrPremiumNotPaid    = errors.New("insufficient premium")
	ErrQuorumNotMet      = errors.New("quorum not met")
	ErrKeyAlreadyIssued  = errors.New("emergency key already issued")

	//Defensive assertion. Unreachable under correct accounting.
	ErrPoolUnderflow = errors.New("reward pool underflow")
)
