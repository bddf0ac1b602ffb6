package severityVote

import (
	"time"

	votesDb "bounty-node/modules/db/bounty/votes"

	"github.com/moznion/go-optional"
)

type CreateVoteParams struct {
	ReportRef  string
	ProgramRef string
	Creator    string
	//0 falls back to the platform default
	MinimumQuorum int64
}

type VoteStatus struct {
	Status        string
	FinalSeverity optional.Option[votesDb.Severity]
	TotalStaked   int64
	Deadline      uint64
}

type VoterInfo struct {
	Choice  votesDb.Severity
	Stake   int64
	Claimed bool
}

// TimeSource supplies the platform time unit: a coarse counter that
// only moves forward. Not wall-clock.
type TimeSource interface {
	NowUnit() uint64
}

const UNIT_SECONDS = 3

// SystemClock derives the unit from wall time. Deterministic hosts
// (tests, replay) substitute their own TimeSource.
type SystemClock struct{}

func (SystemClock) NowUnit() uint64 {
	return uint64(time.Now().Unix()) / UNIT_SECONDS
}

var _ TimeSource = SystemClock{}

// EmergencyKey is the scarce fast-track credential. It is issued at
// most once per vote system and only ever handled by pointer; the
// noCopy field trips `go vet` if a holder tries to duplicate it.
type EmergencyKey struct {
	holder string
	noCopy noCopy
}

func (k *EmergencyKey) Holder() string {
	return k.holder
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
