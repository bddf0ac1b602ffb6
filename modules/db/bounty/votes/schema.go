package votes

// Severity buckets a disputed report can resolve to.
// Bucket order doubles as the finalization tie-break order:
// on an exact stake tie the more severe level wins.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
	SeverityNone
)

const SeverityCount = 5

func (s Severity) Valid() bool {
	return s >= SeverityCritical && s <= SeverityNone
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityNone:
		return "none"
	}
	return "unknown"
}

const (
	StatusActive    = "active"
	StatusFinalized = "finalized"
	StatusCancelled = "cancelled"
)

const (
	KindStandard = "standard"
	KindUrgent   = "urgent"
)

type Ballot struct {
	Choice  Severity `json:"choice" bson:"choice"`
	Stake   int64    `json:"stake" bson:"stake"`
	Claimed bool     `json:"claimed" bson:"claimed"`
}

type VoteRecord struct {
	Id         string `json:"id" bson:"id"`
	ReportRef  string `json:"report_ref" bson:"report_ref"`
	ProgramRef string `json:"program_ref" bson:"program_ref"`
	Creator    string `json:"creator" bson:"creator"`
	Status     string `json:"status" bson:"status"`

	//standard or urgent; urgent carries the premium paid at creation
	Kind        string `json:"kind" bson:"kind"`
	PremiumPaid int64  `json:"premium_paid,omitempty" bson:"premium_paid,omitempty"`

	CreatedAtUnit      uint64 `json:"created_at" bson:"created_at"`
	VotingDeadlineUnit uint64 `json:"voting_deadline" bson:"voting_deadline"`
	MinimumQuorum      int64  `json:"minimum_quorum" bson:"minimum_quorum"`

	//Invariant: sum(SeverityStakes) == TotalStaked
	SeverityStakes [SeverityCount]int64 `json:"severity_stakes" bson:"severity_stakes"`
	TotalStaked    int64                `json:"total_staked" bson:"total_staked"`

	//Balance of the per-vote pool account; credited by casts, drained by claims
	RewardPool int64 `json:"reward_pool" bson:"reward_pool"`

	//Set once by finalization, never cleared
	FinalSeverity *Severity `json:"final_severity,omitempty" bson:"final_severity,omitempty"`

	Ballots map[string]Ballot `json:"ballots" bson:"ballots"`
}
