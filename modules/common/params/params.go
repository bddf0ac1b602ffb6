package params

// Base monetary unit is milli-BBD (bounty base denomination).
// All stake, quorum and fee amounts below are expressed in it.

var STAKE_ASSET = "bbd"

// Slash rate applied to the losing side of a severity vote,
// expressed in parts per ten thousand to avoid fractional math.
// 1000 = 10%
var SLASH_RATE_PPTT int64 = 1_000
var PPTT_DENOMINATOR int64 = 10_000

// 10 BBD default quorum for platform-opened disputes
var DEFAULT_MINIMUM_QUORUM int64 = 10_000

// Voting windows in platform time units
var STANDARD_VOTING_WINDOW uint64 = 28_800
var URGENT_VOTING_WINDOW uint64 = 4_800

// Urgent votes demand broader participation before finalizing
var URGENT_QUORUM_MULTIPLIER int64 = 2

// 25 BBD premium for opening an urgent vote
var URGENT_PREMIUM_FEE int64 = 25_000

// How long past the deadline an under-quorum vote may linger
// before it becomes cancellable
var QUORUM_GRACE_PERIOD uint64 = 57_600

var TREASURY_ACCOUNT = "system:treasury"

// Prefix for the per-vote pool accounts holding cast stakes
var VOTE_POOL_PREFIX = "vote:"
