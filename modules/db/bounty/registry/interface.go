package registry

import a "bounty-node/modules/aggregate"

type VoteRegistry interface {
	a.Plugin
	//Fails if the report already has a vote
	Register(reportRef string, voteId string, createdAt uint64) error
	GetVoteIdForReport(reportRef string) *string
	HasVoteForReport(reportRef string) bool
}
