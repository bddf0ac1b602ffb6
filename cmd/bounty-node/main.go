package main

import (
	"fmt"
	"os"

	"bounty-node/modules/aggregate"
	"bounty-node/modules/db"
	"bounty-node/modules/db/bounty"
	ledgerDb "bounty-node/modules/db/bounty/ledger"
	"bounty-node/modules/db/bounty/registry"
	votesDb "bounty-node/modules/db/bounty/votes"
	ledgerSystem "bounty-node/modules/ledger-system"
	severityVote "bounty-node/modules/severity-vote"
	txProcessing "bounty-node/modules/tx-processing"
)

func main() {
	dbConf := db.NewDbConfig()

	if mongoUrl := os.Getenv("MONGO_URL"); mongoUrl != "" {
		dbConf.Update(func(dc *db.DbConfig) {
			dc.DbURI = mongoUrl
		})
	}

	dbi := db.New(dbConf)
	bountyDb := bounty.New(dbi, dbConf)
	voteDb := votesDb.New(bountyDb)
	registryDb := registry.New(bountyDb)
	balanceDb := ledgerDb.NewBalances(bountyDb)
	ledgerRecords := ledgerDb.New(bountyDb)

	ledger := ledgerSystem.New(balanceDb, ledgerRecords)
	voteSystem := severityVote.New(voteDb, registryDb, ledger)
	sweeper := severityVote.NewExpirySweeper(voteSystem, voteDb, severityVote.SystemClock{})

	voteExecutor := txProcessing.NewVoteExecutor(voteSystem)
	if admin := os.Getenv("EMERGENCY_ADMIN"); admin != "" {
		key, err := voteSystem.IssueEmergencyKey(admin)
		if err != nil {
			fmt.Println("error is", err)
			os.Exit(1)
		}
		voteExecutor.EmergencyKey = key
		voteExecutor.EmergencyAdmin = admin
	}

	plugins := []aggregate.Plugin{
		dbConf,
		dbi,
		bountyDb,
		voteDb,
		registryDb,
		balanceDb,
		ledgerRecords,
		ledger,
		voteSystem,
		sweeper,
		voteExecutor,
	}

	app := aggregate.New(plugins)
	if err := app.Run(); err != nil {
		fmt.Println("error is", err)
		os.Exit(1)
	}
}
