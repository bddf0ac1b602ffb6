package severityVote

import (
	"bounty-node/lib/logger"
	a "bounty-node/modules/aggregate"
	"bounty-node/modules/common/params"
	votesDb "bounty-node/modules/db/bounty/votes"

	"github.com/chebyrash/promise"
	"github.com/robfig/cron/v3"
)

// ExpirySweeper retires votes that never reached quorum. Without it a
// dead vote would pin its stakes in the pool forever; with it the vote
// flips to cancelled after the grace period and every ballot becomes
// refundable.
type ExpirySweeper struct {
	vs    *VoteSystem
	votes votesDb.Votes
	time  TimeSource

	cron *cron.Cron
	stop chan struct{}
	log  logger.Logger
}

var _ a.Plugin = &ExpirySweeper{}

func NewExpirySweeper(vs *VoteSystem, votes votesDb.Votes, timeSource TimeSource) *ExpirySweeper {
	return &ExpirySweeper{
		vs:    vs,
		votes: votes,
		time:  timeSource,

		cron: cron.New(),
		stop: make(chan struct{}),
		log:  logger.PrefixedLogger{Prefix: "expiry-sweeper"},
	}
}

func (es *ExpirySweeper) Sweep() {
	now := es.time.NowUnit()

	records, err := es.votes.GetExpirable(now, params.QUORUM_GRACE_PERIOD)
	if err != nil {
		es.log.Error("expiry scan failed", err)
		return
	}

	for _, record := range records {
		if err := es.vs.CancelExpiredVote(record.Id, now); err != nil {
			//Lost the race to a finalize or another sweep; nothing to do
			if err == ErrNotCancellable {
				continue
			}
			es.log.Error("cancel failed", record.Id, err)
		}
	}
}

func (es *ExpirySweeper) Init() error {
	return nil
}

func (es *ExpirySweeper) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		_, err := es.cron.AddFunc("@every 10m", func() {
			select {
			case <-es.stop:
				return
			default:
				es.Sweep()
			}
		})
		if err != nil {
			reject(err)
			return
		}

		es.cron.Start()
		resolve(nil)
	})
}

func (es *ExpirySweeper) Stop() error {
	close(es.stop)
	es.cron.Stop()
	return nil
}
