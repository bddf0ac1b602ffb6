package db

import (
	a "bounty-node/modules/aggregate"

	"github.com/chebyrash/promise"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DbInstance struct {
	db   Db
	conf *Config
	opts []*options.DatabaseOptions

	*mongo.Database
}

var _ a.Plugin = &DbInstance{}

func NewDbInstance(db Db, conf *Config, opts ...*options.DatabaseOptions) *DbInstance {
	return &DbInstance{
		db:   db,
		conf: conf,
		opts: opts,
	}
}

// Init implements aggregate.Plugin.
// The config plugin inits first, so the name is loaded by now.
func (d *DbInstance) Init() error {
	d.Database = d.db.Database(d.conf.Get().DbName, d.opts...)
	return nil
}

// Start implements aggregate.Plugin.
func (d *DbInstance) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

// Stop implements aggregate.Plugin.
func (d *DbInstance) Stop() error {
	return nil
}
