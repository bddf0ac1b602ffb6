package db

import (
	"context"

	a "bounty-node/modules/aggregate"

	"github.com/chebyrash/promise"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Db interface {
	a.Plugin
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

type db struct {
	conf *Config
	*mongo.Client
}

var _ a.Plugin = &db{}
var _ Db = &db{}

func New(conf *Config) *db {
	return &db{conf: conf}
}

func (db *db) Init() error {
	ctx := context.Background()

	driver, err := mongo.Connect(ctx, options.Client().ApplyURI(db.conf.Get().DbURI))
	if err != nil {
		return err
	}
	db.Client = driver
	return nil
}

func (db *db) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		resolve(nil)
	})
}

func (db *db) Stop() error {
	return db.Disconnect(context.Background())
}
