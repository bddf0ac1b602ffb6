package bounty

import (
	"context"

	a "bounty-node/modules/aggregate"
	"bounty-node/modules/db"

	"go.mongodb.org/mongo-driver/bson"
)

type BountyDb struct {
	*db.DbInstance
}

var _ a.Plugin = &BountyDb{}

func New(d db.Db, conf *db.Config) *BountyDb {
	return &BountyDb{db.NewDbInstance(d, conf)}
}

// Wipes every collection. Test tooling only.
func (db *BountyDb) Nuke() error {
	ctx := context.Background()

	colsNames, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return err
	}

	for _, colName := range colsNames {
		_, err := db.Collection(colName).DeleteMany(ctx, bson.M{})
		if err != nil {
			return err
		}
	}

	return nil
}
