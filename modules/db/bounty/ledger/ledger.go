package ledgerDb

import (
	"context"

	"bounty-node/modules/db"
	"bounty-node/modules/db/bounty"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ledger struct {
	*db.Collection
}

func New(d *bounty.BountyDb) Ledger {
	return &ledger{db.NewCollection(d.DbInstance, "ledger")}
}

func (l *ledger) StoreOps(ops ...LedgerRecord) error {
	for _, op := range ops {
		findUpdateOpts := options.FindOneAndUpdate().SetUpsert(true)
		result := l.FindOneAndUpdate(context.Background(), bson.M{
			"id": op.Id,
		}, bson.M{
			"$set": op,
		}, findUpdateOpts)
		if result.Err() != nil {
			continue
		}
	}
	return nil
}

func (l *ledger) GetOpsForAccount(account string, limit *int64) ([]LedgerRecord, error) {
	opts := options.Find().SetSort(bson.M{"time_unit": 1})
	if limit != nil {
		opts.SetLimit(*limit)
	}
	cursor, err := l.Find(context.Background(), bson.M{
		"$or": bson.A{
			bson.M{"from": account},
			bson.M{"to": account},
		},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	results := make([]LedgerRecord, 0)
	for cursor.Next(context.Background()) {
		record := LedgerRecord{}
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, nil
}
