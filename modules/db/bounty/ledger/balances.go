package ledgerDb

import (
	"context"

	"bounty-node/modules/db"
	"bounty-node/modules/db/bounty"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type balances struct {
	*db.Collection
}

func NewBalances(d *bounty.BountyDb) Balances {
	return &balances{db.NewCollection(d.DbInstance, "balances")}
}

func (b *balances) GetBalance(account string, asset string) int64 {
	findResult := b.FindOne(context.Background(), bson.M{
		"account": account,
		"asset":   asset,
	})
	if findResult.Err() != nil {
		return 0
	}

	record := BalanceRecord{}
	if err := findResult.Decode(&record); err != nil {
		return 0
	}
	return record.Amount
}

func (b *balances) SetBalance(account string, asset string, amount int64) error {
	opts := options.FindOneAndUpdate().SetUpsert(true)
	result := b.FindOneAndUpdate(context.Background(), bson.M{
		"account": account,
		"asset":   asset,
	}, bson.M{
		"$set": bson.M{
			"amount": amount,
		},
	}, opts)

	if result.Err() != nil && result.Err() != mongo.ErrNoDocuments {
		return result.Err()
	}
	return nil
}
