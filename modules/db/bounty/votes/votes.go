package votes

import (
	"context"

	"bounty-node/modules/db"
	"bounty-node/modules/db/bounty"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type votes struct {
	*db.Collection
}

func New(d *bounty.BountyDb) Votes {
	return &votes{db.NewCollection(d.DbInstance, "votes")}
}

func (v *votes) Init() error {
	err := v.Collection.Init()
	if err != nil {
		return err
	}

	_, err = v.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.M{"id": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (v *votes) StoreVote(record VoteRecord) error {
	opts := options.FindOneAndUpdate().SetUpsert(true)
	result := v.FindOneAndUpdate(context.Background(), bson.M{
		"id": record.Id,
	}, bson.M{
		"$set": record,
	}, opts)

	if result.Err() != nil && result.Err() != mongo.ErrNoDocuments {
		return result.Err()
	}
	return nil
}

func (v *votes) GetVote(id string) (*VoteRecord, error) {
	findResult := v.FindOne(context.Background(), bson.M{
		"id": id,
	})
	if findResult.Err() != nil {
		return nil, findResult.Err()
	}

	record := VoteRecord{}
	err := findResult.Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (v *votes) GetExpirable(nowUnit uint64, gracePeriod uint64) ([]VoteRecord, error) {
	if nowUnit < gracePeriod {
		return nil, nil
	}
	cursor, err := v.Find(context.Background(), bson.M{
		"status": StatusActive,
		"voting_deadline": bson.M{
			"$lte": nowUnit - gracePeriod,
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	results := make([]VoteRecord, 0)
	for cursor.Next(context.Background()) {
		record := VoteRecord{}
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, nil
}
