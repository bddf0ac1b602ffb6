package registry

import (
	"context"
	"errors"

	"bounty-node/modules/db"
	"bounty-node/modules/db/bounty"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReportAlreadyRegistered = errors.New("report already has a vote")

type voteRegistry struct {
	*db.Collection
}

func New(d *bounty.BountyDb) VoteRegistry {
	return &voteRegistry{db.NewCollection(d.DbInstance, "vote_registry")}
}

func (r *voteRegistry) Init() error {
	err := r.Collection.Init()
	if err != nil {
		return err
	}

	//At most one vote per report, enforced at the storage layer
	_, err = r.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.M{"report_ref": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *voteRegistry) Register(reportRef string, voteId string, createdAt uint64) error {
	_, err := r.InsertOne(context.Background(), RegistryRecord{
		ReportRef:     reportRef,
		VoteId:        voteId,
		CreatedAtUnit: createdAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrReportAlreadyRegistered
	}
	return err
}

func (r *voteRegistry) GetVoteIdForReport(reportRef string) *string {
	findResult := r.FindOne(context.Background(), bson.M{
		"report_ref": reportRef,
	})
	if findResult.Err() != nil {
		return nil
	}

	record := RegistryRecord{}
	if err := findResult.Decode(&record); err != nil {
		return nil
	}
	return &record.VoteId
}

func (r *voteRegistry) HasVoteForReport(reportRef string) bool {
	return r.GetVoteIdForReport(reportRef) != nil
}
