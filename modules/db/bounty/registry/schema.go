package registry

type RegistryRecord struct {
	ReportRef     string `json:"report_ref" bson:"report_ref"`
	VoteId        string `json:"vote_id" bson:"vote_id"`
	CreatedAtUnit uint64 `json:"created_at" bson:"created_at"`
}
