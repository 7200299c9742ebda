package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SyncTrigger string

const (
	TriggerAPI  SyncTrigger = "api"
	TriggerCron SyncTrigger = "cron"
	TriggerCLI  SyncTrigger = "cli"
)

// SyncRun is the audit document for one job sync, kept in mongo with a TTL.
type SyncRun struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID         string             `bson:"run_id" json:"runId"` // uuid v4
	Trigger       SyncTrigger        `bson:"trigger" json:"trigger"`
	Provider      string             `bson:"provider" json:"provider"`
	Source        string             `bson:"source" json:"source"`
	Search        string             `bson:"search,omitempty" json:"search,omitempty"`
	Limit         int                `bson:"limit" json:"limit"`
	Fetched       int                `bson:"fetched" json:"fetched"`
	Saved         int                `bson:"saved" json:"saved"`
	Matched       int                `bson:"matched" json:"matched"`
	FallbackUsed  bool               `bson:"fallback_used" json:"fallbackUsed"`
	ProviderError string             `bson:"provider_error,omitempty" json:"providerError,omitempty"`

	StartedAt  time.Time `bson:"started_at" json:"startedAt"`
	FinishedAt time.Time `bson:"finished_at" json:"finishedAt"`
	ExpiresAt  time.Time `bson:"expires_at" json:"-"`
}
