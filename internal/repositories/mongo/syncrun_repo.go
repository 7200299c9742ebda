package mongo

import (
	"context"
	"time"

	"github.com/careercompass/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// syncRunRetention bounds how long sync audit documents live.
const syncRunRetention = 30 * 24 * time.Hour

type SyncRunRepository interface {
	Insert(ctx context.Context, run *models.SyncRun) error
	Recent(ctx context.Context, limit int) ([]models.SyncRun, error)
}

type syncRunRepo struct {
	col *mongo.Collection
}

func NewSyncRunRepo(db *mongo.Database, collection string) SyncRunRepository {
	return &syncRunRepo{col: db.Collection(collection)}
}

func (r *syncRunRepo) Insert(ctx context.Context, run *models.SyncRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}
	if run.ExpiresAt.IsZero() {
		run.ExpiresAt = run.StartedAt.Add(syncRunRetention)
	}
	_, err := r.col.InsertOne(ctx, run)
	return err
}

func (r *syncRunRepo) Recent(ctx context.Context, limit int) ([]models.SyncRun, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.SyncRun, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
