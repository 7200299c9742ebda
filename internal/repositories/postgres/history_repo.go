package postgres

import (
	"context"

	"github.com/careercompass/api/internal/models"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Insert(ctx context.Context, h *models.AnalysisHistory) error
	ListByUser(ctx context.Context, firebaseUID string, limit int) ([]models.AnalysisHistory, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Insert(ctx context.Context, h *models.AnalysisHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historyRepo) ListByUser(ctx context.Context, firebaseUID string, limit int) ([]models.AnalysisHistory, error) {
	var out []models.AnalysisHistory
	err := r.db.WithContext(ctx).
		Where("firebase_uid = ?", firebaseUID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

type AnalysisRunRepository interface {
	Insert(ctx context.Context, run *models.AnalysisRun) error
}

type analysisRunRepo struct {
	db *gorm.DB
}

func NewAnalysisRunRepo(db *gorm.DB) AnalysisRunRepository {
	return &analysisRunRepo{db: db}
}

func (r *analysisRunRepo) Insert(ctx context.Context, run *models.AnalysisRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}
