package postgres

import (
	"context"

	"github.com/careercompass/api/internal/models"
	"gorm.io/gorm"
)

type LookupRepository interface {
	RiasecCodes(ctx context.Context) ([]models.RiasecCode, error)
	MbtiTypes(ctx context.Context) ([]models.MbtiType, error)
	Skills(ctx context.Context) ([]models.Skill, error)
	WorldStats(ctx context.Context) ([]models.WorldStat, error)
	Ping(ctx context.Context) error
}

type lookupRepo struct {
	db *gorm.DB
}

func NewLookupRepo(db *gorm.DB) LookupRepository {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) RiasecCodes(ctx context.Context) ([]models.RiasecCode, error) {
	var out []models.RiasecCode
	err := r.db.WithContext(ctx).Order("code").Find(&out).Error
	return out, err
}

func (r *lookupRepo) MbtiTypes(ctx context.Context) ([]models.MbtiType, error) {
	var out []models.MbtiType
	err := r.db.WithContext(ctx).Order("code").Find(&out).Error
	return out, err
}

func (r *lookupRepo) Skills(ctx context.Context) ([]models.Skill, error) {
	var out []models.Skill
	err := r.db.WithContext(ctx).Order("category, name").Find(&out).Error
	return out, err
}

func (r *lookupRepo) WorldStats(ctx context.Context) ([]models.WorldStat, error) {
	var out []models.WorldStat
	err := r.db.WithContext(ctx).Order("sort_order, metric_key").Find(&out).Error
	return out, err
}

func (r *lookupRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
