package postgres

import (
	"context"
	"errors"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/utils"
	"gorm.io/gorm"
)

type CareerRepository interface {
	// ListProfiles returns every active career with its requirements loaded,
	// in catalog (title) order.
	ListProfiles(ctx context.Context) ([]models.Career, error)
	GetWithRequirements(ctx context.Context, id int64) (*models.Career, error)
}

type careerRepo struct {
	db *gorm.DB
}

func NewCareerRepo(db *gorm.DB) CareerRepository {
	return &careerRepo{db: db}
}

func withRequirements(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SkillRequirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("importance DESC, skill_id ASC")
		}).
		Preload("SkillRequirements.Skill").
		Preload("Riasec", func(db *gorm.DB) *gorm.DB {
			return db.Order("weight DESC")
		}).
		Preload("Mbti", func(db *gorm.DB) *gorm.DB {
			return db.Order("weight DESC")
		}).
		Preload("CertificationRequirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_required DESC, certification_id ASC")
		}).
		Preload("CertificationRequirements.Certification")
}

func (r *careerRepo) ListProfiles(ctx context.Context) ([]models.Career, error) {
	var out []models.Career
	err := withRequirements(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("title ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *careerRepo) GetWithRequirements(ctx context.Context, id int64) (*models.Career, error) {
	var c models.Career
	err := withRequirements(r.db.WithContext(ctx)).
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
