package postgres

import (
	"context"
	"time"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChecklistRepository interface {
	// Bootstrap inserts items that do not exist yet and returns the user's
	// full checklist for the career.
	Bootstrap(ctx context.Context, firebaseUID string, careerID int64, items []models.ChecklistItem) ([]models.ChecklistItem, error)
	List(ctx context.Context, firebaseUID string, careerID *int64) ([]models.ChecklistItem, error)
	SetCompleted(ctx context.Context, firebaseUID string, itemID int64, completed bool) (*models.ChecklistItem, error)
}

// checklistItemConflict keeps existing rows untouched, so re-running a
// bootstrap never resets completion.
var checklistItemConflict = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "firebase_uid"}, {Name: "career_id"}, {Name: "item_type"}, {Name: "item_ref_id"},
	},
	DoNothing: true,
}

type checklistRepo struct {
	db *gorm.DB
}

func NewChecklistRepo(db *gorm.DB) ChecklistRepository {
	return &checklistRepo{db: db}
}

func (r *checklistRepo) Bootstrap(ctx context.Context, firebaseUID string, careerID int64, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	var out []models.ChecklistItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			err := tx.Clauses(checklistItemConflict).Create(&items).Error
			if err != nil {
				return err
			}
		}

		return withCareerTitle(tx).
			Where("i.firebase_uid = ? AND i.career_id = ?", firebaseUID, careerID).
			Order("i.item_type ASC, i.is_required DESC, i.id ASC").
			Find(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *checklistRepo) List(ctx context.Context, firebaseUID string, careerID *int64) ([]models.ChecklistItem, error) {
	tx := withCareerTitle(r.db.WithContext(ctx)).
		Where("i.firebase_uid = ?", firebaseUID)
	if careerID != nil {
		tx = tx.Where("i.career_id = ?", *careerID)
	}

	var out []models.ChecklistItem
	err := tx.Order("i.career_id, i.item_type, i.is_required DESC, i.id").Find(&out).Error
	return out, err
}

func withCareerTitle(db *gorm.DB) *gorm.DB {
	return db.Table("user_path_checklist_items i").
		Select("i.*, c.title AS career_title").
		Joins("JOIN careers c ON c.id = i.career_id")
}

func (r *checklistRepo) SetCompleted(ctx context.Context, firebaseUID string, itemID int64, completed bool) (*models.ChecklistItem, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"completed":    completed,
		"completed_at": nil,
		"updated_at":   now,
	}
	if completed {
		updates["completed_at"] = now
	}

	var item models.ChecklistItem
	res := r.db.WithContext(ctx).
		Model(&item).
		Clauses(clause.Returning{}).
		Where("firebase_uid = ? AND id = ?", firebaseUID, itemID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}
	return &item, nil
}
