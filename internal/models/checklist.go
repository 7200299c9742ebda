package models

import "time"

type ChecklistItemType string

const (
	ItemTypeSkill         ChecklistItemType = "skill"
	ItemTypeCertification ChecklistItemType = "certification"
)

// ChecklistItem is unique on (FirebaseUID, CareerID, ItemType, ItemRefID).
type ChecklistItem struct {
	ID          int64             `gorm:"column:id;primaryKey" json:"id"`
	FirebaseUID string            `gorm:"column:firebase_uid;type:text" json:"-"`
	CareerID    int64             `gorm:"column:career_id" json:"careerId"`
	CareerTitle *string           `gorm:"column:career_title;->" json:"careerTitle,omitempty"`
	ItemType    ChecklistItemType `gorm:"column:item_type;type:text" json:"itemType"`
	ItemRefID   int64             `gorm:"column:item_ref_id" json:"itemRefId"`
	Label       string            `gorm:"column:label;type:text" json:"label"`
	IsRequired  bool              `gorm:"column:is_required" json:"isRequired"`
	Completed   bool              `gorm:"column:completed" json:"completed"`
	CompletedAt *time.Time        `gorm:"column:completed_at;type:timestamptz" json:"completedAt"`
	CreatedAt   time.Time         `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (ChecklistItem) TableName() string { return "user_path_checklist_items" }
