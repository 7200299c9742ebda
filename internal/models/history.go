package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type AnalysisHistory struct {
	ID               int64          `gorm:"column:id;primaryKey" json:"id"`
	FirebaseUID      string         `gorm:"column:firebase_uid;type:text" json:"-"`
	MbtiCode         string         `gorm:"column:mbti_code;type:char(4)" json:"mbtiCode"`
	RiasecCodes      pq.StringArray `gorm:"column:riasec_codes;type:text[]" json:"riasecCodes"`
	SelectedSkillIDs pq.Int64Array  `gorm:"column:selected_skill_ids;type:int[]" json:"selectedSkillIds"`
	TopCareerIDs     pq.Int64Array  `gorm:"column:top_career_ids;type:int[]" json:"topCareerIds"`
	TopSnapshot      datatypes.JSON `gorm:"column:top_snapshot;type:jsonb" json:"topSnapshot"`
	CreatedAt        time.Time      `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (AnalysisHistory) TableName() string { return "user_analysis_history" }

// HistorySnapshotEntry is one ranked career frozen into a history row.
type HistorySnapshotEntry struct {
	CareerID  int64              `json:"careerId"`
	Title     string             `json:"title"`
	Score     int                `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// AnalysisRun is the audit trail of every analysis, signed in or not.
type AnalysisRun struct {
	ID            int64          `gorm:"column:id;primaryKey" json:"id"`
	UserID        *string        `gorm:"column:user_id;type:uuid" json:"userId"`
	InputPayload  datatypes.JSON `gorm:"column:input_payload;type:jsonb" json:"inputPayload"`
	OutputPayload datatypes.JSON `gorm:"column:output_payload;type:jsonb" json:"outputPayload"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (AnalysisRun) TableName() string { return "analysis_runs" }
