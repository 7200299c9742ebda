package models

import (
	"time"

	"gorm.io/datatypes"
)

type Skill struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text" json:"name"`
	Category string `gorm:"column:category;type:text" json:"category"`
}

func (Skill) TableName() string { return "skills" }

type RiasecCode struct {
	Code        string `gorm:"column:code;type:char(1);primaryKey" json:"code"`
	Name        string `gorm:"column:name;type:text" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (RiasecCode) TableName() string { return "riasec_codes" }

type MbtiType struct {
	Code  string `gorm:"column:code;type:char(4);primaryKey" json:"code"`
	Title string `gorm:"column:title;type:text" json:"title"`
}

func (MbtiType) TableName() string { return "mbti_types" }

type WorldStat struct {
	MetricKey    string         `gorm:"column:metric_key;primaryKey" json:"metricKey"`
	Label        string         `gorm:"column:label;type:text" json:"label"`
	Value        float64        `gorm:"column:value" json:"value"`
	Unit         string         `gorm:"column:unit;type:text" json:"unit"`
	SourceName   string         `gorm:"column:source_name;type:text" json:"sourceName"`
	SourceURL    string         `gorm:"column:source_url;type:text" json:"sourceUrl"`
	SnapshotDate time.Time      `gorm:"column:snapshot_date;type:date" json:"snapshotDate"`
	SortOrder    int            `gorm:"column:sort_order" json:"sortOrder"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (WorldStat) TableName() string { return "world_stats" }

// Lookups is the bundle the assessment form needs.
type Lookups struct {
	RiasecCodes []RiasecCode `json:"riasec"`
	MbtiTypes   []MbtiType   `json:"mbti"`
	Skills      []Skill      `json:"skills"`
}
