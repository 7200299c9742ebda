package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobSource struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	SourceKey string    `gorm:"column:source_key;type:text;uniqueIndex" json:"sourceKey"`
	BaseURL   string    `gorm:"column:base_url;type:text" json:"baseUrl"`
	IsActive  bool      `gorm:"column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (JobSource) TableName() string { return "job_sources" }

// Job is a posting as stored; (SourceID, ExternalID) is unique.
type Job struct {
	ID             int64          `gorm:"column:id;primaryKey"`
	SourceID       int64          `gorm:"column:source_id"`
	ExternalID     string         `gorm:"column:external_id;type:text"`
	CareerID       *int64         `gorm:"column:career_id"`
	Title          string         `gorm:"column:title;type:text"`
	Company        string         `gorm:"column:company;type:text"`
	Location       string         `gorm:"column:location;type:text"`
	RemoteType     string         `gorm:"column:remote_type;type:text"`
	EmploymentType *string        `gorm:"column:employment_type;type:text"`
	SalaryMin      *float64       `gorm:"column:salary_min"`
	SalaryMax      *float64       `gorm:"column:salary_max"`
	SalaryCurrency *string        `gorm:"column:salary_currency;type:text"`
	ApplyURL       string         `gorm:"column:apply_url;type:text"`
	SourceURL      *string        `gorm:"column:source_url;type:text"`
	Description    string         `gorm:"column:description;type:text"`
	PostedAt       *time.Time     `gorm:"column:posted_at;type:timestamptz"`
	RawPayload     datatypes.JSON `gorm:"column:raw_payload;type:jsonb"`
	FetchedAt      time.Time      `gorm:"column:fetched_at;type:timestamptz"`
}

func (Job) TableName() string { return "jobs" }

// JobListing is the read shape served to clients.
type JobListing struct {
	ID             int64      `gorm:"column:id" json:"id"`
	ExternalID     string     `gorm:"column:external_id" json:"externalId"`
	CareerID       *int64     `gorm:"column:career_id" json:"careerId"`
	CareerTitle    *string    `gorm:"column:career_title" json:"careerTitle"`
	Title          string     `gorm:"column:title" json:"title"`
	Company        string     `gorm:"column:company" json:"company"`
	Location       string     `gorm:"column:location" json:"location"`
	RemoteType     string     `gorm:"column:remote_type" json:"remoteType"`
	EmploymentType *string    `gorm:"column:employment_type" json:"employmentType"`
	SalaryMin      *float64   `gorm:"column:salary_min" json:"salaryMin"`
	SalaryMax      *float64   `gorm:"column:salary_max" json:"salaryMax"`
	SalaryCurrency *string    `gorm:"column:salary_currency" json:"salaryCurrency"`
	ApplyURL       string     `gorm:"column:apply_url" json:"applyUrl"`
	SourceURL      *string    `gorm:"column:source_url" json:"sourceUrl"`
	LinkedInURL    string     `gorm:"-" json:"linkedinUrl"`
	Description    string     `gorm:"column:description" json:"description"`
	PostedAt       *time.Time `gorm:"column:posted_at" json:"postedAt"`
	FetchedAt      time.Time  `gorm:"column:fetched_at" json:"fetchedAt"`
	Source         string     `gorm:"column:source" json:"source"`
}

type JobFilter struct {
	Query    string
	CareerID *int64
	Limit    int
}
