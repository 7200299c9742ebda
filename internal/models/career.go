package models

import "gorm.io/datatypes"

type Career struct {
	ID              int64          `gorm:"column:id;primaryKey" json:"id"`
	Slug            string         `gorm:"column:slug;type:text;uniqueIndex" json:"slug"`
	Title           string         `gorm:"column:title;type:text" json:"title"`
	Description     string         `gorm:"column:description;type:text" json:"description"`
	ExperienceLevel string         `gorm:"column:experience_level;type:text" json:"experienceLevel"`
	MedianSalaryUSD *int64         `gorm:"column:median_salary_usd" json:"medianSalaryUsd"`
	Metadata        datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	IsActive        bool           `gorm:"column:is_active" json:"isActive"`

	SkillRequirements         []CareerSkillRequirement         `gorm:"foreignKey:CareerID" json:"-"`
	Riasec                    []CareerRiasec                   `gorm:"foreignKey:CareerID" json:"-"`
	Mbti                      []CareerMbti                     `gorm:"foreignKey:CareerID" json:"-"`
	CertificationRequirements []CareerCertificationRequirement `gorm:"foreignKey:CareerID" json:"-"`
}

func (Career) TableName() string { return "careers" }

type CareerSkillRequirement struct {
	CareerID   int64   `gorm:"column:career_id;primaryKey"`
	SkillID    int64   `gorm:"column:skill_id;primaryKey"`
	Importance float64 `gorm:"column:importance"`
	MinLevel   string  `gorm:"column:min_level;type:text"`

	Skill Skill `gorm:"foreignKey:SkillID"`
}

func (CareerSkillRequirement) TableName() string { return "career_skill_requirements" }

type CareerRiasec struct {
	CareerID   int64   `gorm:"column:career_id;primaryKey"`
	RiasecCode string  `gorm:"column:riasec_code;type:char(1);primaryKey"`
	Weight     float64 `gorm:"column:weight"`
}

func (CareerRiasec) TableName() string { return "career_riasec" }

type CareerMbti struct {
	CareerID int64   `gorm:"column:career_id;primaryKey"`
	MbtiCode string  `gorm:"column:mbti_code;type:char(4);primaryKey"`
	Weight   float64 `gorm:"column:weight"`
}

func (CareerMbti) TableName() string { return "career_mbti" }

type Certification struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text" json:"name"`
	Provider string `gorm:"column:provider;type:text" json:"provider"`
}

func (Certification) TableName() string { return "certifications" }

type CareerCertificationRequirement struct {
	CareerID        int64   `gorm:"column:career_id;primaryKey"`
	CertificationID int64   `gorm:"column:certification_id;primaryKey"`
	IsRequired      bool    `gorm:"column:is_required"`
	Notes           *string `gorm:"column:notes;type:text"`

	Certification Certification `gorm:"foreignKey:CertificationID"`
}

func (CareerCertificationRequirement) TableName() string { return "career_certification_requirements" }
