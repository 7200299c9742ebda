package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is a local email/password account. Firebase users never land here.
type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"column:full_name;type:text" json:"fullName"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text" json:"-"`
	Role         UserRole  `gorm:"column:role;type:text" json:"role"`
	IsActive     bool      `gorm:"column:is_active" json:"isActive"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "users" }
