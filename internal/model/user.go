package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles carried in access tokens. Access control is decided server-side from
// the verified role claim; clients only use the token for redirect hints.
const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RolePanel     = "panel"
	RoleCandidate = "candidate"
)

// User is a platform account (HR, panel reviewer, admin, or a candidate's
// login identity).
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null"` // see Role constants
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
