package model

import (
	"time"

	"gorm.io/gorm"
)

// Selected flag values.
const (
	SelectedYes = "Yes"
	SelectedNo  = "No"
)

// Progress values. Hired and Rejected are terminal.
const (
	ProgressApplied    = "Applied"
	ProgressInProgress = "In Progress"
	ProgressCompleted  = "Completed"
	ProgressHired      = "Hired"
	ProgressRejected   = "Rejected"
)

// Skill levels used for both candidates and question sets.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Candidate is an applicant. Rows are never hard-deleted: when a posting is
// retired the binding is nulled and the selection flag reset, while session
// results keep their own denormalized ids.
type Candidate struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;index"`
	Phone     string         `json:"phone"`
	ResumeURL string         `json:"resume_url,omitempty"`
	JobID     *uint          `json:"job_id,omitempty" gorm:"index"`
	Selected  string         `json:"selected" gorm:"default:'No'"`      // "Yes", "No"
	Progress  string         `json:"progress" gorm:"default:'Applied'"` // see Progress constants
	Level     string         `json:"level"`                             // "Beginner", "Intermediate", "Advanced"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
