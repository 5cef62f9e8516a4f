package model

import (
	"time"

	"gorm.io/gorm"
)

// Exam kinds a posting can run.
const (
	ExamKindMCQ       = "MCQ"
	ExamKindInterview = "Interview"
)

// Posting status values.
const (
	PostingStatusActive     = "active"
	PostingStatusTerminated = "terminated"
)

// Exam status values.
const (
	ExamStatusPending = "pending"
	ExamStatusStarted = "started"
)

// Posting is one round of a job opening. A multi-round pipeline is a chain of
// postings with strictly increasing Stage; advancing a stage creates the next
// posting and retires this one.
type Posting struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	Title               string         `json:"title" gorm:"not null"`
	Description         string         `json:"description,omitempty" gorm:"type:text"`
	Category            string         `json:"category" gorm:"not null"`
	ExamKind            string         `json:"exam_kind" gorm:"not null"` // "MCQ", "Interview"
	MinExperience       int            `json:"min_experience"`
	TimeAllotted        int            `json:"time_allotted" gorm:"not null"` // minutes
	ApplicationDeadline time.Time      `json:"application_deadline"`
	TestStartDate       time.Time      `json:"test_start_date"`
	Status              string         `json:"status" gorm:"default:'active'"`      // "active", "terminated"
	ExamStatus          string         `json:"exam_status" gorm:"default:'pending'"` // "pending", "started"
	Stage               int            `json:"stage" gorm:"not null;default:1"`
	Panel               Panel          `json:"panel" gorm:"embedded;embeddedPrefix:panel_"`
	Candidates          []Candidate    `json:"candidates,omitempty" gorm:"foreignKey:JobID"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// Panel is the three-person review assignment for a posting, one reviewer per
// skill level. A fixed record rather than an ordered list so a reviewer can
// never be bound to two levels at once.
type Panel struct {
	BeginnerID     *uint `json:"beginner_id,omitempty"`
	IntermediateID *uint `json:"intermediate_id,omitempty"`
	AdvancedID     *uint `json:"advanced_id,omitempty"`
}

// Reviewers returns the assigned reviewer ids, skipping empty slots.
func (p Panel) Reviewers() []uint {
	var ids []uint
	for _, id := range []*uint{p.BeginnerID, p.IntermediateID, p.AdvancedID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// Valid reports whether no reviewer appears at more than one level.
func (p Panel) Valid() bool {
	seen := make(map[uint]bool)
	for _, id := range p.Reviewers() {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
