package model

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentSession is one candidate's attempt at a posting's exam. At most
// one completed session exists per (candidate, posting) pair. CandidateID and
// PostingID are plain columns, not foreign keys: results outlive the posting
// they were taken for.
type AssessmentSession struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	CandidateID    uint              `json:"candidate_id" gorm:"not null;index:idx_sessions_candidate_posting"`
	PostingID      uint              `json:"posting_id" gorm:"not null;index:idx_sessions_candidate_posting"`
	Responses      []SessionResponse `json:"responses,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Completed      bool              `json:"completed" gorm:"default:false"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Feedback       string            `json:"feedback,omitempty" gorm:"type:text"`
	SubmittedAt    time.Time         `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// SessionResponse is one answered question inside a session. QuestionText and
// CorrectAnswer are denormalized at persist time; Correct is resolved against
// the stored question bank, never trusted from the client.
type SessionResponse struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SessionID      uint           `json:"session_id" gorm:"not null;index"`
	QuestionID     uint           `json:"question_id" gorm:"not null"`
	QuestionText   string         `json:"question" gorm:"type:text;not null"`
	SelectedAnswer string         `json:"selected_answer"`
	CorrectAnswer  string         `json:"correct_answer"`
	Correct        bool           `json:"correct"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
