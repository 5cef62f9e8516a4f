package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionSet is a reusable level-tagged bank of MCQ questions. PostingID is
// the binding to the posting currently using the set; it is nulled (and
// Notify cleared) whenever that posting is retired, because question sets are
// reusable and postings are not.
type QuestionSet struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Level     string         `json:"level" gorm:"not null"` // "Beginner", "Intermediate", "Advanced"
	PostingID *uint          `json:"posting_id,omitempty" gorm:"index"`
	Notify    bool           `json:"notify" gorm:"default:false"` // HR has been told the test can start
	Questions []MCQQuestion  `json:"questions,omitempty" gorm:"foreignKey:QuestionSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MCQQuestion is a single multiple-choice question with four options.
type MCQQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuestionSetID uint           `json:"question_set_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Options returns the four options in display order.
func (q MCQQuestion) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}
