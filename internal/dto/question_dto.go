package dto

import "time"

// QuestionInput is one MCQ question inside a question-set create request.
type QuestionInput struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,len=4"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
}

// CreateQuestionSetRequest creates a reusable level-tagged question bank.
type CreateQuestionSetRequest struct {
	Name      string          `json:"name" binding:"required"`
	Level     string          `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// QuestionSetResponse is a question bank as listed for HR.
type QuestionSetResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Level         string    `json:"level"`
	PostingID     *uint     `json:"posting_id,omitempty"`
	Notify        bool      `json:"notify"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssignQuestionSetRequest binds a question set to a posting.
type AssignQuestionSetRequest struct {
	PostingID uint `json:"posting_id" binding:"required"`
}

// DraftQuestionsRequest asks the generator to propose questions for review.
type DraftQuestionsRequest struct {
	Category string `json:"category" binding:"required"`
	Level    string `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
	Count    int    `json:"count" binding:"required,min=1,max=20"`
}

// DraftQuestionDTO is a generator proposal; it is not persisted until HR
// saves it into a question set.
type DraftQuestionDTO struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}
