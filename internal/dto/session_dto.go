package dto

import "time"

// DurationResponse answers the "fetch test duration" contract.
type DurationResponse struct {
	Time int `json:"time"` // minutes
}

// LevelResponse answers the "fetch candidate level" contract.
type LevelResponse struct {
	Level string `json:"level"`
}

// MCQQuestionDTO is a question as served to a candidate session. The correct
// answer is included for post-submission display; scoring never trusts the
// client's echo of it.
type MCQQuestionDTO struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuestionsResponse answers the "fetch question set" contract. An empty list
// is a valid state, not an error.
type QuestionsResponse struct {
	Questions []MCQQuestionDTO `json:"questions"`
}

// CompletionResponse answers the "check completion" contract.
type CompletionResponse struct {
	IsCompleted bool `json:"isCompleted"`
}

// SessionResponseDTO is one answered question inside a persist request.
type SessionResponseDTO struct {
	QuestionID     uint   `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer,omitempty"`
}

// PersistSessionRequest is the "persist session" contract. Completed marks
// the session as finalized; partial saves leave it false and may be
// overwritten by later persists.
type PersistSessionRequest struct {
	CandidateID uint                 `json:"candidateId" binding:"required"`
	PostID      uint                 `json:"postId" binding:"required"`
	Responses   []SessionResponseDTO `json:"responses"`
	Completed   bool                 `json:"completed"`
}

// PersistSessionResponse returns the session handle used for feedback.
type PersistSessionResponse struct {
	SessionID      uint `json:"sessionId"`
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	Completed      bool `json:"completed"`
}

// AttachFeedbackRequest attaches optional free-text feedback post-completion.
type AttachFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// SessionResultDTO is a completed session as listed for HR review.
type SessionResultDTO struct {
	SessionID      uint      `json:"session_id"`
	CandidateID    uint      `json:"candidate_id"`
	PostingID      uint      `json:"posting_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Completed      bool      `json:"completed"`
	Feedback       string    `json:"feedback,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
