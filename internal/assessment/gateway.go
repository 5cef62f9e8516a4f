package assessment

import (
	"context"
	"errors"
)

// Question is one MCQ question as served for a session. The embedded correct
// answer is display-only; the server rescoring ignores the client's echo.
type Question struct {
	ID            uint     `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Answer is one accumulated response, keyed by the server-assigned question ID.
type Answer struct {
	QuestionID     uint   `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer,omitempty"`
}

// PersistResult is the session handle returned by a persist, used for the
// optional feedback attachment.
type PersistResult struct {
	SessionID      uint `json:"sessionId"`
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	Completed      bool `json:"completed"`
}

// ErrAlreadyCompleted is the distinguishable terminal outcome for a session
// that has already been scored. Callers show the dedicated "already completed"
// view for it, never a generic error.
var ErrAlreadyCompleted = errors.New("assessment session already completed")

// ErrNoAnswerSelected is returned by Advance when the current question has no
// tentative or stored answer.
var ErrNoAnswerSelected = errors.New("no answer selected for the current question")

// Gateway is the boundary the assessment flow drives. The HTTP client in this
// package implements it against the server surface; tests substitute fakes.
type Gateway interface {
	// FetchDuration returns the posting's time allotment in minutes. Any
	// failure here must keep the timer from ever starting.
	FetchDuration(ctx context.Context, postingID uint) (int, error)
	FetchLevel(ctx context.Context, candidateID uint) (string, error)
	// FetchQuestions returns the question set for the posting at a level. An
	// empty slice is a valid, handled state.
	FetchQuestions(ctx context.Context, postingID uint, level string) ([]Question, error)
	CheckCompleted(ctx context.Context, candidateID, postingID uint) (bool, error)
	// PersistSession saves the accumulated answers. Persisting an already
	// completed session returns ErrAlreadyCompleted.
	PersistSession(ctx context.Context, candidateID, postingID uint, answers []Answer, completed bool) (*PersistResult, error)
	AttachFeedback(ctx context.Context, sessionID uint, feedback string) error
}
