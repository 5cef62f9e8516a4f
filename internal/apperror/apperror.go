package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed identifiers or missing required fields.
// Operations failing validation are never retried automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a missing posting, candidate, session or question set.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NotFound marks the error for controller status mapping.
func (e *NotFoundError) NotFound() {}

func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// AlreadyCompletedError is returned when a scored session already exists for
// the (candidate, posting) pair. It is a terminal outcome, not a generic
// conflict: clients show the dedicated "already completed" view for it.
type AlreadyCompletedError struct {
	CandidateID uint
	PostingID   uint
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("candidate %d already completed the assessment for posting %d", e.CandidateID, e.PostingID)
}

// Conflict marks the error for controller status mapping.
func (e *AlreadyCompletedError) Conflict() {}

func NewAlreadyCompleted(candidateID, postingID uint) *AlreadyCompletedError {
	return &AlreadyCompletedError{CandidateID: candidateID, PostingID: postingID}
}

// AtomicityError wraps a failure inside a multi-step transactional operation.
// The whole operation is rolled back; Step identifies where it broke.
type AtomicityError struct {
	Op   string
	Step string
	Err  error
}

func (e *AtomicityError) Error() string {
	return fmt.Sprintf("%s failed at step %q: %v", e.Op, e.Step, e.Err)
}

func (e *AtomicityError) Unwrap() error { return e.Err }

func NewAtomicity(op, step string, err error) *AtomicityError {
	return &AtomicityError{Op: op, Step: step, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsAlreadyCompleted(err error) bool {
	var ac *AlreadyCompletedError
	return errors.As(err, &ac)
}
