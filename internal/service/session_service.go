package service

import (
	"errors"
	"time"

	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SessionService is the server side of the assessment flow. It is the sole
// authority on whether a session is completed: a completed session can never
// be scored again, while incomplete sessions may be overwritten freely.
type SessionService interface {
	CheckCompleted(candidateID, postingID uint) (bool, error)
	PersistAnswers(req dto.PersistSessionRequest) (*dto.PersistSessionResponse, error)
	AttachFeedback(sessionID uint, feedback string) error
	GetQuestions(postingID uint, level string) ([]dto.MCQQuestionDTO, error)
	ResultsByPosting(postingID uint) ([]dto.SessionResultDTO, error)
}

type sessionService struct {
	sessionRepo     repository.SessionRepository
	candidateRepo   repository.CandidateRepository
	questionSetRepo repository.QuestionSetRepository
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	candidateRepo repository.CandidateRepository,
	questionSetRepo repository.QuestionSetRepository,
) SessionService {
	return &sessionService{
		sessionRepo:     sessionRepo,
		candidateRepo:   candidateRepo,
		questionSetRepo: questionSetRepo,
	}
}

func (s *sessionService) CheckCompleted(candidateID, postingID uint) (bool, error) {
	if candidateID == 0 || postingID == 0 {
		return false, apperror.NewValidation("id", "candidate and posting ids must be positive")
	}
	session, err := s.sessionRepo.FindByCandidateAndPosting(candidateID, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return session.Completed, nil
}

func (s *sessionService) PersistAnswers(req dto.PersistSessionRequest) (*dto.PersistSessionResponse, error) {
	if req.CandidateID == 0 {
		return nil, apperror.NewValidation("candidateId", "must be a positive integer")
	}
	if req.PostID == 0 {
		return nil, apperror.NewValidation("postId", "must be a positive integer")
	}

	candidate, err := s.candidateRepo.FindByID(req.CandidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("candidate", req.CandidateID)
		}
		return nil, err
	}

	session, err := s.sessionRepo.FindByCandidateAndPosting(req.CandidateID, req.PostID)
	switch {
	case err == nil:
		if session.Completed {
			return nil, apperror.NewAlreadyCompleted(req.CandidateID, req.PostID)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = &model.AssessmentSession{
			CandidateID: req.CandidateID,
			PostingID:   req.PostID,
		}
	default:
		return nil, err
	}

	// The stored question bank is the source of truth for correctness. The
	// client's echoed correct answers are display-only and ignored here.
	questionsByID := make(map[uint]model.MCQQuestion)
	totalQuestions := 0
	set, err := s.questionSetRepo.FindByPostingAndLevel(req.PostID, candidate.Level)
	if err == nil {
		totalQuestions = len(set.Questions)
		for _, q := range set.Questions {
			questionsByID[q.ID] = q
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else {
		log.Warn().Uint("postingID", req.PostID).Str("level", candidate.Level).
			Msg("PersistAnswers: no question set bound, storing responses unscored")
	}

	responses := make([]model.SessionResponse, 0, len(req.Responses))
	score := 0
	for _, r := range req.Responses {
		resp := model.SessionResponse{
			SessionID:      session.ID,
			QuestionID:     r.QuestionID,
			QuestionText:   r.Question,
			SelectedAnswer: r.SelectedAnswer,
		}
		if q, ok := questionsByID[r.QuestionID]; ok {
			resp.CorrectAnswer = q.CorrectAnswer
			resp.Correct = r.SelectedAnswer == q.CorrectAnswer
		}
		if resp.Correct {
			score++
		}
		responses = append(responses, resp)
	}
	if totalQuestions == 0 {
		totalQuestions = len(responses)
	}

	session.Responses = responses
	session.Score = score
	session.TotalQuestions = totalQuestions
	session.Completed = req.Completed
	session.SubmittedAt = time.Now()

	if err := s.sessionRepo.Upsert(session); err != nil {
		log.Error().Err(err).Uint("candidateID", req.CandidateID).Uint("postingID", req.PostID).
			Msg("PersistAnswers: failed to upsert session")
		return nil, err
	}

	progress := model.ProgressInProgress
	if req.Completed {
		progress = model.ProgressCompleted
	}
	if err := s.candidateRepo.UpdateProgress(req.CandidateID, progress); err != nil {
		// Progress is advisory display state; the scored session is already
		// durable at this point.
		log.Warn().Err(err).Uint("candidateID", req.CandidateID).
			Msg("PersistAnswers: failed to update candidate progress")
	}

	return &dto.PersistSessionResponse{
		SessionID:      session.ID,
		Score:          session.Score,
		TotalQuestions: session.TotalQuestions,
		Completed:      session.Completed,
	}, nil
}

func (s *sessionService) AttachFeedback(sessionID uint, feedback string) error {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("session", sessionID)
		}
		return err
	}
	// Feedback is part of the post-submission flow; an abandoned or in-flight
	// session has nothing to comment on yet.
	if !session.Completed {
		return apperror.NewValidation("session_id", "feedback can only be attached to a completed session")
	}
	// Overwrite is fine: attaching the same feedback twice is a no-op.
	return s.sessionRepo.UpdateFeedback(sessionID, feedback)
}

func (s *sessionService) GetQuestions(postingID uint, level string) ([]dto.MCQQuestionDTO, error) {
	set, err := s.questionSetRepo.FindByPostingAndLevel(postingID, level)
	if err != nil {
		// No bound set is a valid, handled state: the client shows "no
		// questions" rather than an error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.MCQQuestionDTO{}, nil
		}
		return nil, err
	}

	questions := make([]dto.MCQQuestionDTO, 0, len(set.Questions))
	for _, q := range set.Questions {
		questions = append(questions, dto.MCQQuestionDTO{
			ID:            q.ID,
			Question:      q.Text,
			Options:       q.Options(),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return questions, nil
}

func (s *sessionService) ResultsByPosting(postingID uint) ([]dto.SessionResultDTO, error) {
	sessions, err := s.sessionRepo.FindCompletedByPosting(postingID)
	if err != nil {
		return nil, err
	}
	results := make([]dto.SessionResultDTO, 0, len(sessions))
	for _, sess := range sessions {
		results = append(results, dto.SessionResultDTO{
			SessionID:      sess.ID,
			CandidateID:    sess.CandidateID,
			PostingID:      sess.PostingID,
			Score:          sess.Score,
			TotalQuestions: sess.TotalQuestions,
			Completed:      sess.Completed,
			Feedback:       sess.Feedback,
			SubmittedAt:    sess.SubmittedAt,
		})
	}
	return results, nil
}
