package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/notify"
	"github.com/ndkhang/hirestage/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MinCarryForward is the smallest candidate subset a stage can advance with.
const MinCarryForward = 2

// StageService drives the recruitment pipeline: advancing a posting to its
// next stage and terminating a recruitment. Both mutations are atomic in the
// repository; candidate notifications happen after commit and never roll
// anything back.
type StageService interface {
	AdvanceStage(oldPostingID uint, req dto.AdvanceStageRequest) (*dto.AdvanceStageResponse, error)
	Terminate(postingID uint, req dto.TerminateRequest) error
}

type stageService struct {
	postingRepo   repository.PostingRepository
	candidateRepo repository.CandidateRepository
	stageRepo     repository.StageRepository
	queue         notify.Queue
}

func NewStageService(
	postingRepo repository.PostingRepository,
	candidateRepo repository.CandidateRepository,
	stageRepo repository.StageRepository,
	queue notify.Queue,
) StageService {
	return &stageService{
		postingRepo:   postingRepo,
		candidateRepo: candidateRepo,
		stageRepo:     stageRepo,
		queue:         queue,
	}
}

func (s *stageService) AdvanceStage(oldPostingID uint, req dto.AdvanceStageRequest) (*dto.AdvanceStageResponse, error) {
	if oldPostingID == 0 {
		return nil, apperror.NewValidation("posting_id", "must be a positive integer")
	}
	if len(req.CarryForwardIDs) < MinCarryForward {
		return nil, apperror.NewValidation("carry_forward_ids",
			fmt.Sprintf("at least %d candidates are required to advance a stage", MinCarryForward))
	}

	panel := model.Panel{
		BeginnerID:     req.Panel.BeginnerID,
		IntermediateID: req.Panel.IntermediateID,
		AdvancedID:     req.Panel.AdvancedID,
	}
	if !panel.Valid() {
		return nil, apperror.NewValidation("panel", "a reviewer cannot be assigned to more than one level")
	}

	oldPosting, err := s.postingRepo.FindByID(oldPostingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("posting", oldPostingID)
		}
		return nil, err
	}

	newPosting := &model.Posting{
		Title:               req.Title,
		Description:         req.Description,
		Category:            req.Category,
		ExamKind:            req.ExamKind,
		MinExperience:       req.MinExperience,
		TimeAllotted:        req.TimeAllotted,
		ApplicationDeadline: req.ApplicationDeadline,
		TestStartDate:       req.TestStartDate,
		Status:              model.PostingStatusActive,
		ExamStatus:          model.ExamStatusPending,
		Stage:               oldPosting.Stage + 1,
		Panel:               panel,
	}

	if err := s.stageRepo.AdvanceStage(oldPostingID, newPosting, req.CarryForwardIDs); err != nil {
		log.Error().Err(err).Uint("oldPostingID", oldPostingID).Msg("AdvanceStage: transition failed, rolled back")
		return nil, err
	}

	log.Info().
		Uint("oldPostingID", oldPostingID).
		Uint("newPostingID", newPosting.ID).
		Int("stage", newPosting.Stage).
		Int("carried", len(req.CarryForwardIDs)).
		Msg("Stage advanced")

	s.notifyCarried(newPosting, req.CarryForwardIDs)

	return &dto.AdvanceStageResponse{NewPostingID: newPosting.ID, Stage: newPosting.Stage}, nil
}

func (s *stageService) Terminate(postingID uint, req dto.TerminateRequest) error {
	if postingID == 0 {
		return apperror.NewValidation("posting_id", "must be a positive integer")
	}

	posting, err := s.postingRepo.FindByID(postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("posting", postingID)
		}
		return err
	}

	// Snapshot the bound candidates before the transaction unbinds them, so
	// outcome notifications still know who was hired and who was not.
	bound, err := s.candidateRepo.FindByPostingID(postingID)
	if err != nil {
		return err
	}

	if err := s.stageRepo.Terminate(postingID, req.SelectedIDs); err != nil {
		log.Error().Err(err).Uint("postingID", postingID).Msg("Terminate: termination failed, rolled back")
		return err
	}

	log.Info().Uint("postingID", postingID).Int("hired", len(req.SelectedIDs)).Msg("Recruitment terminated")

	s.notifyOutcomes(posting, bound, req.SelectedIDs)
	return nil
}

func (s *stageService) notifyCarried(posting *model.Posting, carriedIDs []uint) {
	candidates, err := s.candidateRepo.FindByIDs(carriedIDs)
	if err != nil {
		log.Warn().Err(err).Msg("AdvanceStage: could not load carried candidates for notification")
		return
	}
	ctx := context.Background()
	for _, c := range candidates {
		msg := notify.NewMessage(c.ID, c.Email,
			fmt.Sprintf("You advanced to stage %d: %s", posting.Stage, posting.Title),
			fmt.Sprintf("Hi %s, you have been selected to continue to the next round of %s.", c.Name, posting.Title))
		if err := s.queue.Enqueue(ctx, msg); err != nil {
			log.Warn().Err(err).Uint("candidateID", c.ID).Msg("AdvanceStage: failed to enqueue notification")
		}
	}
}

func (s *stageService) notifyOutcomes(posting *model.Posting, bound []model.Candidate, selectedIDs []uint) {
	hired := make(map[uint]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		hired[id] = true
	}
	ctx := context.Background()
	for _, c := range bound {
		subject := fmt.Sprintf("Update on your application: %s", posting.Title)
		body := fmt.Sprintf("Hi %s, thank you for applying to %s. We will not be moving forward with your application.", c.Name, posting.Title)
		if hired[c.ID] {
			body = fmt.Sprintf("Hi %s, congratulations! You have been selected for %s.", c.Name, posting.Title)
		}
		msg := notify.NewMessage(c.ID, c.Email, subject, body)
		if err := s.queue.Enqueue(ctx, msg); err != nil {
			log.Warn().Err(err).Uint("candidateID", c.ID).Msg("Terminate: failed to enqueue notification")
		}
	}
}
