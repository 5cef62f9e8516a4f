package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PostingService interface {
	CreatePosting(req dto.CreatePostingRequest) (*dto.PostingResponse, error)
	GetPosting(id uint) (*dto.PostingResponse, error)
	GetAllPostings() ([]dto.PostingResponse, error)
	UpdatePosting(id uint, req dto.UpdatePostingRequest) (*dto.PostingResponse, error)
	// GetDuration serves the session client's duration fetch, in minutes.
	GetDuration(id uint) (int, error)
	// StartExam flips the exam to started and flags bound question sets so
	// HR knows the test is announced.
	StartExam(id uint) error
}

type postingService struct {
	postingRepo     repository.PostingRepository
	questionSetRepo repository.QuestionSetRepository
}

func NewPostingService(postingRepo repository.PostingRepository, questionSetRepo repository.QuestionSetRepository) PostingService {
	return &postingService{postingRepo: postingRepo, questionSetRepo: questionSetRepo}
}

func (s *postingService) CreatePosting(req dto.CreatePostingRequest) (*dto.PostingResponse, error) {
	panel := model.Panel{
		BeginnerID:     req.Panel.BeginnerID,
		IntermediateID: req.Panel.IntermediateID,
		AdvancedID:     req.Panel.AdvancedID,
	}
	if !panel.Valid() {
		return nil, apperror.NewValidation("panel", "a reviewer cannot be assigned to more than one level")
	}

	posting := model.Posting{
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
		Stage:               1,
		Panel:               panel,
	}
	if err := s.postingRepo.Create(&posting); err != nil {
		log.Error().Err(err).Msg("CreatePosting: failed to create posting")
		return nil, err
	}
	return toPostingResponse(&posting)
}

func (s *postingService) GetPosting(id uint) (*dto.PostingResponse, error) {
	posting, err := s.findPosting(id)
	if err != nil {
		return nil, err
	}
	return toPostingResponse(posting)
}

func (s *postingService) GetAllPostings() ([]dto.PostingResponse, error) {
	postings, err := s.postingRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]dto.PostingResponse, 0, len(postings))
	for i := range postings {
		resp, err := toPostingResponse(&postings[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *postingService) UpdatePosting(id uint, req dto.UpdatePostingRequest) (*dto.PostingResponse, error) {
	posting, err := s.findPosting(id)
	if err != nil {
		return nil, err
	}
	if time.Now().After(posting.ApplicationDeadline) {
		return nil, apperror.NewValidation("application_deadline", "posting can no longer be edited after its deadline")
	}

	if req.Title != "" {
		posting.Title = req.Title
	}
	if req.Description != "" {
		posting.Description = req.Description
	}
	if req.Category != "" {
		posting.Category = req.Category
	}
	if req.MinExperience != nil {
		posting.MinExperience = *req.MinExperience
	}
	if req.TimeAllotted != nil {
		posting.TimeAllotted = *req.TimeAllotted
	}
	if !req.ApplicationDeadline.IsZero() {
		posting.ApplicationDeadline = req.ApplicationDeadline
	}
	if !req.TestStartDate.IsZero() {
		posting.TestStartDate = req.TestStartDate
	}
	if req.Panel != nil {
		panel := model.Panel{
			BeginnerID:     req.Panel.BeginnerID,
			IntermediateID: req.Panel.IntermediateID,
			AdvancedID:     req.Panel.AdvancedID,
		}
		if !panel.Valid() {
			return nil, apperror.NewValidation("panel", "a reviewer cannot be assigned to more than one level")
		}
		posting.Panel = panel
	}

	if err := s.postingRepo.Update(posting); err != nil {
		log.Error().Err(err).Uint("postingID", id).Msg("UpdatePosting: failed to save posting")
		return nil, err
	}
	return toPostingResponse(posting)
}

func (s *postingService) GetDuration(id uint) (int, error) {
	posting, err := s.findPosting(id)
	if err != nil {
		return 0, err
	}
	return posting.TimeAllotted, nil
}

func (s *postingService) StartExam(id uint) error {
	posting, err := s.findPosting(id)
	if err != nil {
		return err
	}
	if posting.ExamStatus == model.ExamStatusStarted {
		return nil
	}
	posting.ExamStatus = model.ExamStatusStarted
	if err := s.postingRepo.Update(posting); err != nil {
		return err
	}
	if err := s.questionSetRepo.MarkNotifyByPosting(id); err != nil {
		log.Warn().Err(err).Uint("postingID", id).Msg("StartExam: failed to flag question sets")
	}
	return nil
}

func (s *postingService) findPosting(id uint) (*model.Posting, error) {
	posting, err := s.postingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("posting", id)
		}
		return nil, err
	}
	return posting, nil
}

func toPostingResponse(posting *model.Posting) (*dto.PostingResponse, error) {
	var resp dto.PostingResponse
	if err := copier.Copy(&resp, posting); err != nil {
		return nil, err
	}
	return &resp, nil
}
