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

type CandidateService interface {
	Apply(req dto.ApplyRequest) (*dto.CandidateResponse, error)
	GetCandidate(id uint) (*dto.CandidateResponse, error)
	// GetLevel serves the session client's level fetch.
	GetLevel(id uint) (string, error)
	ListByPosting(postingID uint) ([]dto.CandidateResponse, error)
	// UpdateSelection is the durable side of the HR selection ledger.
	UpdateSelection(req dto.SelectionUpdateRequest) error
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
	postingRepo   repository.PostingRepository
}

func NewCandidateService(candidateRepo repository.CandidateRepository, postingRepo repository.PostingRepository) CandidateService {
	return &candidateService{candidateRepo: candidateRepo, postingRepo: postingRepo}
}

func (s *candidateService) Apply(req dto.ApplyRequest) (*dto.CandidateResponse, error) {
	posting, err := s.postingRepo.FindByID(req.PostingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("posting", req.PostingID)
		}
		return nil, err
	}
	if posting.Status != model.PostingStatusActive {
		return nil, apperror.NewValidation("posting_id", "posting is not accepting applications")
	}
	if time.Now().After(posting.ApplicationDeadline) {
		return nil, apperror.NewValidation("posting_id", "application deadline has passed")
	}

	// One application per email per posting.
	if _, err := s.candidateRepo.FindByEmailAndPosting(req.Email, req.PostingID); err == nil {
		return nil, apperror.NewValidation("email", "an application with this email already exists for the posting")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}
	candidate := model.Candidate{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		ResumeURL: req.ResumeURL,
		JobID:     &req.PostingID,
		Selected:  model.SelectedNo,
		Progress:  model.ProgressApplied,
		Level:     level,
	}
	if err := s.candidateRepo.Create(&candidate); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Apply: failed to create candidate")
		return nil, err
	}
	return toCandidateResponse(&candidate)
}

func (s *candidateService) GetCandidate(id uint) (*dto.CandidateResponse, error) {
	candidate, err := s.findCandidate(id)
	if err != nil {
		return nil, err
	}
	return toCandidateResponse(candidate)
}

func (s *candidateService) GetLevel(id uint) (string, error) {
	candidate, err := s.findCandidate(id)
	if err != nil {
		return "", err
	}
	return candidate.Level, nil
}

func (s *candidateService) ListByPosting(postingID uint) ([]dto.CandidateResponse, error) {
	candidates, err := s.candidateRepo.FindByPostingID(postingID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		resp, err := toCandidateResponse(&candidates[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *candidateService) UpdateSelection(req dto.SelectionUpdateRequest) error {
	if err := s.candidateRepo.UpdateSelection(req.CandidateIDs, req.Selected); err != nil {
		log.Error().Err(err).Ints("candidateIDs", toInts(req.CandidateIDs)).Msg("UpdateSelection: failed")
		return err
	}
	return nil
}

func (s *candidateService) findCandidate(id uint) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("candidate", id)
		}
		return nil, err
	}
	return candidate, nil
}

func toCandidateResponse(candidate *model.Candidate) (*dto.CandidateResponse, error) {
	var resp dto.CandidateResponse
	if err := copier.Copy(&resp, candidate); err != nil {
		return nil, err
	}
	return &resp, nil
}

func toInts(ids []uint) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
