package service

import (
	"errors"

	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionSetService interface {
	CreateQuestionSet(req dto.CreateQuestionSetRequest) (*dto.QuestionSetResponse, error)
	GetAllQuestionSets() ([]dto.QuestionSetResponse, error)
	// AssignToPosting binds a set to a posting; a set serves one posting at
	// a time.
	AssignToPosting(setID, postingID uint) error
	Release(setID uint) error
}

type questionSetService struct {
	questionSetRepo repository.QuestionSetRepository
	postingRepo     repository.PostingRepository
}

func NewQuestionSetService(questionSetRepo repository.QuestionSetRepository, postingRepo repository.PostingRepository) QuestionSetService {
	return &questionSetService{questionSetRepo: questionSetRepo, postingRepo: postingRepo}
}

func (s *questionSetService) CreateQuestionSet(req dto.CreateQuestionSetRequest) (*dto.QuestionSetResponse, error) {
	set := model.QuestionSet{
		Name:  req.Name,
		Level: req.Level,
	}
	for _, q := range req.Questions {
		if !contains(q.Options, q.CorrectAnswer) {
			return nil, apperror.NewValidation("correct_answer", "must be one of the question's options")
		}
		set.Questions = append(set.Questions, model.MCQQuestion{
			Text:          q.Text,
			OptionA:       q.Options[0],
			OptionB:       q.Options[1],
			OptionC:       q.Options[2],
			OptionD:       q.Options[3],
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	if err := s.questionSetRepo.Create(&set); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateQuestionSet: failed")
		return nil, err
	}
	return toQuestionSetResponse(&set), nil
}

func (s *questionSetService) GetAllQuestionSets() ([]dto.QuestionSetResponse, error) {
	sets, err := s.questionSetRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]dto.QuestionSetResponse, 0, len(sets))
	for i := range sets {
		responses = append(responses, *toQuestionSetResponse(&sets[i]))
	}
	return responses, nil
}

func (s *questionSetService) AssignToPosting(setID, postingID uint) error {
	set, err := s.findSet(setID)
	if err != nil {
		return err
	}
	if _, err := s.postingRepo.FindByID(postingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("posting", postingID)
		}
		return err
	}
	if set.PostingID != nil && *set.PostingID != postingID {
		return apperror.NewValidation("posting_id", "question set is already bound to another posting")
	}
	set.PostingID = &postingID
	return s.questionSetRepo.Update(set)
}

func (s *questionSetService) Release(setID uint) error {
	set, err := s.findSet(setID)
	if err != nil {
		return err
	}
	set.PostingID = nil
	set.Notify = false
	return s.questionSetRepo.Update(set)
}

func (s *questionSetService) findSet(id uint) (*model.QuestionSet, error) {
	set, err := s.questionSetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("question set", id)
		}
		return nil, err
	}
	return set, nil
}

func toQuestionSetResponse(set *model.QuestionSet) *dto.QuestionSetResponse {
	return &dto.QuestionSetResponse{
		ID:            set.ID,
		Name:          set.Name,
		Level:         set.Level,
		PostingID:     set.PostingID,
		Notify:        set.Notify,
		QuestionCount: len(set.Questions),
		CreatedAt:     set.CreatedAt,
	}
}

func contains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
