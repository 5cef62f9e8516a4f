package repository

import (
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository interface {
	Create(candidate *model.Candidate) error
	FindByID(id uint) (*model.Candidate, error)
	FindByIDs(ids []uint) ([]model.Candidate, error)
	FindByPostingID(postingID uint) ([]model.Candidate, error)
	FindByEmailAndPosting(email string, postingID uint) (*model.Candidate, error)
	UpdateSelection(candidateIDs []uint, selected string) error
	UpdateProgress(candidateID uint, progress string) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *candidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.First(&candidate, id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByIDs(ids []uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if len(ids) == 0 {
		return candidates, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepository) FindByPostingID(postingID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.Where("job_id = ?", postingID).Order("created_at asc").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepository) FindByEmailAndPosting(email string, postingID uint) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.Where("email = ? AND job_id = ?", email, postingID).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) UpdateSelection(candidateIDs []uint, selected string) error {
	return r.db.Model(&model.Candidate{}).
		Where("id IN ?", candidateIDs).
		Update("selected", selected).Error
}

func (r *candidateRepository) UpdateProgress(candidateID uint, progress string) error {
	return r.db.Model(&model.Candidate{}).
		Where("id = ?", candidateID).
		Update("progress", progress).Error
}
