package repository

import (
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

type PostingRepository interface {
	Create(posting *model.Posting) error
	FindByID(id uint) (*model.Posting, error)
	FindAll() ([]model.Posting, error)
	Update(posting *model.Posting) error
}

type postingRepository struct {
	db *gorm.DB
}

func NewPostingRepository(db *gorm.DB) PostingRepository {
	return &postingRepository{db: db}
}

func (r *postingRepository) Create(posting *model.Posting) error {
	return r.db.Create(posting).Error
}

func (r *postingRepository) FindByID(id uint) (*model.Posting, error) {
	var posting model.Posting
	if err := r.db.First(&posting, id).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

func (r *postingRepository) FindAll() ([]model.Posting, error) {
	var postings []model.Posting
	if err := r.db.Order("created_at desc").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *postingRepository) Update(posting *model.Posting) error {
	return r.db.Save(posting).Error
}
