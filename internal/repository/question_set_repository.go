package repository

import (
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

type QuestionSetRepository interface {
	Create(set *model.QuestionSet) error
	FindByID(id uint) (*model.QuestionSet, error)
	FindAll() ([]model.QuestionSet, error)
	FindByPostingAndLevel(postingID uint, level string) (*model.QuestionSet, error)
	Update(set *model.QuestionSet) error
	// MarkNotifyByPosting flags every set bound to the posting as announced.
	MarkNotifyByPosting(postingID uint) error
}

type questionSetRepository struct {
	db *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) QuestionSetRepository {
	return &questionSetRepository{db: db}
}

func (r *questionSetRepository) Create(set *model.QuestionSet) error {
	// GORM creates the associated questions alongside the set.
	return r.db.Create(set).Error
}

func (r *questionSetRepository) FindByID(id uint) (*model.QuestionSet, error) {
	var set model.QuestionSet
	if err := r.db.Preload("Questions").First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *questionSetRepository) FindAll() ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	if err := r.db.Preload("Questions").Order("created_at desc").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *questionSetRepository) FindByPostingAndLevel(postingID uint, level string) (*model.QuestionSet, error) {
	var set model.QuestionSet
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("mcq_questions.id ASC")
	}).Where("posting_id = ? AND level = ?", postingID, level).First(&set).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *questionSetRepository) Update(set *model.QuestionSet) error {
	return r.db.Save(set).Error
}

func (r *questionSetRepository) MarkNotifyByPosting(postingID uint) error {
	return r.db.Model(&model.QuestionSet{}).
		Where("posting_id = ?", postingID).
		Update("notify", true).Error
}
