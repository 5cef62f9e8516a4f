package repository

import (
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	FindByID(id uint) (*model.AssessmentSession, error)
	FindByCandidateAndPosting(candidateID, postingID uint) (*model.AssessmentSession, error)
	// Upsert replaces the session's responses and fields in one transaction.
	// Repeated upserts of an incomplete session reuse the same row, so a
	// retry can never produce duplicates.
	Upsert(session *model.AssessmentSession) error
	UpdateFeedback(id uint, feedback string) error
	FindCompletedByPosting(postingID uint) ([]model.AssessmentSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) FindByID(id uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	if err := r.db.Preload("Responses").First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByCandidateAndPosting(candidateID, postingID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.Preload("Responses").
		Where("candidate_id = ? AND posting_id = ?", candidateID, postingID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Upsert(session *model.AssessmentSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if session.ID != 0 {
			// Replace prior responses wholesale; the session row is reused.
			if err := tx.Where("session_id = ?", session.ID).Delete(&model.SessionResponse{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(session).Error
	})
}

func (r *sessionRepository) UpdateFeedback(id uint, feedback string) error {
	return r.db.Model(&model.AssessmentSession{}).
		Where("id = ?", id).
		Update("feedback", feedback).Error
}

func (r *sessionRepository) FindCompletedByPosting(postingID uint) ([]model.AssessmentSession, error) {
	var sessions []model.AssessmentSession
	err := r.db.Where("posting_id = ? AND completed = ?", postingID, true).
		Order("score desc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
