package repository

import (
	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

// StageRepository performs the two multi-step pipeline mutations. Every step
// runs inside one transaction: a failure anywhere rolls the whole operation
// back and is reported as an AtomicityError naming the failed step.
type StageRepository interface {
	// AdvanceStage creates the successor posting, rebinds the carry-forward
	// candidates to it, unbinds the rest, releases the old posting's question
	// sets and deletes the old posting. On success newPosting.ID is set.
	AdvanceStage(oldPostingID uint, newPosting *model.Posting, carryForwardIDs []uint) error
	// Terminate marks the listed candidates hired, every other candidate
	// bound to the posting rejected, unbinds them all, releases question
	// sets and deletes the posting.
	Terminate(postingID uint, selectedIDs []uint) error
}

type stageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) AdvanceStage(oldPostingID uint, newPosting *model.Posting, carryForwardIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newPosting).Error; err != nil {
			return apperror.NewAtomicity("stage advance", "create new posting", err)
		}

		if len(carryForwardIDs) > 0 {
			// A fresh round resets review status: selection is per-round.
			err := tx.Model(&model.Candidate{}).
				Where("id IN ?", carryForwardIDs).
				Updates(map[string]interface{}{
					"job_id":   newPosting.ID,
					"selected": model.SelectedNo,
					"progress": model.ProgressApplied,
				}).Error
			if err != nil {
				return apperror.NewAtomicity("stage advance", "rebind carried candidates", err)
			}
		}

		err := tx.Model(&model.Candidate{}).
			Where("job_id = ? AND id NOT IN ?", oldPostingID, emptySafe(carryForwardIDs)).
			Updates(map[string]interface{}{
				"job_id":   nil,
				"selected": model.SelectedNo,
			}).Error
		if err != nil {
			return apperror.NewAtomicity("stage advance", "unbind remaining candidates", err)
		}

		if err := releaseQuestionSets(tx, oldPostingID); err != nil {
			return apperror.NewAtomicity("stage advance", "release question sets", err)
		}

		// Candidate and question-set updates above must land before the
		// posting row goes away.
		if err := tx.Delete(&model.Posting{}, oldPostingID).Error; err != nil {
			return apperror.NewAtomicity("stage advance", "delete old posting", err)
		}
		return nil
	})
}

func (r *stageRepository) Terminate(postingID uint, selectedIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(selectedIDs) > 0 {
			err := tx.Model(&model.Candidate{}).
				Where("job_id = ? AND id IN ?", postingID, selectedIDs).
				Updates(map[string]interface{}{
					"job_id":   nil,
					"selected": model.SelectedNo,
					"progress": model.ProgressHired,
				}).Error
			if err != nil {
				return apperror.NewAtomicity("recruitment termination", "mark hired candidates", err)
			}
		}

		err := tx.Model(&model.Candidate{}).
			Where("job_id = ?", postingID).
			Updates(map[string]interface{}{
				"job_id":   nil,
				"selected": model.SelectedNo,
				"progress": model.ProgressRejected,
			}).Error
		if err != nil {
			return apperror.NewAtomicity("recruitment termination", "mark rejected candidates", err)
		}

		if err := releaseQuestionSets(tx, postingID); err != nil {
			return apperror.NewAtomicity("recruitment termination", "release question sets", err)
		}

		if err := tx.Delete(&model.Posting{}, postingID).Error; err != nil {
			return apperror.NewAtomicity("recruitment termination", "delete posting", err)
		}
		return nil
	})
}

// releaseQuestionSets unbinds every question set pointing at the posting.
// Question sets are reusable; postings are not.
func releaseQuestionSets(tx *gorm.DB, postingID uint) error {
	return tx.Model(&model.QuestionSet{}).
		Where("posting_id = ?", postingID).
		Updates(map[string]interface{}{
			"posting_id": nil,
			"notify":     false,
		}).Error
}

// emptySafe keeps "id NOT IN ?" well-formed when no candidates are carried.
func emptySafe(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
