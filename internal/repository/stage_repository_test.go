package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStageTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Posting{}, &model.Candidate{}, &model.QuestionSet{}, &model.MCQQuestion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedRound creates a stage-1 posting with three bound candidates and a bound
// question set, mid-review: two candidates picked, one not.
func seedRound(t *testing.T, db *gorm.DB) (*model.Posting, []model.Candidate, *model.QuestionSet) {
	t.Helper()
	posting := &model.Posting{
		Title:               "Backend Engineer",
		Category:            "Engineering",
		ExamKind:            model.ExamKindMCQ,
		TimeAllotted:        45,
		ApplicationDeadline: time.Now().Add(24 * time.Hour),
		Status:              model.PostingStatusActive,
		ExamStatus:          model.ExamStatusStarted,
		Stage:               1,
	}
	if err := db.Create(posting).Error; err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	candidates := []model.Candidate{
		{Name: "An", Email: "an@example.com", JobID: &posting.ID, Selected: model.SelectedYes, Progress: model.ProgressCompleted, Level: model.LevelBeginner},
		{Name: "Binh", Email: "binh@example.com", JobID: &posting.ID, Selected: model.SelectedYes, Progress: model.ProgressCompleted, Level: model.LevelIntermediate},
		{Name: "Chi", Email: "chi@example.com", JobID: &posting.ID, Selected: model.SelectedNo, Progress: model.ProgressCompleted, Level: model.LevelBeginner},
	}
	for i := range candidates {
		if err := db.Create(&candidates[i]).Error; err != nil {
			t.Fatalf("seed candidate: %v", err)
		}
	}

	set := &model.QuestionSet{
		Name:      "SQL basics",
		Level:     model.LevelBeginner,
		PostingID: &posting.ID,
		Notify:    true,
	}
	if err := db.Create(set).Error; err != nil {
		t.Fatalf("seed question set: %v", err)
	}
	return posting, candidates, set
}

func TestAdvanceStageRebindsCarriedCandidates(t *testing.T) {
	db := newStageTestDB(t)
	old, candidates, set := seedRound(t, db)
	repo := NewStageRepository(db)

	next := &model.Posting{
		Title:               old.Title,
		Category:            old.Category,
		ExamKind:            model.ExamKindInterview,
		TimeAllotted:        30,
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
		Status:              model.PostingStatusActive,
		ExamStatus:          model.ExamStatusPending,
		Stage:               2,
	}
	carried := []uint{candidates[0].ID, candidates[1].ID}
	if err := repo.AdvanceStage(old.ID, next, carried); err != nil {
		t.Fatalf("advance stage: %v", err)
	}
	if next.ID == 0 {
		t.Fatal("expected the successor posting id to be assigned")
	}

	// Carried candidates move to the new round with review state reset.
	for _, id := range carried {
		var c model.Candidate
		if err := db.First(&c, id).Error; err != nil {
			t.Fatalf("load candidate %d: %v", id, err)
		}
		if c.JobID == nil || *c.JobID != next.ID {
			t.Fatalf("candidate %d not rebound to posting %d: %+v", id, next.ID, c.JobID)
		}
		if c.Selected != model.SelectedNo {
			t.Fatalf("candidate %d selection not reset, got %q", id, c.Selected)
		}
		if c.Progress != model.ProgressApplied {
			t.Fatalf("candidate %d progress not reset, got %q", id, c.Progress)
		}
	}

	// The candidate left behind is unbound but keeps its row.
	var left model.Candidate
	if err := db.First(&left, candidates[2].ID).Error; err != nil {
		t.Fatalf("load remaining candidate: %v", err)
	}
	if left.JobID != nil {
		t.Fatalf("remaining candidate still bound to posting %d", *left.JobID)
	}
	if left.Selected != model.SelectedNo {
		t.Fatalf("remaining candidate selection not reset, got %q", left.Selected)
	}

	// The question set is released for reuse.
	var stored model.QuestionSet
	if err := db.First(&stored, set.ID).Error; err != nil {
		t.Fatalf("load question set: %v", err)
	}
	if stored.PostingID != nil {
		t.Fatalf("question set still bound to posting %d", *stored.PostingID)
	}
	if stored.Notify {
		t.Fatal("question set notify flag not cleared")
	}

	// The old posting row is gone.
	var gone model.Posting
	if err := db.First(&gone, old.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected old posting deleted, got %v", err)
	}
}

func TestAdvanceStageWithoutCarryUnbindsEveryone(t *testing.T) {
	db := newStageTestDB(t)
	old, candidates, _ := seedRound(t, db)
	repo := NewStageRepository(db)

	next := &model.Posting{
		Title: old.Title, Category: old.Category, ExamKind: model.ExamKindMCQ,
		TimeAllotted: 45, Status: model.PostingStatusActive, Stage: 2,
	}
	if err := repo.AdvanceStage(old.ID, next, nil); err != nil {
		t.Fatalf("advance stage: %v", err)
	}

	for _, seeded := range candidates {
		var c model.Candidate
		if err := db.First(&c, seeded.ID).Error; err != nil {
			t.Fatalf("load candidate %d: %v", seeded.ID, err)
		}
		if c.JobID != nil {
			t.Fatalf("candidate %d still bound to posting %d", seeded.ID, *c.JobID)
		}
	}
}

func TestTerminateMarksHiredAndRejected(t *testing.T) {
	db := newStageTestDB(t)
	posting, candidates, set := seedRound(t, db)
	repo := NewStageRepository(db)

	if err := repo.Terminate(posting.ID, []uint{candidates[0].ID}); err != nil {
		t.Fatalf("terminate: %v", err)
	}

	var hired model.Candidate
	if err := db.First(&hired, candidates[0].ID).Error; err != nil {
		t.Fatalf("load hired candidate: %v", err)
	}
	if hired.Progress != model.ProgressHired {
		t.Fatalf("expected hired progress, got %q", hired.Progress)
	}
	if hired.JobID != nil {
		t.Fatalf("hired candidate still bound to posting %d", *hired.JobID)
	}

	for _, id := range []uint{candidates[1].ID, candidates[2].ID} {
		var c model.Candidate
		if err := db.First(&c, id).Error; err != nil {
			t.Fatalf("load candidate %d: %v", id, err)
		}
		if c.Progress != model.ProgressRejected {
			t.Fatalf("candidate %d expected rejected progress, got %q", id, c.Progress)
		}
		if c.JobID != nil {
			t.Fatalf("candidate %d still bound to posting %d", id, *c.JobID)
		}
		if c.Selected != model.SelectedNo {
			t.Fatalf("candidate %d selection not reset, got %q", id, c.Selected)
		}
	}

	var stored model.QuestionSet
	if err := db.First(&stored, set.ID).Error; err != nil {
		t.Fatalf("load question set: %v", err)
	}
	if stored.PostingID != nil || stored.Notify {
		t.Fatalf("question set not released: posting=%v notify=%v", stored.PostingID, stored.Notify)
	}

	var gone model.Posting
	if err := db.First(&gone, posting.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected posting deleted, got %v", err)
	}
}
