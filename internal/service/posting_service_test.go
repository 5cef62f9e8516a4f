package service

import (
	"testing"
	"time"

	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
)

func createPostingRequest() dto.CreatePostingRequest {
	return dto.CreatePostingRequest{
		Title:               "Backend Engineer",
		Description:         "Go services and storage",
		Category:            "Engineering",
		ExamKind:            model.ExamKindMCQ,
		TimeAllotted:        45,
		ApplicationDeadline: time.Now().Add(7 * 24 * time.Hour),
		Panel: dto.PanelDTO{
			BeginnerID:     uintPtr(10),
			IntermediateID: uintPtr(11),
			AdvancedID:     uintPtr(12),
		},
	}
}

func newPostingFixture() (PostingService, *fakePostingRepo, *fakeQuestionSetRepo) {
	postings := newFakePostingRepo()
	sets := &fakeQuestionSetRepo{}
	return NewPostingService(postings, sets), postings, sets
}

func TestCreatePostingStartsAtStageOne(t *testing.T) {
	svc, _, _ := newPostingFixture()

	resp, err := svc.CreatePosting(createPostingRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Stage != 1 {
		t.Fatalf("expected stage 1, got %d", resp.Stage)
	}
	if resp.Status != model.PostingStatusActive || resp.ExamStatus != model.ExamStatusPending {
		t.Fatalf("unexpected initial statuses: %q/%q", resp.Status, resp.ExamStatus)
	}
}

func TestCreatePostingRejectsDuplicateReviewer(t *testing.T) {
	svc, _, _ := newPostingFixture()

	req := createPostingRequest()
	req.Panel.IntermediateID = req.Panel.BeginnerID
	if _, err := svc.CreatePosting(req); !apperror.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetDuration(t *testing.T) {
	svc, _, _ := newPostingFixture()

	resp, err := svc.CreatePosting(createPostingRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	minutes, err := svc.GetDuration(resp.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if minutes != 45 {
		t.Fatalf("expected 45 minutes, got %d", minutes)
	}
	if _, err := svc.GetDuration(99); !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdatePostingAfterDeadlineRejected(t *testing.T) {
	svc, postings, _ := newPostingFixture()

	stale := openPosting(7)
	stale.ApplicationDeadline = time.Now().Add(-time.Hour)
	if err := postings.Create(stale); err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	if _, err := svc.UpdatePosting(7, dto.UpdatePostingRequest{Title: "Renamed"}); !apperror.IsValidation(err) {
		t.Fatalf("expected ValidationError past deadline, got %v", err)
	}
}

func TestUpdatePostingPartialFields(t *testing.T) {
	svc, _, _ := newPostingFixture()

	created, err := svc.CreatePosting(createPostingRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTime := 60
	updated, err := svc.UpdatePosting(created.ID, dto.UpdatePostingRequest{
		Title:        "Backend Engineer II",
		TimeAllotted: &newTime,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Backend Engineer II" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.TimeAllotted != 60 {
		t.Fatalf("time allotment not updated: %d", updated.TimeAllotted)
	}
	if updated.Category != created.Category {
		t.Fatalf("untouched field changed: %q", updated.Category)
	}
}

func TestStartExamFlagsBoundSets(t *testing.T) {
	svc, postings, sets := newPostingFixture()

	posting := openPosting(2)
	if err := postings.Create(posting); err != nil {
		t.Fatalf("seed posting: %v", err)
	}
	bank := beginnerBank(2)
	if err := sets.Create(bank); err != nil {
		t.Fatalf("seed question set: %v", err)
	}

	if err := svc.StartExam(2); err != nil {
		t.Fatalf("start exam: %v", err)
	}
	stored, err := postings.FindByID(2)
	if err != nil {
		t.Fatalf("find posting: %v", err)
	}
	if stored.ExamStatus != model.ExamStatusStarted {
		t.Fatalf("expected exam started, got %q", stored.ExamStatus)
	}
	flagged, err := sets.FindByID(bank.ID)
	if err != nil {
		t.Fatalf("find set: %v", err)
	}
	if !flagged.Notify {
		t.Fatal("bound question set not flagged")
	}

	// Starting an already started exam is a no-op.
	if err := svc.StartExam(2); err != nil {
		t.Fatalf("repeat start: %v", err)
	}
}
