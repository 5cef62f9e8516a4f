package dto

import "time"

// AdvanceStageRequest retires a posting and spawns its successor, carrying
// forward the listed candidates.
type AdvanceStageRequest struct {
	Title               string    `json:"title" binding:"required"`
	Description         string    `json:"description"`
	Category            string    `json:"category" binding:"required"`
	ExamKind            string    `json:"exam_kind" binding:"required,oneof=MCQ Interview"`
	MinExperience       int       `json:"min_experience" binding:"min=0"`
	TimeAllotted        int       `json:"time_allotted" binding:"required,gt=0"`
	ApplicationDeadline time.Time `json:"application_deadline" binding:"required"`
	TestStartDate       time.Time `json:"test_start_date"`
	Panel               PanelDTO  `json:"panel"`
	CarryForwardIDs     []uint    `json:"carry_forward_ids" binding:"required"`
}

// AdvanceStageResponse returns the successor posting.
type AdvanceStageResponse struct {
	NewPostingID uint `json:"new_posting_id"`
	Stage        int  `json:"stage"`
}

// TerminateRequest closes a posting for good, marking the listed candidates
// as hired and every other bound candidate as rejected.
type TerminateRequest struct {
	SelectedIDs []uint `json:"selected_ids"`
}
