package dto

import "time"

// PanelDTO assigns one reviewer per skill level.
type PanelDTO struct {
	BeginnerID     *uint `json:"beginner_id"`
	IntermediateID *uint `json:"intermediate_id"`
	AdvancedID     *uint `json:"advanced_id"`
}

// CreatePostingRequest creates a stage-1 posting.
type CreatePostingRequest struct {
	Title               string    `json:"title" binding:"required"`
	Description         string    `json:"description"`
	Category            string    `json:"category" binding:"required"`
	ExamKind            string    `json:"exam_kind" binding:"required,oneof=MCQ Interview"`
	MinExperience       int       `json:"min_experience" binding:"min=0"`
	TimeAllotted        int       `json:"time_allotted" binding:"required,gt=0"`
	ApplicationDeadline time.Time `json:"application_deadline" binding:"required"`
	TestStartDate       time.Time `json:"test_start_date"`
	Panel               PanelDTO  `json:"panel"`
}

// UpdatePostingRequest edits an open posting's fields.
type UpdatePostingRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Category            string    `json:"category"`
	MinExperience       *int      `json:"min_experience"`
	TimeAllotted        *int      `json:"time_allotted"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	TestStartDate       time.Time `json:"test_start_date"`
	Panel               *PanelDTO `json:"panel"`
}

// PostingResponse is a posting as returned to HR and panel views.
type PostingResponse struct {
	ID                  uint      `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Category            string    `json:"category"`
	ExamKind            string    `json:"exam_kind"`
	MinExperience       int       `json:"min_experience"`
	TimeAllotted        int       `json:"time_allotted"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	TestStartDate       time.Time `json:"test_start_date"`
	Status              string    `json:"status"`
	ExamStatus          string    `json:"exam_status"`
	Stage               int       `json:"stage"`
	Panel               PanelDTO  `json:"panel"`
	CreatedAt           time.Time `json:"created_at"`
}

// ApplyRequest creates a candidate bound to a posting.
type ApplyRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	ResumeURL string `json:"resume_url"`
	PostingID uint   `json:"posting_id" binding:"required"`
	Level     string `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
}

// CandidateResponse is a candidate row as exposed over the API.
type CandidateResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	ResumeURL string    `json:"resume_url,omitempty"`
	JobID     *uint     `json:"job_id,omitempty"`
	Selected  string    `json:"selected"`
	Progress  string    `json:"progress"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectionUpdateRequest flips the selected flag for a batch of candidates.
type SelectionUpdateRequest struct {
	CandidateIDs []uint `json:"candidate_ids" binding:"required,min=1"`
	Selected     string `json:"selected" binding:"required,oneof=Yes No"`
}
