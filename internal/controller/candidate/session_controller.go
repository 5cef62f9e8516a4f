package candidate

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndkhang/hirestage/internal/controller"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/service"
	"github.com/rs/zerolog/log"
)

// SessionController serves the candidate-facing assessment flow: the duration,
// level and question fetches a session needs to start, the completion check
// that gates re-entry, and the persist/feedback writes.
type SessionController struct {
	sessionSvc   service.SessionService
	postingSvc   service.PostingService
	candidateSvc service.CandidateService
}

func NewSessionController(sessionSvc service.SessionService, postingSvc service.PostingService, candidateSvc service.CandidateService) *SessionController {
	return &SessionController{
		sessionSvc:   sessionSvc,
		postingSvc:   postingSvc,
		candidateSvc: candidateSvc,
	}
}

// GetDuration godoc
// @Summary Get the time allotted for a posting's test
// @Description Returns the test duration in minutes for the given posting.
// @Tags Candidate - Session
// @Produce json
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.DurationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid posting ID format"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Router /postings/{id}/duration [get]
func (ctrl *SessionController) GetDuration(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	minutes, err := ctrl.postingSvc.GetDuration(id)
	if err != nil {
		log.Warn().Err(err).Uint("postingID", id).Msg("GetDuration: service error")
		controller.WriteError(c, err, "Failed to retrieve test duration")
		return
	}
	c.JSON(http.StatusOK, dto.DurationResponse{Time: minutes})
}

// GetLevel godoc
// @Summary Get a candidate's assigned skill level
// @Tags Candidate - Session
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid candidate ID format"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /candidates/{id}/level [get]
func (ctrl *SessionController) GetLevel(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	level, err := ctrl.candidateSvc.GetLevel(id)
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve candidate level")
		return
	}
	c.JSON(http.StatusOK, dto.LevelResponse{Level: level})
}

// GetQuestions godoc
// @Summary Get the question set for a posting at a level
// @Description Returns the MCQ questions bound to the posting for the given level. An empty list means no set is bound yet; it is not an error.
// @Tags Candidate - Session
// @Produce json
// @Param id path int true "Posting ID"
// @Param level query string true "Skill level (Beginner, Intermediate, Advanced)"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid posting ID or level"
// @Router /postings/{id}/questions [get]
func (ctrl *SessionController) GetQuestions(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	level := c.Query("level")
	switch level {
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "level must be Beginner, Intermediate or Advanced", Code: dto.CodeValidation})
		return
	}

	questions, err := ctrl.sessionSvc.GetQuestions(id, level)
	if err != nil {
		log.Error().Err(err).Uint("postingID", id).Str("level", level).Msg("GetQuestions: service error")
		controller.WriteError(c, err, "Failed to retrieve questions")
		return
	}
	c.JSON(http.StatusOK, dto.QuestionsResponse{Questions: questions})
}

// CheckCompleted godoc
// @Summary Check whether a candidate already completed the test for a posting
// @Tags Candidate - Session
// @Produce json
// @Param candidate_id query int true "Candidate ID"
// @Param posting_id query int true "Posting ID"
// @Success 200 {object} dto.CompletionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid candidate or posting ID"
// @Router /sessions/completed [get]
func (ctrl *SessionController) CheckCompleted(c *gin.Context) {
	candidateID, err1 := strconv.ParseUint(c.Query("candidate_id"), 10, 32)
	postingID, err2 := strconv.ParseUint(c.Query("posting_id"), 10, 32)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "candidate_id and posting_id must be positive integers", Code: dto.CodeValidation})
		return
	}

	completed, err := ctrl.sessionSvc.CheckCompleted(uint(candidateID), uint(postingID))
	if err != nil {
		controller.WriteError(c, err, "Failed to check session completion")
		return
	}
	c.JSON(http.StatusOK, dto.CompletionResponse{IsCompleted: completed})
}

// PersistSession godoc
// @Summary Persist a candidate's answers for a posting
// @Description Scores the submitted answers against the stored question bank and saves the session. Once a session is completed, further persists are rejected with code "already_completed".
// @Tags Candidate - Session
// @Accept json
// @Produce json
// @Param session body dto.PersistSessionRequest true "Answers and completion flag"
// @Success 200 {object} dto.PersistSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /sessions [post]
func (ctrl *SessionController) PersistSession(c *gin.Context) {
	var req dto.PersistSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PersistSession: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}

	resp, err := ctrl.sessionSvc.PersistAnswers(req)
	if err != nil {
		log.Warn().Err(err).Uint("candidateID", req.CandidateID).Uint("postingID", req.PostID).
			Msg("PersistSession: service error")
		controller.WriteError(c, err, "Failed to persist session")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AttachFeedback godoc
// @Summary Attach free-text feedback to a session
// @Tags Candidate - Session
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param feedback body dto.AttachFeedbackRequest true "Feedback text"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID or body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/feedback [post]
func (ctrl *SessionController) AttachFeedback(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.AttachFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	if err := ctrl.sessionSvc.AttachFeedback(id, req.Feedback); err != nil {
		controller.WriteError(c, err, "Failed to attach feedback")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCandidate godoc
// @Summary Get a candidate by ID
// @Tags Candidate - Application
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} dto.CandidateResponse
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /candidates/{id} [get]
func (ctrl *SessionController) GetCandidate(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.candidateSvc.GetCandidate(id)
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve candidate")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Apply godoc
// @Summary Apply to a posting
// @Description Creates a candidate bound to the posting. One application per email per posting.
// @Tags Candidate - Application
// @Accept json
// @Produce json
// @Param application body dto.ApplyRequest true "Application data"
// @Success 201 {object} dto.CandidateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid application or closed posting"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Router /candidates [post]
func (ctrl *SessionController) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Apply: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}

	resp, err := ctrl.candidateSvc.Apply(req)
	if err != nil {
		controller.WriteError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
