package hr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndkhang/hirestage/internal/controller"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/service"
	"github.com/rs/zerolog/log"
)

// HRController serves the recruiter side: posting lifecycle, candidate
// selection, stage transitions, termination, question banks and results.
type HRController struct {
	postingSvc     service.PostingService
	candidateSvc   service.CandidateService
	stageSvc       service.StageService
	questionSetSvc service.QuestionSetService
	generatorSvc   service.QuestionGeneratorService
	sessionSvc     service.SessionService
}

func NewHRController(
	postingSvc service.PostingService,
	candidateSvc service.CandidateService,
	stageSvc service.StageService,
	questionSetSvc service.QuestionSetService,
	generatorSvc service.QuestionGeneratorService,
	sessionSvc service.SessionService,
) *HRController {
	return &HRController{
		postingSvc:     postingSvc,
		candidateSvc:   candidateSvc,
		stageSvc:       stageSvc,
		questionSetSvc: questionSetSvc,
		generatorSvc:   generatorSvc,
		sessionSvc:     sessionSvc,
	}
}

// CreatePosting godoc
// @Summary Create a new job posting
// @Description Creates a stage-1 posting with its reviewer panel. A reviewer cannot cover more than one level.
// @Tags HR - Postings
// @Accept json
// @Produce json
// @Param posting body dto.CreatePostingRequest true "Posting data"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid posting or panel"
// @Security BearerAuth
// @Router /hr/postings [post]
func (ctrl *HRController) CreatePosting(c *gin.Context) {
	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreatePosting: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	resp, err := ctrl.postingSvc.CreatePosting(req)
	if err != nil {
		controller.WriteError(c, err, "Failed to create posting")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetPosting godoc
// @Summary Get a posting by ID
// @Tags HR - Postings
// @Produce json
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Security BearerAuth
// @Router /hr/postings/{id} [get]
func (ctrl *HRController) GetPosting(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.postingSvc.GetPosting(id)
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve posting")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPostings godoc
// @Summary List all postings
// @Tags HR - Postings
// @Produce json
// @Success 200 {array} dto.PostingResponse
// @Security BearerAuth
// @Router /hr/postings [get]
func (ctrl *HRController) ListPostings(c *gin.Context) {
	postings, err := ctrl.postingSvc.GetAllPostings()
	if err != nil {
		log.Error().Err(err).Msg("ListPostings: service error")
		controller.WriteError(c, err, "Failed to retrieve postings")
		return
	}
	c.JSON(http.StatusOK, postings)
}

// UpdatePosting godoc
// @Summary Update an open posting
// @Description Edits posting fields. Postings cannot be edited after their application deadline.
// @Tags HR - Postings
// @Accept json
// @Produce json
// @Param id path int true "Posting ID"
// @Param posting body dto.UpdatePostingRequest true "Fields to update"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} dto.ErrorResponse "Deadline passed or invalid panel"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Security BearerAuth
// @Router /hr/postings/{id} [put]
func (ctrl *HRController) UpdatePosting(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	resp, err := ctrl.postingSvc.UpdatePosting(id, req)
	if err != nil {
		controller.WriteError(c, err, "Failed to update posting")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartExam godoc
// @Summary Mark a posting's exam as started
// @Description Idempotent. Flags bound question sets so candidates are notified that the test is live.
// @Tags HR - Postings
// @Param id path int true "Posting ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Security BearerAuth
// @Router /hr/postings/{id}/start-exam [post]
func (ctrl *HRController) StartExam(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.postingSvc.StartExam(id); err != nil {
		controller.WriteError(c, err, "Failed to start exam")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCandidates godoc
// @Summary List candidates bound to a posting
// @Tags HR - Candidates
// @Produce json
// @Param id path int true "Posting ID"
// @Success 200 {array} dto.CandidateResponse
// @Security BearerAuth
// @Router /hr/postings/{id}/candidates [get]
func (ctrl *HRController) ListCandidates(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	candidates, err := ctrl.candidateSvc.ListByPosting(id)
	if err != nil {
		log.Error().Err(err).Uint("postingID", id).Msg("ListCandidates: service error")
		controller.WriteError(c, err, "Failed to retrieve candidates")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// UpdateSelection godoc
// @Summary Update the selected flag for a batch of candidates
// @Description Persists HR's shortlist. Selection is the input to stage advancement and termination.
// @Tags HR - Candidates
// @Accept json
// @Produce json
// @Param selection body dto.SelectionUpdateRequest true "Candidate IDs and the flag to set"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Security BearerAuth
// @Router /hr/candidates/selection [put]
func (ctrl *HRController) UpdateSelection(c *gin.Context) {
	var req dto.SelectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	if err := ctrl.candidateSvc.UpdateSelection(req); err != nil {
		controller.WriteError(c, err, "Failed to update selection")
		return
	}
	c.Status(http.StatusNoContent)
}

// AdvanceStage godoc
// @Summary Advance a posting to its next recruitment stage
// @Description Atomically creates the successor posting, carries forward the listed candidates, unbinds the rest, releases question sets and retires the old posting. At least two candidates must be carried forward.
// @Tags HR - Stages
// @Accept json
// @Produce json
// @Param id path int true "Posting ID to retire"
// @Param transition body dto.AdvanceStageRequest true "Successor posting data and carried candidate IDs"
// @Success 200 {object} dto.AdvanceStageResponse
// @Failure 400 {object} dto.ErrorResponse "Fewer than two carried candidates or invalid panel"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Failure 500 {object} dto.ErrorResponse "Transition rolled back (code atomicity_failure)"
// @Security BearerAuth
// @Router /hr/postings/{id}/advance [post]
func (ctrl *HRController) AdvanceStage(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("AdvanceStage: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}

	resp, err := ctrl.stageSvc.AdvanceStage(id, req)
	if err != nil {
		log.Error().Err(err).Uint("postingID", id).Msg("AdvanceStage: service error")
		controller.WriteError(c, err, "Failed to advance recruitment stage")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Terminate godoc
// @Summary Terminate a posting's recruitment
// @Description Atomically marks the listed candidates hired, every other bound candidate rejected, unbinds them all, releases question sets and deletes the posting.
// @Tags HR - Stages
// @Accept json
// @Produce json
// @Param id path int true "Posting ID"
// @Param termination body dto.TerminateRequest true "IDs of candidates to hire"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Failure 500 {object} dto.ErrorResponse "Termination rolled back (code atomicity_failure)"
// @Security BearerAuth
// @Router /hr/postings/{id}/terminate [post]
func (ctrl *HRController) Terminate(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.TerminateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}

	if err := ctrl.stageSvc.Terminate(id, req); err != nil {
		log.Error().Err(err).Uint("postingID", id).Msg("Terminate: service error")
		controller.WriteError(c, err, "Failed to terminate recruitment")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateQuestionSet godoc
// @Summary Create a question set
// @Description Creates a reusable level-tagged MCQ bank. Every question's correct answer must be one of its options.
// @Tags HR - Question Sets
// @Accept json
// @Produce json
// @Param set body dto.CreateQuestionSetRequest true "Question set data"
// @Success 201 {object} dto.QuestionSetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid question shape"
// @Security BearerAuth
// @Router /hr/question-sets [post]
func (ctrl *HRController) CreateQuestionSet(c *gin.Context) {
	var req dto.CreateQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestionSet: failed to bind request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	resp, err := ctrl.questionSetSvc.CreateQuestionSet(req)
	if err != nil {
		controller.WriteError(c, err, "Failed to create question set")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuestionSets godoc
// @Summary List all question sets
// @Tags HR - Question Sets
// @Produce json
// @Success 200 {array} dto.QuestionSetResponse
// @Security BearerAuth
// @Router /hr/question-sets [get]
func (ctrl *HRController) ListQuestionSets(c *gin.Context) {
	sets, err := ctrl.questionSetSvc.GetAllQuestionSets()
	if err != nil {
		controller.WriteError(c, err, "Failed to retrieve question sets")
		return
	}
	c.JSON(http.StatusOK, sets)
}

// AssignQuestionSet godoc
// @Summary Bind a question set to a posting
// @Tags HR - Question Sets
// @Accept json
// @Param id path int true "Question set ID"
// @Param assignment body dto.AssignQuestionSetRequest true "Posting to bind"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Set already bound to another posting"
// @Failure 404 {object} dto.ErrorResponse "Set or posting not found"
// @Security BearerAuth
// @Router /hr/question-sets/{id}/assign [post]
func (ctrl *HRController) AssignQuestionSet(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	if err := ctrl.questionSetSvc.AssignToPosting(id, req.PostingID); err != nil {
		controller.WriteError(c, err, "Failed to assign question set")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReleaseQuestionSet godoc
// @Summary Unbind a question set from its posting
// @Tags HR - Question Sets
// @Param id path int true "Question set ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Set not found"
// @Security BearerAuth
// @Router /hr/question-sets/{id}/release [post]
func (ctrl *HRController) ReleaseQuestionSet(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questionSetSvc.Release(id); err != nil {
		controller.WriteError(c, err, "Failed to release question set")
		return
	}
	c.Status(http.StatusNoContent)
}

// DraftQuestions godoc
// @Summary Draft MCQ questions with AI assistance
// @Description Asks the generator for question proposals. Drafts are returned for HR review, never persisted directly.
// @Tags HR - Question Sets
// @Accept json
// @Produce json
// @Param draft body dto.DraftQuestionsRequest true "Category, level and count"
// @Success 200 {array} dto.DraftQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Generator unavailable or returned malformed drafts"
// @Security BearerAuth
// @Router /hr/question-drafts [post]
func (ctrl *HRController) DraftQuestions(c *gin.Context) {
	var req dto.DraftQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
		return
	}
	drafts, err := ctrl.generatorSvc.DraftQuestions(req)
	if err != nil {
		log.Error().Err(err).Str("category", req.Category).Msg("DraftQuestions: service error")
		controller.WriteError(c, err, "Failed to draft questions")
		return
	}
	c.JSON(http.StatusOK, drafts)
}

// Results godoc
// @Summary List completed session results for a posting
// @Description Returns completed sessions ordered by score, for HR and panel review.
// @Tags HR - Results
// @Produce json
// @Param id path int true "Posting ID"
// @Success 200 {array} dto.SessionResultDTO
// @Security BearerAuth
// @Router /hr/postings/{id}/results [get]
func (ctrl *HRController) Results(c *gin.Context) {
	id, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	results, err := ctrl.sessionSvc.ResultsByPosting(id)
	if err != nil {
		log.Error().Err(err).Uint("postingID", id).Msg("Results: service error")
		controller.WriteError(c, err, "Failed to retrieve results")
		return
	}
	c.JSON(http.StatusOK, results)
}
