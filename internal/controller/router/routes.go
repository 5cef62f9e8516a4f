package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ndkhang/hirestage/internal/auth"
	"github.com/ndkhang/hirestage/internal/controller"
	candidatectrl "github.com/ndkhang/hirestage/internal/controller/candidate"
	hrctrl "github.com/ndkhang/hirestage/internal/controller/hr"
	"github.com/ndkhang/hirestage/internal/model"
)

// Router wires every controller onto the engine. Candidate session routes are
// open; the HR surface sits behind bearer auth.
type Router struct {
	authCtrl    *controller.AuthController
	sessionCtrl *candidatectrl.SessionController
	hrCtrl      *hrctrl.HRController
	tokens      auth.TokenService
}

func NewRouter(
	authCtrl *controller.AuthController,
	sessionCtrl *candidatectrl.SessionController,
	hrCtrl *hrctrl.HRController,
	tokens auth.TokenService,
) *Router {
	return &Router{
		authCtrl:    authCtrl,
		sessionCtrl: sessionCtrl,
		hrCtrl:      hrCtrl,
		tokens:      tokens,
	}
}

func (r *Router) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		authGroup.POST("/register", r.authCtrl.Register)
		authGroup.POST("/login", r.authCtrl.Login)

		// Candidate session surface. These carry no token: a candidate follows
		// an invitation link and identifies by candidate ID.
		apiV1.GET("/postings/:id/duration", r.sessionCtrl.GetDuration)
		apiV1.GET("/postings/:id/questions", r.sessionCtrl.GetQuestions)
		apiV1.GET("/candidates/:id/level", r.sessionCtrl.GetLevel)
		apiV1.GET("/candidates/:id", r.sessionCtrl.GetCandidate)
		apiV1.POST("/candidates", r.sessionCtrl.Apply)

		sessions := apiV1.Group("/sessions")
		sessions.GET("/completed", r.sessionCtrl.CheckCompleted)
		sessions.POST("", r.sessionCtrl.PersistSession)
		sessions.POST("/:id/feedback", r.sessionCtrl.AttachFeedback)

		hr := apiV1.Group("/hr", auth.RequireRole(r.tokens, model.RoleAdmin, model.RoleHR))
		{
			postings := hr.Group("/postings")
			postings.POST("", r.hrCtrl.CreatePosting)
			postings.GET("", r.hrCtrl.ListPostings)
			postings.GET("/:id", r.hrCtrl.GetPosting)
			postings.PUT("/:id", r.hrCtrl.UpdatePosting)
			postings.POST("/:id/start-exam", r.hrCtrl.StartExam)
			postings.GET("/:id/candidates", r.hrCtrl.ListCandidates)
			postings.POST("/:id/advance", r.hrCtrl.AdvanceStage)
			postings.POST("/:id/terminate", r.hrCtrl.Terminate)
			postings.GET("/:id/results", r.hrCtrl.Results)

			hr.PUT("/candidates/selection", r.hrCtrl.UpdateSelection)

			sets := hr.Group("/question-sets")
			sets.POST("", r.hrCtrl.CreateQuestionSet)
			sets.GET("", r.hrCtrl.ListQuestionSets)
			sets.POST("/:id/assign", r.hrCtrl.AssignQuestionSet)
			sets.POST("/:id/release", r.hrCtrl.ReleaseQuestionSet)

			hr.POST("/question-drafts", r.hrCtrl.DraftQuestions)
		}

		// Panel reviewers get read access to results alongside HR.
		panel := apiV1.Group("/panel", auth.RequireRole(r.tokens, model.RoleAdmin, model.RoleHR, model.RolePanel))
		panel.GET("/postings/:id/results", r.hrCtrl.Results)
	}
}
