package routes

import (
	"net/http"

	"github.com/skillbloom/skillbloom/internal/app"
	"github.com/skillbloom/skillbloom/internal/handler"
	"github.com/skillbloom/skillbloom/internal/metrics"
	"github.com/skillbloom/skillbloom/internal/middleware"
	"github.com/skillbloom/skillbloom/internal/notify"
	"github.com/skillbloom/skillbloom/internal/ui/garden"
)

func SetupRoutes(app *app.App) http.Handler {
	toasts := notify.HeaderNotifier{}

	// Handlers
	home := handler.NewHomeHandler(app.Catalog, app.PageService)
	generate := handler.NewGenerateHandler(app.ContentService)
	onboarding := handler.NewOnboardingHandler(app.OnboardingService, toasts)
	gardenHandler := handler.NewGardenHandler(app.GardenService, app.ProgressService, garden.NewTierRenderer(), toasts, notify.OOBNotifier{})
	learn := handler.NewLearnHandler(app.FlowController, app.ProgressService, toasts)

	mux := http.NewServeMux()

	// ============================================================================
	// PAGES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /about", home.AboutPage)
	mux.HandleFunc("GET /onboarding", onboarding.OnboardingPage)
	mux.HandleFunc("POST /onboarding", onboarding.Submit)
	mux.HandleFunc("GET /learn", learn.LearnPage)
	mux.HandleFunc("POST /learn/{action}", learn.Submit)
	mux.HandleFunc("GET /garden", gardenHandler.GardenPage)
	mux.HandleFunc("GET /garden/view", gardenHandler.GardenView)
	mux.HandleFunc("POST /garden/skills", gardenHandler.PlantSkill)

	// ============================================================================
	// CONTENT GENERATION
	// ============================================================================

	mux.HandleFunc("POST /api/generate-lesson", generate.Lesson)
	mux.HandleFunc("POST /api/generate-quiz", generate.Quiz)
	mux.HandleFunc("POST /api/generate-path", generate.Path)

	// ============================================================================
	// ONBOARDING & GARDEN
	// ============================================================================

	mux.HandleFunc("GET /api/onboarding", onboarding.Wizard)
	mux.HandleFunc("POST /api/onboarding/check", onboarding.Check)
	mux.HandleFunc("POST /api/onboarding", onboarding.Complete)

	mux.HandleFunc("GET /api/garden", gardenHandler.Garden)
	mux.HandleFunc("POST /api/garden/skills", gardenHandler.AddSkill)
	mux.HandleFunc("PATCH /api/garden/skills/{id}", gardenHandler.RenameSkill)
	mux.HandleFunc("POST /api/garden/goals/{id}/complete", gardenHandler.CompleteGoal)

	// ============================================================================
	// LEARN FLOW
	// ============================================================================

	mux.HandleFunc("GET /api/learn", learn.State)
	mux.HandleFunc("POST /api/learn/start", learn.Start)
	mux.HandleFunc("POST /api/learn/next", learn.Next)
	mux.HandleFunc("POST /api/learn/prev", learn.Prev)
	mux.HandleFunc("POST /api/learn/exercise", learn.Exercise)
	mux.HandleFunc("POST /api/learn/answer", learn.Answer)
	mux.HandleFunc("POST /api/learn/continue", learn.Continue)
	mux.HandleFunc("POST /api/learn/reset", learn.Reset)

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", home.Healthz)
	if app.Metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.Learner(app.LearnerService), // before logging so requests carry the learner ID
		middleware.CSPNonce,
		middleware.SecurityHeaders,
		middleware.RequestLogging(app.Metrics),
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)
}
