package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/notify"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/garden"
	"github.com/skillbloom/skillbloom/internal/ui/pages"
)

type GardenHandler struct {
	gardenService   *service.GardenService
	progressService *service.ProgressService
	renderer        garden.Renderer
	notifier        notify.Notifier
	// fragmentNotifier attaches toasts to HTML fragment responses
	fragmentNotifier notify.Notifier
}

func NewGardenHandler(
	gardenService *service.GardenService,
	progressService *service.ProgressService,
	renderer garden.Renderer,
	notifier notify.Notifier,
	fragmentNotifier notify.Notifier,
) *GardenHandler {
	return &GardenHandler{
		gardenService:    gardenService,
		progressService:  progressService,
		renderer:         renderer,
		notifier:         notifier,
		fragmentNotifier: fragmentNotifier,
	}
}

func (h *GardenHandler) Garden(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	g, err := h.gardenService.Garden(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to load garden", "error", err, "learner_id", learnerID)
		writeError(w, http.StatusInternalServerError, "Failed to load your garden")
		return
	}

	writeJSON(w, http.StatusOK, g)
}

func (h *GardenHandler) GardenPage(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	g, err := h.gardenService.Garden(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to load garden", "error", err, "learner_id", learnerID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Garden(h.renderer, g, r.URL.Query().Get("error")))
}

// GardenView renders the garden as an HTML fragment for in-page swaps.
func (h *GardenHandler) GardenView(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	g, err := h.gardenService.Garden(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to load garden", "error", err, "learner_id", learnerID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, h.renderer.Garden(g))
}

// PlantSkill handles the garden page's add-skill form. HTMX requests get the
// refreshed #garden fragment with an out-of-band toast; plain form posts are
// redirected back to /garden.
func (h *GardenHandler) PlantSkill(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())
	fragment := r.Header.Get("HX-Request") == "true"

	skill, err := h.progressService.AddSkill(r.Context(), learnerID, r.PostFormValue("name"))
	if err != nil {
		msg := err.Error()
		if !isValidationError(err) {
			slog.Error("failed to add skill", "error", err, "learner_id", learnerID)
			msg = "Failed to add skill"
		}
		if fragment {
			w.Header().Set("HX-Reswap", "none")
			w.WriteHeader(http.StatusOK)
			h.fragmentNotifier.Notify(w, r, notify.Error("Could not plant", msg))
			return
		}
		http.Redirect(w, r, "/garden?error="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}

	if !fragment {
		http.Redirect(w, r, "/garden", http.StatusSeeOther)
		return
	}

	g, err := h.gardenService.Garden(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to load garden", "error", err, "learner_id", learnerID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, h.renderer.Garden(g))
	if skill != nil {
		h.fragmentNotifier.Notify(w, r, notify.Success("New seed planted", skill.Name+" was added to your garden."))
	}
}

type skillRequest struct {
	Name string `json:"name"`
}

func (h *GardenHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	var req skillRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skill, err := h.progressService.AddSkill(r.Context(), learnerID, req.Name)
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to add skill", "error", err, "learner_id", learnerID)
		writeError(w, http.StatusInternalServerError, "Failed to add skill")
		return
	}

	// blank names are ignored
	if skill == nil {
		writeJSON(w, http.StatusOK, map[string]any{"skill": nil})
		return
	}

	h.notifier.Notify(w, r, notify.Success("New seed planted", skill.Name+" was added to your garden."))
	writeJSON(w, http.StatusCreated, map[string]any{"skill": skill})
}

func (h *GardenHandler) RenameSkill(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	var req skillRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skill, err := h.progressService.RenameSkill(r.Context(), learnerID, r.PathValue("id"), req.Name)
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, service.ErrSkillNotFound) {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}
	if err != nil {
		slog.Error("failed to rename skill", "error", err, "learner_id", learnerID)
		writeError(w, http.StatusInternalServerError, "Failed to rename skill")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"skill": skill})
}

func (h *GardenHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	g, err := h.gardenService.CompleteGoal(r.Context(), learnerID, r.PathValue("id"))
	if errors.Is(err, service.ErrDailyGoalNotFound) {
		writeError(w, http.StatusNotFound, "Daily goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to complete daily goal", "error", err, "learner_id", learnerID)
		writeError(w, http.StatusInternalServerError, "Failed to complete goal")
		return
	}

	h.notifier.Notify(w, r, notify.Success("Goal complete", "Keep the streak going!"))
	writeJSON(w, http.StatusOK, g)
}
