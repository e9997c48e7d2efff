package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/notify"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/pages"
	"github.com/skillbloom/skillbloom/internal/validation"
)

type OnboardingHandler struct {
	onboardingService *service.OnboardingService
	notifier          notify.Notifier
}

func NewOnboardingHandler(onboardingService *service.OnboardingService, notifier notify.Notifier) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		notifier:          notifier,
	}
}

func (h *OnboardingHandler) Wizard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.onboardingService.Catalog())
}

func (h *OnboardingHandler) OnboardingPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Onboarding(h.onboardingService.Catalog(), model.OnboardingForm{}, ""))
}

// Submit handles the posted onboarding form. The learner lands in the garden,
// or sees the form again with the first failing step's message.
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	minutes, _ := strconv.Atoi(r.PostFormValue("timePerDay"))
	form := model.OnboardingForm{
		Skill:       r.PostFormValue("skill"),
		CustomSkill: r.PostFormValue("customSkill"),
		Goal:        r.PostFormValue("goal"),
		TimePerDay:  minutes,
	}

	_, err := h.onboardingService.Complete(r.Context(), learnerID, form)
	if isValidationError(err) {
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.Onboarding(h.onboardingService.Catalog(), form, err.Error()))
		return
	}
	if err != nil {
		slog.Error("failed to complete onboarding", "error", err, "learner_id", learnerID)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.Onboarding(h.onboardingService.Catalog(), form, "Failed to save your preferences"))
		return
	}

	http.Redirect(w, r, "/garden", http.StatusSeeOther)
}

type checkRequest struct {
	Step string               `json:"step"`
	Form model.OnboardingForm `json:"form"`
}

type checkResponse struct {
	CanProceed bool   `json:"canProceed"`
	Error      string `json:"error,omitempty"`
}

func (h *OnboardingHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.onboardingService.CanProceed(req.Step, req.Form)
	if errors.Is(err, validation.ErrUnknownStep) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeJSON(w, http.StatusOK, checkResponse{CanProceed: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{CanProceed: true})
}

type completeRequest struct {
	Form model.OnboardingForm `json:"form"`
}

func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	var req completeRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.onboardingService.Complete(r.Context(), learnerID, req.Form)
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to complete onboarding", "error", err, "learner_id", learnerID)
		writeError(w, http.StatusInternalServerError, "Failed to save your preferences")
		return
	}

	h.notifier.Notify(w, r, notify.Success("Seed planted", "Your "+prefs.Skill+" garden is ready."))
	writeJSON(w, http.StatusOK, map[string]any{"preferences": prefs})
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrOnboardingSkillRequired) ||
		errors.Is(err, validation.ErrGoalTooShort) ||
		errors.Is(err, validation.ErrInvalidTimePerDay) ||
		errors.Is(err, validation.ErrSkillNameRequired) ||
		errors.Is(err, validation.ErrSkillNameTooLong)
}
