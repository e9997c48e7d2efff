package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/flow"
	"github.com/skillbloom/skillbloom/internal/notify"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/pages"
)

type LearnHandler struct {
	controller      *flow.Controller
	progressService *service.ProgressService
	notifier        notify.Notifier
}

func NewLearnHandler(controller *flow.Controller, progressService *service.ProgressService, notifier notify.Notifier) *LearnHandler {
	return &LearnHandler{
		controller:      controller,
		progressService: progressService,
		notifier:        notifier,
	}
}

// State returns the session. Before a lesson starts, the skill is prefilled
// from ?skill= or from the learner's preferences.
func (h *LearnHandler) State(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())
	state := h.controller.State(learnerID)

	if state.Stage == flow.StageSelect {
		if skill := strings.TrimSpace(r.URL.Query().Get("skill")); skill != "" {
			state.Skill = skill
		} else if state.Skill == "" {
			prefs, err := h.progressService.Preferences(r.Context(), learnerID)
			if err == nil {
				state.Skill = prefs.SkillName()
			}
		}
	}

	writeJSON(w, http.StatusOK, state)
}

// LearnPage renders the session. In skill selection the input is prefilled
// the same way as State; ?error= carries a message from a rejected action.
func (h *LearnHandler) LearnPage(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())
	state := h.controller.State(learnerID)

	if state.Stage == flow.StageSelect {
		if skill := strings.TrimSpace(r.URL.Query().Get("skill")); skill != "" {
			state.Skill = skill
		} else if state.Skill == "" {
			prefs, err := h.progressService.Preferences(r.Context(), learnerID)
			if err == nil {
				state.Skill = prefs.SkillName()
			}
		}
	}

	ui.Render(w, r, pages.Learn(state, r.URL.Query().Get("error")))
}

// Submit runs one action posted from the learn page and redirects back to it.
func (h *LearnHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	learnerID := ctxkeys.LearnerID(ctx)

	var err error
	switch r.PathValue("action") {
	case "start":
		_, err = h.controller.Start(ctx, learnerID, r.PostFormValue("skill"))
	case "next":
		_, err = h.controller.Next(ctx, learnerID)
	case "prev":
		_, err = h.controller.Prev(learnerID)
	case "exercise":
		_, err = h.controller.RecordExercise(learnerID, r.PostFormValue("answer"))
	case "answer":
		index, convErr := strconv.Atoi(r.PostFormValue("index"))
		if convErr != nil {
			err = flow.ErrInvalidAnswer
			break
		}
		_, err = h.controller.Answer(learnerID, index)
	case "continue":
		_, err = h.controller.Continue(ctx, learnerID)
	case "reset":
		h.controller.Reset(learnerID)
	default:
		http.NotFound(w, r)
		return
	}

	target := "/learn"
	if err != nil {
		msg := err.Error()
		if h.status(err) == http.StatusInternalServerError {
			slog.Error("learn flow failed", "error", err, "learner_id", learnerID, "action", r.PathValue("action"))
			msg = "Something went wrong, please try again"
		}
		target += "?error=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type startRequest struct {
	Skill string `json:"skill"`
}

func (h *LearnHandler) Start(w http.ResponseWriter, r *http.Request) {
	learnerID := ctxkeys.LearnerID(r.Context())

	var req startRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.controller.Start(r.Context(), learnerID, req.Skill)
	if err == nil && state.Error != "" {
		h.notifier.Notify(w, r, notify.Error("Lesson unavailable", state.Error))
	}
	h.respond(w, r, state, err)
}

func (h *LearnHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Next(r.Context(), ctxkeys.LearnerID(r.Context()))
	h.respond(w, r, state, err)
}

func (h *LearnHandler) Prev(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Prev(ctxkeys.LearnerID(r.Context()))
	h.respond(w, r, state, err)
}

type exerciseRequest struct {
	Answer string `json:"answer"`
}

func (h *LearnHandler) Exercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.controller.RecordExercise(ctxkeys.LearnerID(r.Context()), req.Answer)
	h.respond(w, r, state, err)
}

type answerRequest struct {
	Index *int `json:"index"`
}

func (h *LearnHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	err := decodeJSON(w, r, &req)
	if err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "Answer index is required")
		return
	}

	state, err := h.controller.Answer(ctxkeys.LearnerID(r.Context()), *req.Index)
	h.respond(w, r, state, err)
}

func (h *LearnHandler) Continue(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Continue(r.Context(), ctxkeys.LearnerID(r.Context()))
	if err == nil && state.Stage == flow.StageComplete {
		h.notifier.Notify(w, r, notify.Success("Lesson complete!", "Your "+state.Skill+" plant grew a little."))
	}
	h.respond(w, r, state, err)
}

func (h *LearnHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state := h.controller.Reset(ctxkeys.LearnerID(r.Context()))
	writeJSON(w, http.StatusOK, state)
}

type learnErrorResponse struct {
	Error string     `json:"error"`
	State flow.State `json:"state"`
}

func (h *LearnHandler) respond(w http.ResponseWriter, r *http.Request, state flow.State, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, state)
		return
	}

	status := h.status(err)
	if status == http.StatusInternalServerError {
		slog.Error("learn flow failed", "error", err, "learner_id", ctxkeys.LearnerID(r.Context()), "path", r.URL.Path)
		writeJSON(w, status, learnErrorResponse{Error: "Something went wrong, please try again", State: state})
		return
	}

	writeJSON(w, status, learnErrorResponse{Error: err.Error(), State: state})
}

// status maps a flow error to its HTTP status.
func (h *LearnHandler) status(err error) int {
	switch {
	case errors.Is(err, service.ErrSkillRequired),
		errors.Is(err, flow.ErrNoAnswer),
		errors.Is(err, flow.ErrInvalidAnswer):
		return http.StatusBadRequest
	case errors.Is(err, flow.ErrBusy), errors.Is(err, flow.ErrWrongStage):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
