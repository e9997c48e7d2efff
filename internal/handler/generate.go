package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillbloom/skillbloom/internal/service"
)

type GenerateHandler struct {
	contentService *service.ContentService
}

func NewGenerateHandler(contentService *service.ContentService) *GenerateHandler {
	return &GenerateHandler{contentService: contentService}
}

func (h *GenerateHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	var req service.LessonRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lesson, err := h.contentService.GenerateLesson(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrSkillRequired):
		writeError(w, http.StatusBadRequest, "Skill is required")
		return
	case errors.Is(err, service.ErrInvalidLevel):
		writeError(w, http.StatusBadRequest, "Level must be beginner, intermediate or advanced")
		return
	case err != nil:
		slog.Error("failed to generate lesson", "error", err, "skill", req.Skill)
		writeError(w, http.StatusInternalServerError, "Failed to generate lesson")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lesson": lesson})
}

func (h *GenerateHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req service.QuizRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.contentService.GenerateQuiz(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrSkillRequired), errors.Is(err, service.ErrLessonContentRequired):
		writeError(w, http.StatusBadRequest, "Skill and lesson content are required")
		return
	case err != nil:
		slog.Error("failed to generate quiz", "error", err, "skill", req.Skill)
		writeError(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"quiz": quiz})
}

func (h *GenerateHandler) Path(w http.ResponseWriter, r *http.Request) {
	var req service.PathRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	path, err := h.contentService.GenerateLearningPath(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrSkillRequired):
		writeError(w, http.StatusBadRequest, "Skill is required")
		return
	case err != nil:
		slog.Error("failed to generate learning path", "error", err, "skill", req.Skill)
		writeError(w, http.StatusInternalServerError, "Failed to generate learning path")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"path": path})
}
