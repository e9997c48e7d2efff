package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillbloom/skillbloom/internal/catalog"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/pages"
)

type HomeHandler struct {
	catalog     *catalog.Catalog
	pageService *service.PageService
}

func NewHomeHandler(c *catalog.Catalog, pageService *service.PageService) *HomeHandler {
	return &HomeHandler{catalog: c, pageService: pageService}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Home(h.catalog))
}

func (h *HomeHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageService.Page("about")
	if errors.Is(err, service.ErrPageNotFound) {
		h.NotFoundPage(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to load about page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.About(page))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

func (h *HomeHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
