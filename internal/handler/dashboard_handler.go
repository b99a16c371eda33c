package handler

import (
	"net/http"
	"strings"

	"pearlify/internal/refresh"
	"pearlify/internal/usecase"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves cached analytics; ?refresh=1 recomputes before answering.
type DashboardHandler struct {
	cache *refresh.DashboardCache
}

func NewDashboardHandler(cache *refresh.DashboardCache) *DashboardHandler {
	return &DashboardHandler{cache: cache}
}

func (h *DashboardHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/dashboard", h.report)
}

func (h *DashboardHandler) report(c echo.Context) error {
	w, err := usecase.ParseWindow(c.QueryParam("period"))
	if err != nil {
		return writeError(c, err)
	}

	force := false
	switch strings.ToLower(c.QueryParam("refresh")) {
	case "1", "true", "yes":
		force = true
	}
	return c.JSON(http.StatusOK, h.cache.Get(c.Request().Context(), w, force))
}
