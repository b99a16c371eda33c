package handler

import (
	"net/http"

	"pearlify/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	board     *usecase.AdminOrderUsecase
	lifecycle *usecase.LifecycleUsecase
}

func NewAdminOrderHandler(board *usecase.AdminOrderUsecase, lifecycle *usecase.LifecycleUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{board: board, lifecycle: lifecycle}
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (h *AdminOrderHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/orders", h.list)
	admin.GET("/orders/:id/timeline", h.timeline)
	admin.POST("/orders/:id/advance", h.advance)
	admin.POST("/orders/:id/cancel", h.cancel)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.board.List(c.Request().Context(), usecase.AdminOrderListFilter{
		Status: c.QueryParam("status"),
		Time:   c.QueryParam("time"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) timeline(c echo.Context) error {
	out, err := h.board.Timeline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) advance(c echo.Context) error {
	o, err := h.lifecycle.Advance(c.Request().Context(), getActor(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	var req CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	o, err := h.lifecycle.Cancel(c.Request().Context(), getActor(c), c.Param("id"), usecase.CancelOrderInput{
		Reason: req.Reason,
		Notes:  req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
