package handler

import (
	"net/http"

	"pearlify/internal/domain/model"
	"pearlify/internal/usecase"

	"github.com/labstack/echo/v4"
)

// customer facing checkout and tracking
type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	tracker  *usecase.StatusTrackerUsecase
}

func NewOrderHandler(checkout *usecase.CheckoutUsecase, tracker *usecase.StatusTrackerUsecase) *OrderHandler {
	return &OrderHandler{checkout: checkout, tracker: tracker}
}

type CheckoutRequest struct {
	Customer      usecase.CustomerInput `json:"customer"`
	PaymentMethod string                `json:"paymentMethod"`
	Notes         string                `json:"notes"`
	// optional; the session cart is used when absent
	Items []model.CartLine `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	e.POST("/checkout", h.placeOrder, session)
	e.GET("/orders/status", h.status, session)
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	o, err := h.checkout.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		SessionID:     getSessionID(c),
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Cart:          req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) status(c echo.Context) error {
	v, err := h.tracker.GetStatusView(c.Request().Context(), getSessionID(c), c.QueryParam("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
