package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/models"
	"upaheart-backend/internal/payment"
)

// OrderService is the slice of the payment service the order endpoints use.
type OrderService interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error)
	VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) bool
}

type OrdersHandler struct {
	payments OrderService
}

func NewOrdersHandler(payments OrderService) *OrdersHandler {
	return &OrdersHandler{payments: payments}
}

// CreateOrder godoc
// @Summary     Create a payment-provider order
// @Description Recomputes the authoritative total server-side (re-validating any coupon code) and creates the provider order. Client-supplied totals are never trusted.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body models.CreateOrderRequest true "Cart items, receipt and optional coupon code"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /create-order [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	order, err := h.payments.CreateOrder(c.Request.Context(), req)
	if errors.Is(err, payment.ErrNoItems) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no items in cart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create order", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// VerifyPayment godoc
// @Summary     Verify a payment callback
// @Description Checks the provider signature for a completed payment and records the order as paid
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body models.VerifyPaymentRequest true "Provider callback fields"
// @Success     200 {object} models.VerifyPaymentResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /verify-payment [post]
func (h *OrdersHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	if !h.payments.VerifyPayment(c.Request.Context(), req) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payment verification failed"})
		return
	}

	c.JSON(http.StatusOK, models.VerifyPaymentResponse{Verified: true, Status: models.OrderStatusPaid})
}
