package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/checkout"
	"upaheart-backend/internal/middleware"
	"upaheart-backend/internal/models"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

// checkoutError maps service errors to responses. Collaborator failures stay
// generic and retryable; everything else is a local validation message.
func checkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrMissingFiles),
		errors.Is(err, checkout.ErrNoOrder):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, checkout.ErrInvalidCoupon):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid coupon code"})
	case errors.Is(err, checkout.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payment verification failed"})
	case errors.Is(err, checkout.ErrUploadFailed):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload images. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "checkout error", Message: err.Error()})
	}
}

// GetCheckout godoc
// @Summary     Current checkout state
// @Description Returns the checkout step and the advisory totals for the payment view
// @Tags        checkout
// @Produce     json
// @Success     200 {object} models.CheckoutResponse
// @Router      /checkout [get]
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	view, err := h.checkout.View(c.Request.Context(), middleware.CartID(c))
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitShipping godoc
// @Summary     Submit shipping details
// @Description Validates the contact/address fields and advances to Upload when any cart line is customizable, otherwise straight to Payment
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body models.ShippingDetails true "Shipping details"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /checkout/shipping [post]
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	var details models.ShippingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing required fields", Message: err.Error()})
		return
	}

	view, err := h.checkout.SubmitShipping(c.Request.Context(), middleware.CartID(c), details)
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitUploads godoc
// @Summary     Submit the upload step
// @Description Optionally stages files sent in this request (multipart fields named by cart line id), then uploads every staged, not-yet-stored customization image concurrently. All uploads must succeed to advance to Payment; completed lines are skipped on retry.
// @Tags        checkout
// @Accept      multipart/form-data
// @Produce     json
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /checkout/uploads [post]
func (h *CheckoutHandler) SubmitUploads(c *gin.Context) {
	cartID := middleware.CartID(c)

	// Files may arrive with this submission instead of a prior staging call.
	// Field names are cart line ids.
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for itemID, files := range form.File {
			if len(files) == 0 {
				continue
			}
			fileHeader := files[0]
			if fileHeader.Size > maxCustomizationFileSize {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large", Message: fileHeader.Filename})
				return
			}
			src, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
				return
			}
			staged := &models.StagedFile{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Data:        data,
			}
			if err := h.checkout.StageFile(c.Request.Context(), cartID, itemID, staged); err != nil {
				checkoutError(c, err)
				return
			}
		}
	}

	view, err := h.checkout.SubmitUploads(c.Request.Context(), cartID)
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyCoupon godoc
// @Summary     Apply a coupon
// @Description Validates the code and, when valid, activates a discount of discountPerUnit times the total quantity across all cart lines. An invalid code clears any active coupon.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body models.ApplyCouponRequest true "Coupon code"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /checkout/coupon [post]
func (h *CheckoutHandler) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	view, err := h.checkout.ApplyCoupon(c.Request.Context(), middleware.CartID(c), req.CouponCode)
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveCoupon godoc
// @Summary     Remove the active coupon
// @Tags        checkout
// @Produce     json
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /checkout/coupon [delete]
func (h *CheckoutHandler) RemoveCoupon(c *gin.Context) {
	view, err := h.checkout.RemoveCoupon(c.Request.Context(), middleware.CartID(c))
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateOrder godoc
// @Summary     Create the payment order for this checkout
// @Description Sends the cart snapshot and active coupon code to the payment provider, which recomputes the authoritative amount, and returns the order handle for the hosted payment UI
// @Tags        checkout
// @Produce     json
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /checkout/order [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	order, err := h.checkout.CreateOrder(c.Request.Context(), middleware.CartID(c))
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ConfirmPayment godoc
// @Summary     Confirm a completed payment
// @Description Verifies the provider success-callback signature. A verified payment clears the cart and moves the checkout to Success; a failed verification changes nothing.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body models.VerifyPaymentRequest true "Provider callback fields"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /checkout/confirm [post]
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	view, err := h.checkout.ConfirmPayment(c.Request.Context(), middleware.CartID(c), req)
	if err != nil {
		checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
