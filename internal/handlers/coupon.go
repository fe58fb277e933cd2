package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/coupon"
	"upaheart-backend/internal/models"
)

type CouponHandler struct {
	validator *coupon.Validator
}

func NewCouponHandler(validator *coupon.Validator) *CouponHandler {
	return &CouponHandler{validator: validator}
}

// ValidateCoupon godoc
// @Summary     Validate a coupon code
// @Description Case-insensitive check against the configured code. Responds 200 for both valid and invalid codes.
// @Tags        coupon
// @Accept      json
// @Produce     json
// @Param       request body models.ValidateCouponRequest true "Coupon code"
// @Success     200 {object} models.CouponResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /validate-coupon [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.validator.Validate(req.CouponCode))
}
