package coupon

import (
	"strings"

	"upaheart-backend/internal/models"
)

// Validator checks coupon codes against the single configured code. The
// match is case-insensitive and the discount is a fixed per-unit currency
// amount, not a percentage. There is no expiry, usage count, or per-product
// scoping.
type Validator struct {
	code            string
	discountPerUnit float64
}

func NewValidator(code string, discountPerUnit float64) *Validator {
	return &Validator{code: code, discountPerUnit: discountPerUnit}
}

// Validate checks a code. With no code configured every input is invalid.
func (v *Validator) Validate(code string) models.CouponResponse {
	if v.code != "" && code != "" && strings.EqualFold(code, v.code) {
		return models.CouponResponse{
			Valid:           true,
			DiscountPerUnit: v.discountPerUnit,
			Message:         "Coupon applied successfully!",
		}
	}
	return models.CouponResponse{
		Valid:   false,
		Message: "Invalid coupon code",
	}
}
