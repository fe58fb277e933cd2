package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

type CartResponse struct {
	Cart         *Cart   `json:"cart"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
	SaleDiscount float64 `json:"saleDiscount,omitempty"`
}

type CouponResponse struct {
	Valid           bool    `json:"valid"`
	DiscountPerUnit float64 `json:"discountPerUnit,omitempty"`
	Message         string  `json:"message"`
}

// AppliedCouponInfo describes the coupon currently active on a checkout.
type AppliedCouponInfo struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// CheckoutResponse is the full view of a checkout session: current step plus
// the advisory totals the payment step displays. The authoritative amount is
// only ever computed at order creation.
type CheckoutResponse struct {
	Step           string             `json:"step"`
	UploadRequired bool               `json:"uploadRequired"`
	Subtotal       float64            `json:"subtotal"`
	SaleDiscount   float64            `json:"saleDiscount,omitempty"`
	Coupon         *AppliedCouponInfo `json:"coupon,omitempty"`
	TotalDue       float64            `json:"totalDue"`
}

// PaymentPrefill carries the shopper fields the provider's hosted UI is
// prefilled with.
type PaymentPrefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is the order handle returned by order creation: everything
// the client needs to open the provider's hosted payment UI.
type OrderResponse struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
	KeyID    string          `json:"keyId,omitempty"`
	Prefill  *PaymentPrefill `json:"prefill,omitempty"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

type VerifyPaymentResponse struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}

type ConciergeResponse struct {
	Reply string `json:"reply"`
}
