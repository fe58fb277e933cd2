package models

// ShippingDetails are the required contact/address fields collected at the
// start of every checkout attempt. They are never persisted across sessions.
type ShippingDetails struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
	Country   string `json:"country"`
}

// FullName joins first and last name for the payment provider prefill.
func (s ShippingDetails) FullName() string {
	return s.FirstName + " " + s.LastName
}

type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// UpdateItemRequest is a shallow merge onto a cart line. Nil fields are left
// untouched. Setting customizationFileUrl is how a completed upload is
// recorded on a line.
type UpdateItemRequest struct {
	CustomizationFileURL *string `json:"customizationFileUrl"`
	Quantity             *int    `json:"quantity"`
}

type ValidateCouponRequest struct {
	CouponCode string `json:"couponCode"`
}

type ApplyCouponRequest struct {
	CouponCode string `json:"couponCode" binding:"required"`
}

// OrderItem is a cart line as sent to order creation. Price and quantity are
// advisory; the server recomputes the authoritative amount.
type OrderItem struct {
	Name                 string   `json:"name"`
	Price                float64  `json:"price"`
	Quantity             int      `json:"quantity"`
	Images               []string `json:"images,omitempty"`
	CustomizationFileURL string   `json:"customizationFileUrl,omitempty"`
}

type CreateOrderRequest struct {
	Items      []OrderItem `json:"items"`
	Receipt    string      `json:"receipt"`
	CouponCode string      `json:"couponCode"`
}

type UploadURLRequest struct {
	Filename string `json:"filename"`
	Filetype string `json:"filetype"`
}

// VerifyPaymentRequest carries the fields the payment provider hands to its
// success callback.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

type ConciergeRequest struct {
	Message string `json:"message" binding:"required"`
}
