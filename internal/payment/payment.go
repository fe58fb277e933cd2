package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	"upaheart-backend/internal/coupon"
	"upaheart-backend/internal/database"
	"upaheart-backend/internal/models"
)

// ErrNoItems is returned when order creation is attempted with an empty
// cart.
var ErrNoItems = errors.New("no items in cart")

// Service creates Razorpay orders. This is the sole point where money
// amounts become authoritative: the coupon is re-validated server-side and
// the charge is recomputed from item prices, never trusted from the client.
type Service struct {
	rz        *razorpay.Client
	keyID     string
	keySecret string
	coupons   *coupon.Validator
	records   *database.Client // may be nil; order records are best-effort
}

func NewService(keyID, keySecret string, coupons *coupon.Validator, records *database.Client) *Service {
	return &Service{
		rz:        razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		coupons:   coupons,
		records:   records,
	}
}

// AuthoritativeAmountPaise recomputes the order total in the smallest
// currency unit: sum of max(0, price - perUnitDiscount) x quantity over all
// items, where the discount applies only when the coupon code validates.
func (s *Service) AuthoritativeAmountPaise(items []models.OrderItem, couponCode string) int64 {
	var perUnitDiscount float64
	if couponCode != "" {
		if result := s.coupons.Validate(couponCode); result.Valid {
			perUnitDiscount = result.DiscountPerUnit
		}
	}

	var total float64
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += math.Max(0, item.Price-perUnitDiscount) * float64(qty)
	}
	return int64(math.Round(total * 100))
}

// CreateOrder creates a provider order record and returns the handle the
// client needs for the hosted payment UI.
func (s *Service) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	amount := s.AuthoritativeAmountPaise(req.Items, req.CouponCode)

	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  req.Receipt,
		"notes": map[string]interface{}{
			"items_count": fmt.Sprintf("%d", len(req.Items)),
		},
	}

	body, err := s.rz.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, _ := body["id"].(string)
	currency, _ := body["currency"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id: %v", body)
	}

	order := &models.OrderResponse{
		ID:       orderID,
		Amount:   amount,
		Currency: currency,
		Receipt:  req.Receipt,
		KeyID:    s.keyID,
	}

	if s.records != nil {
		if err := s.records.InsertOrder(ctx, order, req.CouponCode); err != nil {
			log.Printf("Warning: failed to record order %s: %v", orderID, err)
		}
	}

	return order, nil
}

// VerifyPayment checks the provider's success-callback signature:
// HMAC-SHA256 of "orderID|paymentID" under the key secret. A verified
// payment is recorded as paid when a database is configured.
func (s *Service) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) bool {
	if !s.verifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return false
	}

	if s.records != nil {
		if err := s.records.MarkOrderPaid(ctx, req.OrderID, req.PaymentID); err != nil {
			log.Printf("Warning: failed to mark order %s paid: %v", req.OrderID, err)
		}
	}
	return true
}

func (s *Service) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
