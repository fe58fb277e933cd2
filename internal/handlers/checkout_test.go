package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"upaheart-backend/internal/cart"
	"upaheart-backend/internal/catalog"
	"upaheart-backend/internal/checkout"
	"upaheart-backend/internal/coupon"
	"upaheart-backend/internal/handlers"
	"upaheart-backend/internal/middleware"
	"upaheart-backend/internal/models"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, file *models.StagedFile) (string, error) {
	return "https://cdn.example.com/" + file.Filename, nil
}

type stubPayments struct {
	verified bool
}

func (s *stubPayments) CreateOrder(_ context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	return &models.OrderResponse{ID: "order_123", Amount: 90000, Currency: "INR", Receipt: req.Receipt}, nil
}

func (s *stubPayments) VerifyPayment(_ context.Context, _ models.VerifyPaymentRequest) bool {
	return s.verified
}

func checkoutRouter(payments *stubPayments) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := cart.NewStore(cart.NewMemorySnapshots())
	coupons := coupon.NewValidator("LOVE300", 300)
	svc := checkout.NewService(store, coupons, stubUploader{}, payments)

	cartHandler := handlers.NewCartHandler(store, catalog.New())
	checkoutHandler := handlers.NewCheckoutHandler(svc)

	router := gin.New()
	router.Use(middleware.CartSession())
	router.POST("/cart/items", cartHandler.AddItem)
	router.GET("/checkout", checkoutHandler.GetCheckout)
	router.POST("/checkout/shipping", checkoutHandler.SubmitShipping)
	router.POST("/checkout/uploads", checkoutHandler.SubmitUploads)
	router.POST("/checkout/coupon", checkoutHandler.ApplyCoupon)
	router.DELETE("/checkout/coupon", checkoutHandler.RemoveCoupon)
	router.POST("/checkout/order", checkoutHandler.CreateOrder)
	router.POST("/checkout/confirm", checkoutHandler.ConfirmPayment)
	return router
}

func checkoutView(t *testing.T, w *httptest.ResponseRecorder) models.CheckoutResponse {
	t.Helper()
	var view models.CheckoutResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func validShipping() models.ShippingDetails {
	return models.ShippingDetails{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		Zip:       "560001",
	}
}

func TestSubmitShipping_EmptyCart(t *testing.T) {
	router := checkoutRouter(&stubPayments{})

	w := doCart(router, "POST", "/checkout/shipping", validShipping())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitShipping_MissingFields(t *testing.T) {
	router := checkoutRouter(&stubPayments{})

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	w := doCart(router, "POST", "/checkout/shipping", map[string]string{"firstName": "Asha"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required fields")
}

func TestCheckoutFlow_NoCustomizableLines(t *testing.T) {
	router := checkoutRouter(&stubPayments{verified: true})

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})

	w := doCart(router, "POST", "/checkout/shipping", validShipping())
	assert.Equal(t, http.StatusOK, w.Code)
	view := checkoutView(t, w)
	assert.Equal(t, "payment", view.Step)
	assert.False(t, view.UploadRequired)
}

func TestCheckoutFlow_FullCustomizedOrder(t *testing.T) {
	router := checkoutRouter(&stubPayments{verified: true})

	// The lamp is customizable, so checkout must pass through Upload.
	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p1"})
	itemID := cartFromBody(t, w).Cart.Items[0].CartItemID

	w = doCart(router, "POST", "/checkout/shipping", validShipping())
	view := checkoutView(t, w)
	assert.Equal(t, "upload", view.Step)
	assert.True(t, view.UploadRequired)

	// Submitting without a staged file is rejected.
	w = doCart(router, "POST", "/checkout/uploads", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Send the file with the submission, field named by cart line id.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile(itemID, "memory.jpg")
	part.Write([]byte("image-bytes"))
	mw.Close()

	req, _ := http.NewRequest("POST", "/checkout/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.CartIDHeader, "cart-test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "payment", checkoutView(t, rec).Step)

	// Coupon on the payment step.
	w = doCart(router, "POST", "/checkout/coupon", models.ApplyCouponRequest{CouponCode: "LOVE300"})
	view = checkoutView(t, w)
	assert.NotNil(t, view.Coupon)
	assert.Equal(t, 300.0, view.Coupon.Discount)
	assert.Equal(t, 900.0, view.TotalDue)

	// Create the provider order, then confirm its payment.
	w = doCart(router, "POST", "/checkout/order", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var order models.OrderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "order_123", order.ID)

	w = doCart(router, "POST", "/checkout/confirm", models.VerifyPaymentRequest{
		OrderID:   "order_123",
		PaymentID: "pay_1",
		Signature: "sig",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	view = checkoutView(t, w)
	assert.Equal(t, "success", view.Step)
	assert.Nil(t, view.Coupon)
	assert.Equal(t, 0.0, view.TotalDue)

	// The completed checkout is gone; the same session starts over.
	w = doCart(router, "GET", "/checkout", nil)
	assert.Equal(t, "shipping", checkoutView(t, w).Step)
}

func TestApplyCoupon_InvalidCode(t *testing.T) {
	router := checkoutRouter(&stubPayments{})

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	doCart(router, "POST", "/checkout/shipping", validShipping())

	w := doCart(router, "POST", "/checkout/coupon", models.ApplyCouponRequest{CouponCode: "WRONG"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid coupon code")
}

func TestConfirmPayment_FailedVerification(t *testing.T) {
	router := checkoutRouter(&stubPayments{verified: false})

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	doCart(router, "POST", "/checkout/shipping", validShipping())
	doCart(router, "POST", "/checkout/order", nil)

	w := doCart(router, "POST", "/checkout/confirm", models.VerifyPaymentRequest{
		OrderID:   "order_123",
		PaymentID: "pay_1",
		Signature: "forged",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "payment verification failed")

	// The checkout stays on the payment step.
	w = doCart(router, "GET", "/checkout", nil)
	assert.Equal(t, "payment", checkoutView(t, w).Step)
}
