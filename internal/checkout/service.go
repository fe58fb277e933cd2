package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"upaheart-backend/internal/cart"
	"upaheart-backend/internal/coupon"
	"upaheart-backend/internal/models"
)

// Uploader stores a staged customization file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file *models.StagedFile) (string, error)
}

// PaymentProvider creates provider orders and verifies payment callbacks.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error)
	VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) bool
}

// AppliedCoupon is the coupon currently active on a checkout. Discount is
// the total discount: per-unit discount times the summed quantity of every
// cart line, not scoped to eligible products.
type AppliedCoupon struct {
	Code            string
	DiscountPerUnit float64
	Discount        float64
}

// Session is one checkout attempt. Sessions are process-local and never
// persisted: a fresh checkout always restarts at Shipping.
type Session struct {
	CartID   string
	Step     Step
	Shipping models.ShippingDetails
	Coupon   *AppliedCoupon
	OrderID  string
}

// Service drives checkouts through the step machine, delegating to the cart
// store, coupon validator, uploader, and payment provider.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts    *cart.Store
	coupons  *coupon.Validator
	uploader Uploader
	payments PaymentProvider
}

func NewService(carts *cart.Store, coupons *coupon.Validator, uploader Uploader, payments PaymentProvider) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		carts:    carts,
		coupons:  coupons,
		uploader: uploader,
		payments: payments,
	}
}

// session returns the checkout session for a cart, creating one at Shipping
// if none exists. Must be called with the lock held.
func (s *Service) session(cartID string) *Session {
	sess, ok := s.sessions[cartID]
	if !ok {
		sess = &Session{CartID: cartID, Step: StepShipping}
		s.sessions[cartID] = sess
	}
	return sess
}

// View returns the current state of a checkout together with the advisory
// totals the payment step displays.
func (s *Service) View(ctx context.Context, cartID string) (*models.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(cartID)
	return s.view(sess, c), nil
}

// view must be called with the lock held.
func (s *Service) view(sess *Session, c *models.Cart) *models.CheckoutResponse {
	resp := &models.CheckoutResponse{
		Step:           sess.Step.String(),
		UploadRequired: c.HasCustomizable(),
		Subtotal:       c.Total(),
		SaleDiscount:   c.SaleDiscount(),
		TotalDue:       c.Total(),
	}
	if sess.Coupon != nil {
		resp.Coupon = &models.AppliedCouponInfo{Code: sess.Coupon.Code, Discount: sess.Coupon.Discount}
		resp.TotalDue -= sess.Coupon.Discount
	}
	return resp
}

// SubmitShipping validates nothing beyond what handler binding already did
// and advances Shipping to Upload or Payment, a pure function of whether any
// cart line is customizable.
func (s *Service) SubmitShipping(ctx context.Context, cartID string, details models.ShippingDetails) (*models.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(cartID)
	if sess.Step != StepShipping {
		return nil, ErrWrongStep
	}

	sess.Shipping = details
	sess.Step, _ = next(StepShipping, c.HasCustomizable())
	return s.view(sess, c), nil
}

// StageFile attaches a customization file to a cart line during the Upload
// step. Staging clears the line's stored URL, so the new file must be
// uploaded before the step can complete.
func (s *Service) StageFile(ctx context.Context, cartID, cartItemID string, file *models.StagedFile) error {
	s.mu.Lock()
	sess := s.session(cartID)
	if sess.Step != StepUpload {
		s.mu.Unlock()
		return ErrWrongStep
	}
	s.mu.Unlock()

	return s.carts.StageCustomizationFile(ctx, cartID, cartItemID, file)
}

// SubmitUploads stores every staged, not-yet-stored customization file and
// advances to Payment. Submission is rejected before any network call when a
// customizable line has neither a staged file nor a stored URL. Uploads run
// concurrently and all must succeed; each success is written back onto its
// line immediately, so a retry after a partial failure only re-uploads the
// remainder.
func (s *Service) SubmitUploads(ctx context.Context, cartID string) (*models.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess := s.session(cartID)
	if sess.Step != StepUpload {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	s.mu.Unlock()

	type pendingUpload struct {
		cartItemID string
		file       *models.StagedFile
	}
	var pending []pendingUpload
	for _, item := range c.Items {
		if !item.IsCustomizable || item.CustomizationFileURL != "" {
			continue
		}
		if item.CustomizationFile == nil {
			return nil, ErrMissingFiles
		}
		pending = append(pending, pendingUpload{cartItemID: item.CartItemID, file: item.CustomizationFile})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			url, err := s.uploader.Upload(gctx, p.file)
			if err != nil {
				return fmt.Errorf("upload %s: %w", p.file.Filename, err)
			}
			return s.carts.UpdateItem(ctx, cartID, p.cartItemID, models.UpdateItemRequest{CustomizationFileURL: &url})
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Checkout upload failed for cart %s: %v", cartID, err)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Step, _ = next(StepUpload, true)
	return s.view(sess, c), nil
}

// ApplyCoupon validates a code within the Payment step. A valid code becomes
// the active coupon with discount = discountPerUnit times the summed
// quantity of all lines. An invalid code clears any previously active
// coupon.
func (s *Service) ApplyCoupon(ctx context.Context, cartID, code string) (*models.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(cartID)
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}

	result := s.coupons.Validate(code)
	if !result.Valid {
		sess.Coupon = nil
		return nil, ErrInvalidCoupon
	}

	sess.Coupon = &AppliedCoupon{
		Code:            code,
		DiscountPerUnit: result.DiscountPerUnit,
		Discount:        result.DiscountPerUnit * float64(c.TotalQuantity()),
	}
	return s.view(sess, c), nil
}

// RemoveCoupon clears the active coupon. The checkout stays in Payment.
func (s *Service) RemoveCoupon(ctx context.Context, cartID string) (*models.CheckoutResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(cartID)
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}

	sess.Coupon = nil
	return s.view(sess, c), nil
}

// CreateOrder sends the cart snapshot and active coupon code to the payment
// provider, which recomputes the authoritative amount. Failure leaves the
// checkout in Payment so the shopper can retry.
func (s *Service) CreateOrder(ctx context.Context, cartID string) (*models.OrderResponse, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	sess := s.session(cartID)
	if sess.Step != StepPayment {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	var couponCode string
	if sess.Coupon != nil {
		couponCode = sess.Coupon.Code
	}
	s.mu.Unlock()

	req := models.CreateOrderRequest{
		Receipt:    fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
		CouponCode: couponCode,
	}
	for _, item := range c.Items {
		req.Items = append(req.Items, models.OrderItem{
			Name:                 item.Name,
			Price:                item.Price,
			Quantity:             item.Quantity,
			Images:               item.Images,
			CustomizationFileURL: item.CustomizationFileURL,
		})
	}

	order, err := s.payments.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess.OrderID = order.ID
	order.Prefill = &models.PaymentPrefill{Name: sess.Shipping.FullName(), Email: sess.Shipping.Email}
	s.mu.Unlock()
	return order, nil
}

// ConfirmPayment verifies the provider's success callback. A verified
// payment is the sole trigger for clearing the cart and entering Success;
// a failed verification leaves the checkout untouched. The session is
// dropped once the Success view is built, so the next checkout on this cart
// starts over at Shipping.
func (s *Service) ConfirmPayment(ctx context.Context, cartID string, req models.VerifyPaymentRequest) (*models.CheckoutResponse, error) {
	s.mu.Lock()
	sess := s.session(cartID)
	if sess.Step != StepPayment {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	if sess.OrderID == "" || sess.OrderID != req.OrderID {
		s.mu.Unlock()
		return nil, ErrNoOrder
	}
	s.mu.Unlock()

	if !s.payments.VerifyPayment(ctx, req) {
		return nil, ErrInvalidSignature
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		return nil, err
	}
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Step, _ = next(StepPayment, false)
	// The cart is empty now; the coupon has been spent with it.
	sess.Coupon = nil
	resp := s.view(sess, c)
	delete(s.sessions, cartID)
	return resp, nil
}
