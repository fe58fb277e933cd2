package checkout

import "errors"

var (
	// ErrEmptyCart means checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrWrongStep means the requested operation does not belong to the
	// checkout's current step.
	ErrWrongStep = errors.New("operation not valid for current checkout step")

	// ErrMissingFiles means a customizable line has neither a staged file nor
	// a stored URL. Raised before any network call is made.
	ErrMissingFiles = errors.New("all customizable items need an image before proceeding")

	// ErrUploadFailed means at least one staged file could not be stored.
	// Lines that did complete keep their URLs, so a retry only re-uploads the
	// remainder.
	ErrUploadFailed = errors.New("failed to upload images")

	// ErrInvalidCoupon means the entered code did not validate.
	ErrInvalidCoupon = errors.New("invalid coupon code")

	// ErrInvalidSignature means the payment confirmation signature did not
	// verify.
	ErrInvalidSignature = errors.New("payment signature verification failed")

	// ErrNoOrder means payment confirmation arrived for a checkout that never
	// created an order.
	ErrNoOrder = errors.New("no order was created for this checkout")
)
