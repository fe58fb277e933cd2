package checkout

// Step is a checkout state. The sequence is Shipping → Upload → Payment →
// Success, with Upload present only when the cart holds a customizable line.
// Transitions are one-directional; coupon changes stay within Payment.
type Step int

const (
	StepShipping Step = iota
	StepUpload
	StepPayment
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepUpload:
		return "upload"
	case StepPayment:
		return "payment"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// next returns the step that follows s for a checkout that does or does not
// include the Upload step. Upload is conditionally absent from the sequence,
// never skipped while present.
func next(s Step, uploadRequired bool) (Step, bool) {
	switch s {
	case StepShipping:
		if uploadRequired {
			return StepUpload, true
		}
		return StepPayment, true
	case StepUpload:
		return StepPayment, true
	case StepPayment:
		return StepSuccess, true
	default:
		return s, false
	}
}
