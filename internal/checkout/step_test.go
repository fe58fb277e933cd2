package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_ShippingBranchesOnUploadRequirement(t *testing.T) {
	step, ok := next(StepShipping, true)
	assert.True(t, ok)
	assert.Equal(t, StepUpload, step)

	step, ok = next(StepShipping, false)
	assert.True(t, ok)
	assert.Equal(t, StepPayment, step)
}

func TestNext_UploadAlwaysLeadsToPayment(t *testing.T) {
	step, ok := next(StepUpload, true)
	assert.True(t, ok)
	assert.Equal(t, StepPayment, step)
}

func TestNext_PaymentLeadsToSuccess(t *testing.T) {
	step, ok := next(StepPayment, false)
	assert.True(t, ok)
	assert.Equal(t, StepSuccess, step)
}

func TestNext_SuccessIsTerminal(t *testing.T) {
	step, ok := next(StepSuccess, false)
	assert.False(t, ok)
	assert.Equal(t, StepSuccess, step)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "shipping", StepShipping.String())
	assert.Equal(t, "upload", StepUpload.String())
	assert.Equal(t, "payment", StepPayment.String())
	assert.Equal(t, "success", StepSuccess.String())
}
