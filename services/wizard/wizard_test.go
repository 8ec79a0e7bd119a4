package wizard

import (
	"errors"
	"testing"
	"time"

	"creatorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newMachine() *Machine {
	return New(func() time.Time { return fixedNow })
}

func newDraft() *models.BookingDraft {
	return models.NewBookingDraft("draft-1", models.FlowCreatorBooking, "creator-1", fixedNow)
}

func filledDraft(t *testing.T, m *Machine) *models.BookingDraft {
	t.Helper()
	d := newDraft()
	deadline := fixedNow.Add(24 * time.Hour)
	require.NoError(t, m.SetServices(d, map[string]int{"reel": 1, "story": 0}))
	require.NoError(t, m.SetCampaign(d, "Spring launch", "Two reels about the launch", &deadline))
	require.NoError(t, m.SetContact(d, models.Contact{FullName: "Asha Rao", Email: "asha@example.com", Phone: "+91 98765-43210"}))
	return d
}

func advanceTo(t *testing.T, m *Machine, d *models.BookingDraft, step models.Step) {
	t.Helper()
	for d.Step != step {
		require.NoError(t, m.Advance(d))
	}
}

func requireValidation(t *testing.T, err error, step models.Step) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, step, verr.Step)
	return verr
}

func TestAdvance_ServiceSelectionNeedsAPositiveQuantity(t *testing.T) {
	m := newMachine()
	d := newDraft()
	require.NoError(t, m.SetServices(d, map[string]int{"reel": 0, "story": 0, "combo": 0}))

	err := m.Advance(d)
	requireValidation(t, err, models.StepServiceSelection)
	assert.Equal(t, models.StepServiceSelection, d.Step)

	require.NoError(t, m.SetServices(d, map[string]int{"story": 2}))
	require.NoError(t, m.Advance(d))
	assert.Equal(t, models.StepCampaignDetails, d.Step)
}

func TestSetServices_RejectsNegativeQuantities(t *testing.T) {
	m := newMachine()
	d := newDraft()
	err := m.SetServices(d, map[string]int{"reel": -2})
	requireValidation(t, err, models.StepServiceSelection)
	assert.Empty(t, d.Services)
}

func TestAdvance_CampaignDetailsRules(t *testing.T) {
	m := newMachine()
	past := fixedNow.Add(-time.Second)
	future := fixedNow.Add(time.Hour)

	cases := []struct {
		name     string
		title    string
		desc     string
		deadline *time.Time
		want     string
	}{
		{"missing name", " ", "desc", &future, "Campaign name is required."},
		{"missing description", "name", "", &future, "Campaign description is required."},
		{"missing deadline", "name", "desc", nil, "Campaign deadline is required."},
		{"deadline one second ago", "name", "desc", &past, "Campaign deadline must be in the future."},
		{"deadline exactly now", "name", "desc", &fixedNow, "Campaign deadline must be in the future."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDraft()
			d.Step = models.StepCampaignDetails
			require.NoError(t, m.SetCampaign(d, tc.title, tc.desc, tc.deadline))

			verr := requireValidation(t, m.Advance(d), models.StepCampaignDetails)
			assert.Equal(t, tc.want, verr.Message)
			assert.Equal(t, models.StepCampaignDetails, d.Step)
		})
	}
}

func TestAdvance_ContactDetailsRules(t *testing.T) {
	m := newMachine()
	cases := []struct {
		name    string
		contact models.Contact
		ok      bool
	}{
		{"valid", models.Contact{FullName: "Asha", Email: "asha@example.com", Phone: "(987) 654-3210"}, true},
		{"missing name", models.Contact{Email: "asha@example.com", Phone: "9876543210"}, false},
		{"bad email", models.Contact{FullName: "Asha", Email: "asha@", Phone: "9876543210"}, false},
		{"short phone", models.Contact{FullName: "Asha", Email: "asha@example.com", Phone: "98-765-432"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDraft()
			d.Step = models.StepContactDetails
			require.NoError(t, m.SetContact(d, tc.contact))
			err := m.Advance(d)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, models.StepReviewAndPay, d.Step)
				return
			}
			requireValidation(t, err, models.StepContactDetails)
			assert.Equal(t, models.StepContactDetails, d.Step)
		})
	}
}

func TestAdvance_ReviewRequiresSuccessfulPayment(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)

	requireValidation(t, m.Advance(d), models.StepReviewAndPay)
	assert.Equal(t, models.StepReviewAndPay, d.Step)
}

func TestAdvance_OutcomeIsLast(t *testing.T) {
	m := newMachine()
	d := newDraft()
	d.Step = models.StepOutcome
	assert.ErrorIs(t, m.Advance(d), ErrLastStep)
}

func TestRetreat(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)

	assert.ErrorIs(t, m.Retreat(d), ErrFirstStep)
	assert.False(t, CanRetreat(*d))

	advanceTo(t, m, d, models.StepContactDetails)
	assert.True(t, CanRetreat(*d))
	require.NoError(t, m.Retreat(d))
	assert.Equal(t, models.StepCampaignDetails, d.Step)
}

func TestBeginPayment_OnlyFromIdleOnReview(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	quote := models.Quote{Subtotal: 500, ServiceCharge: 99, GrandTotal: 599, Currency: "INR"}

	assert.ErrorIs(t, m.BeginPayment(d, quote), ErrNotReviewStep)

	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, quote))
	assert.Equal(t, models.PaymentProcessing, d.Payment.Status)
	assert.Equal(t, models.StepOutcome, d.Step)
	assert.Equal(t, 1, d.Payment.Attempt)
	require.NotNil(t, d.Payment.Quote)
	assert.Equal(t, int64(599), d.Payment.Quote.GrandTotal)

	// A second submit while the first is processing is refused.
	assert.ErrorIs(t, m.BeginPayment(d, quote), ErrPaymentNotIdle)
	assert.Equal(t, 1, d.Payment.Attempt)
}

func TestBeginPayment_RevalidatesEarlierSteps(t *testing.T) {
	now := fixedNow
	m := New(func() time.Time { return now })
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)

	// The deadline passes while the booker sits on the review screen.
	now = fixedNow.Add(48 * time.Hour)
	err := m.BeginPayment(d, models.Quote{GrandTotal: 599})
	requireValidation(t, err, models.StepCampaignDetails)
	assert.Equal(t, models.PaymentIdle, d.Payment.Status)
}

func TestRetreat_BlockedWhileProcessingAndAfterSuccess(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))

	assert.ErrorIs(t, m.Retreat(d), ErrPaymentInFlight)
	assert.ErrorIs(t, m.SetContact(d, models.Contact{}), ErrPaymentInFlight)

	require.NoError(t, m.CompletePayment(d, "txn_123"))
	assert.Equal(t, models.PaymentSuccess, d.Payment.Status)
	assert.ErrorIs(t, m.Retreat(d), ErrPaymentCaptured)
	assert.False(t, CanRetreat(*d))
	assert.ErrorIs(t, m.ResetPayment(d), ErrPaymentNotFailed)
	assert.ErrorIs(t, m.BeginPayment(d, models.Quote{}), ErrPaymentNotIdle)
}

func TestFailedPaymentCanBeRetried(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))

	require.NoError(t, m.FailPayment(d, "Card declined"))
	assert.Equal(t, models.PaymentFailed, d.Payment.Status)
	assert.Equal(t, "Card declined", d.Payment.Message)
	assert.Equal(t, models.StepOutcome, d.Step)
	assert.True(t, Abandonable(*d))

	// Failed is not idle: submitting again needs an explicit reset.
	assert.ErrorIs(t, m.BeginPayment(d, models.Quote{}), ErrPaymentNotIdle)

	require.NoError(t, m.ResetPayment(d))
	assert.Equal(t, models.PaymentIdle, d.Payment.Status)
	assert.Equal(t, models.StepReviewAndPay, d.Step)
	assert.Empty(t, d.Payment.Message)

	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))
	assert.Equal(t, 2, d.Payment.Attempt)
}

func TestFailPayment_DefaultsReason(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{}))
	require.NoError(t, m.FailPayment(d, ""))
	assert.Equal(t, genericPaymentFailure, d.Payment.Message)
}

func TestFlagReconciliation(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))

	require.NoError(t, m.FlagReconciliation(d, "txn_777"))
	assert.Equal(t, models.PaymentFailed, d.Payment.Status)
	assert.True(t, d.Payment.Reconcile)
	assert.Contains(t, d.Payment.Message, "txn_777")

	assert.ErrorIs(t, m.ResetPayment(d), ErrPaymentCaptured)
	assert.ErrorIs(t, m.Retreat(d), ErrPaymentCaptured)
	assert.False(t, Abandonable(*d))
}

func TestPaymentTransitionsRequireProcessing(t *testing.T) {
	m := newMachine()
	d := newDraft()
	assert.ErrorIs(t, m.CompletePayment(d, "txn"), ErrPaymentNotProcessing)
	assert.ErrorIs(t, m.FailPayment(d, "x"), ErrPaymentNotProcessing)
	assert.ErrorIs(t, m.FlagReconciliation(d, "txn"), ErrPaymentNotProcessing)
	assert.ErrorIs(t, m.AttachCheckout(d, models.Checkout{}), ErrPaymentNotProcessing)
}

func TestUnknownStep(t *testing.T) {
	m := newMachine()
	d := newDraft()
	d.Step = "somewhere"
	assert.Error(t, m.Advance(d))
	assert.Error(t, m.Retreat(d))
}

func TestExpirePayment_StaysOpenToALateCapture(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))

	require.NoError(t, m.ExpirePayment(d, "Payment was not completed in time."))
	assert.Equal(t, models.PaymentFailed, d.Payment.Status)
	assert.True(t, d.Payment.Expired)
	assert.True(t, AwaitingOutcome(*d))

	// Until the gateway answers, the attempt can be neither retried nor thrown away.
	assert.ErrorIs(t, m.ResetPayment(d), ErrPaymentUnresolved)
	assert.ErrorIs(t, m.Retreat(d), ErrPaymentUnresolved)
	assert.False(t, CanRetreat(*d))
	assert.False(t, Abandonable(*d))
	assert.ErrorIs(t, m.ExpirePayment(d, "again"), ErrPaymentNotProcessing)

	require.NoError(t, m.CompletePayment(d, "txn_late"))
	assert.Equal(t, models.PaymentSuccess, d.Payment.Status)
	assert.False(t, d.Payment.Expired)
	assert.Equal(t, "txn_late", d.Payment.TransactionID)
}

func TestExpirePayment_ConfirmedFailureCanBeReset(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))
	require.NoError(t, m.ExpirePayment(d, "Payment was not completed in time."))

	require.NoError(t, m.FailPayment(d, "Payment was not completed in time."))
	assert.False(t, d.Payment.Expired)
	assert.False(t, AwaitingOutcome(*d))
	assert.ErrorIs(t, m.CompletePayment(d, "txn_late"), ErrPaymentNotProcessing)

	require.NoError(t, m.ResetPayment(d))
	assert.Equal(t, models.PaymentIdle, d.Payment.Status)
}

func TestExpirePayment_LateCaptureWithoutRecordNeedsReconciliation(t *testing.T) {
	m := newMachine()
	d := filledDraft(t, m)
	advanceTo(t, m, d, models.StepReviewAndPay)
	require.NoError(t, m.BeginPayment(d, models.Quote{GrandTotal: 599}))
	require.NoError(t, m.ExpirePayment(d, ""))

	require.NoError(t, m.FlagReconciliation(d, "txn_late"))
	assert.True(t, d.Payment.Reconcile)
	assert.False(t, d.Payment.Expired)
	assert.False(t, AwaitingOutcome(*d))
	assert.ErrorIs(t, m.ResetPayment(d), ErrPaymentCaptured)
}
