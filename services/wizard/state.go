package wizard

import (
	"fmt"

	"creatorhub/models"
)

// state is one wizard screen. Each screen knows its own exit rule and its neighbours,
// so a transition that skips a screen cannot be expressed.
type state interface {
	step() models.Step
	check(m *Machine, d *models.BookingDraft) error
	next() state
	prev() state
}

type serviceSelection struct{}
type campaignDetails struct{}
type contactDetails struct{}
type reviewAndPay struct{}
type outcome struct{}

func (serviceSelection) step() models.Step { return models.StepServiceSelection }
func (serviceSelection) next() state       { return campaignDetails{} }
func (serviceSelection) prev() state       { return nil }
func (serviceSelection) check(_ *Machine, d *models.BookingDraft) error {
	total := 0
	for _, qty := range d.Services {
		if qty > 0 {
			total += qty
		}
	}
	if total == 0 {
		return invalid(models.StepServiceSelection, "Select at least one service.")
	}
	return nil
}

func (campaignDetails) step() models.Step { return models.StepCampaignDetails }
func (campaignDetails) next() state       { return contactDetails{} }
func (campaignDetails) prev() state       { return serviceSelection{} }
func (campaignDetails) check(m *Machine, d *models.BookingDraft) error {
	return m.checkCampaign(d.Campaign)
}

func (contactDetails) step() models.Step { return models.StepContactDetails }
func (contactDetails) next() state       { return reviewAndPay{} }
func (contactDetails) prev() state       { return campaignDetails{} }
func (contactDetails) check(m *Machine, d *models.BookingDraft) error {
	return m.checkContact(d.Contact)
}

func (reviewAndPay) step() models.Step { return models.StepReviewAndPay }
func (reviewAndPay) next() state       { return outcome{} }
func (reviewAndPay) prev() state       { return contactDetails{} }

// The only way past the review screen is a captured payment.
func (reviewAndPay) check(_ *Machine, d *models.BookingDraft) error {
	switch d.Payment.Status {
	case models.PaymentSuccess:
		return nil
	case models.PaymentProcessing:
		return invalid(models.StepReviewAndPay, "Payment is still being processed.")
	case models.PaymentFailed:
		return invalid(models.StepReviewAndPay, "Payment failed. Retry the payment to continue.")
	default:
		return invalid(models.StepReviewAndPay, "Complete the payment to continue.")
	}
}

func (outcome) step() models.Step { return models.StepOutcome }
func (outcome) next() state       { return nil }
func (outcome) prev() state       { return reviewAndPay{} }
func (outcome) check(*Machine, *models.BookingDraft) error {
	return ErrLastStep
}

func stateOf(step models.Step) (state, error) {
	switch step {
	case models.StepServiceSelection:
		return serviceSelection{}, nil
	case models.StepCampaignDetails:
		return campaignDetails{}, nil
	case models.StepContactDetails:
		return contactDetails{}, nil
	case models.StepReviewAndPay:
		return reviewAndPay{}, nil
	case models.StepOutcome:
		return outcome{}, nil
	}
	return nil, fmt.Errorf("unknown wizard step %q", step)
}
