package wizard

import (
	"strings"

	"creatorhub/models"
)

const minPhoneDigits = 10

func (m *Machine) checkCampaign(c models.CampaignDetails) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return invalid(models.StepCampaignDetails, "Campaign name is required.")
	case strings.TrimSpace(c.Description) == "":
		return invalid(models.StepCampaignDetails, "Campaign description is required.")
	case c.Deadline == nil:
		return invalid(models.StepCampaignDetails, "Campaign deadline is required.")
	case !c.Deadline.After(m.now()):
		return invalid(models.StepCampaignDetails, "Campaign deadline must be in the future.")
	}
	return nil
}

func (m *Machine) checkContact(c models.Contact) error {
	if strings.TrimSpace(c.FullName) == "" {
		return invalid(models.StepContactDetails, "Full name is required.")
	}
	if err := m.validate.Var(strings.TrimSpace(c.Email), "required,email"); err != nil {
		return invalid(models.StepContactDetails, "Enter a valid email address.")
	}
	if countDigits(c.Phone) < minPhoneDigits {
		return invalid(models.StepContactDetails, "Enter a valid phone number with at least 10 digits.")
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
