package forms

import (
	"strconv"
	"strings"

	"campaign_forum/internal/models"
)

// Campaign is the new/edit campaign form.
//
// CampaignLink is part of the form and must be filled in, but it is not copied into the stored
// campaign: see Fields.
type Campaign struct {
	CandidateName   string `form:"candidatename" validate:"notblank"`
	IncumbentName   string `form:"incumbentname" validate:"notblank"`
	OfficeLevel     string `form:"officelevel" validate:"notblank"`
	OfficeLocation  string `form:"officelocation" validate:"notblank"`
	Office          string `form:"office" validate:"notblank"`
	DesiredBudget   string `form:"desiredbudget" validate:"requiredint"`
	IncumbentBudget string `form:"incumbentbudget" validate:"requiredint"`
	IncumbentParty  string `form:"incumbentparty" validate:"notblank"`
	CampaignLink    string `form:"campaignlink" validate:"notblank"`
}

func CampaignFrom(get Getter) Campaign {
	return Campaign{
		CandidateName:   get("candidatename"),
		IncumbentName:   get("incumbentname"),
		OfficeLevel:     get("officelevel"),
		OfficeLocation:  get("officelocation"),
		Office:          get("office"),
		DesiredBudget:   get("desiredbudget"),
		IncumbentBudget: get("incumbentbudget"),
		IncumbentParty:  get("incumbentparty"),
		CampaignLink:    get("campaignlink"),
	}
}

// CampaignFromModel pre-fills the edit form from a stored campaign. CampaignLink stays empty
// because it is never stored.
func CampaignFromModel(c models.Campaign) Campaign {
	return Campaign{
		CandidateName:   c.CandidateName,
		IncumbentName:   c.IncumbentName,
		OfficeLevel:     c.OfficeLevel,
		OfficeLocation:  c.OfficeLocation,
		Office:          c.Office,
		DesiredBudget:   strconv.FormatInt(c.DesiredBudget, 10),
		IncumbentBudget: strconv.FormatInt(c.IncumbentBudget, 10),
		IncumbentParty:  c.IncumbentParty,
	}
}

// Fields validates the form and converts it into the stored campaign fields. On failure the
// returned Errors are keyed by form field and the fields are zero.
// TODO: persist CampaignLink once product confirms it should be shown on the campaign page.
func (f Campaign) Fields() (models.CampaignFields, Errors) {
	if errs := Validate(f); !errs.Empty() {
		return models.CampaignFields{}, errs
	}
	// requiredint has already parsed both budgets
	desired, _ := parseInt(f.DesiredBudget)
	incumbent, _ := parseInt(f.IncumbentBudget)
	return models.CampaignFields{
		CandidateName:   strings.TrimSpace(f.CandidateName),
		IncumbentName:   strings.TrimSpace(f.IncumbentName),
		OfficeLevel:     strings.TrimSpace(f.OfficeLevel),
		OfficeLocation:  strings.TrimSpace(f.OfficeLocation),
		Office:          strings.TrimSpace(f.Office),
		DesiredBudget:   desired,
		IncumbentBudget: incumbent,
		IncumbentParty:  strings.TrimSpace(f.IncumbentParty),
	}, nil
}
