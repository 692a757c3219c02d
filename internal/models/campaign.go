package models

import "time"

// Campaign is a campaign-funding proposal owned by exactly one user.
type Campaign struct {
	ID             string    `json:"id"`
	AuthorID       int       `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"` // joined from users, read-only
	ModifyDate     time.Time `json:"modifydate"`

	CampaignFields
}

// CampaignFields is the editable part of a campaign. Author and ID are not in here on purpose:
// an edit can only ever touch these columns.
type CampaignFields struct {
	CandidateName   string `json:"candidatename"`
	IncumbentName   string `json:"incumbentname"`
	OfficeLevel     string `json:"officelevel"`
	OfficeLocation  string `json:"officelocation"`
	Office          string `json:"office"`
	DesiredBudget   int64  `json:"desiredbudget"`
	IncumbentBudget int64  `json:"incumbentbudget"`
	IncumbentParty  string `json:"incumbentparty"`
}

// IsAuthor reports whether userID owns the campaign.
func (c *Campaign) IsAuthor(userID int) bool {
	return userID != 0 && c.AuthorID == userID
}
