package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campaign_forum/internal/models"

	"github.com/google/uuid"
)

type CampaignSQLite struct {
	db *sql.DB
}

func NewCampaignSQLite(db *sql.DB) *CampaignSQLite {
	return &CampaignSQLite{db: db}
}

var _ Campaigns = (*CampaignSQLite)(nil)

const (
	campaignSelectFrom = `
		SELECT c.id, c.author_id, COALESCE(u.username, ''), c.candidate_name, c.incumbent_name,
			c.office_level, c.office_location, c.office, c.desired_budget, c.incumbent_budget,
			c.incumbent_party, c.modify_date
		FROM campaigns c LEFT JOIN users u ON u.id = c.author_id`

	listCampaignsSQL = campaignSelectFrom + ` ORDER BY c.modify_date DESC`
	getCampaignSQL   = campaignSelectFrom + ` WHERE c.id = ?`

	insertCampaignSQL = `
		INSERT INTO campaigns (id, author_id, candidate_name, incumbent_name, office_level, office_location,
			office, desired_budget, incumbent_budget, incumbent_party, modify_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// author_id is deliberately absent: ownership never changes after insert.
	updateCampaignSQL = `
		UPDATE campaigns SET candidate_name = ?, incumbent_name = ?, office_level = ?, office_location = ?,
			office = ?, desired_budget = ?, incumbent_budget = ?, incumbent_party = ?, modify_date = ?
		WHERE id = ?`

	deleteCampaignSQL = `DELETE FROM campaigns WHERE id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID,
		&c.AuthorID,
		&c.AuthorUsername,
		&c.CandidateName,
		&c.IncumbentName,
		&c.OfficeLevel,
		&c.OfficeLocation,
		&c.Office,
		&c.DesiredBudget,
		&c.IncumbentBudget,
		&c.IncumbentParty,
		&c.ModifyDate,
	)
	c.ModifyDate = c.ModifyDate.UTC()
	return c, err
}

// List returns every campaign, newest first. No filtering, no pagination.
func (r *CampaignSQLite) List(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, listCampaignsSQL)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := make([]models.Campaign, 0, 16)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return out, nil
}

// Get fetches one campaign by id. Returns ErrNotFound if absent.
func (r *CampaignSQLite) Get(ctx context.Context, id string) (models.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx, getCampaignSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Campaign{}, fmt.Errorf("campaign %q: %w", id, ErrNotFound)
		}
		return models.Campaign{}, fmt.Errorf("select campaign %q: %w", id, err)
	}
	return c, nil
}

// Create inserts c. An empty ID gets a fresh UUID; a zero ModifyDate gets now.
func (r *CampaignSQLite) Create(ctx context.Context, c models.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ModifyDate.IsZero() {
		c.ModifyDate = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertCampaignSQL,
		c.ID,
		c.AuthorID,
		c.CandidateName,
		c.IncumbentName,
		c.OfficeLevel,
		c.OfficeLocation,
		c.Office,
		c.DesiredBudget,
		c.IncumbentBudget,
		c.IncumbentParty,
		c.ModifyDate.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert campaign %q: %w", c.ID, err)
	}
	return nil
}

// Update overwrites the editable fields in place. Last write wins.
func (r *CampaignSQLite) Update(ctx context.Context, id string, f models.CampaignFields, modifyDate time.Time) error {
	res, err := r.db.ExecContext(ctx, updateCampaignSQL,
		f.CandidateName,
		f.IncumbentName,
		f.OfficeLevel,
		f.OfficeLocation,
		f.Office,
		f.DesiredBudget,
		f.IncumbentBudget,
		f.IncumbentParty,
		modifyDate.UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update campaign %q: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("campaign %q", id))
}

func (r *CampaignSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCampaignSQL, id)
	if err != nil {
		return fmt.Errorf("delete campaign %q: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("campaign %q", id))
}
