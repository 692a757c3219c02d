package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a campaign id resolves to nothing.
	ErrNotFound = repository.ErrNotFound
	// ErrPermissionDenied is returned when the acting user is not the campaign's author.
	ErrPermissionDenied = errors.New("permission denied")
)

type CampaignService struct {
	campaigns repository.Campaigns
	activity  *activityRecorder
	now       func() time.Time
}

func NewCampaignService(campaigns repository.Campaigns, activity *activityRecorder) *CampaignService {
	return &CampaignService{campaigns: campaigns, activity: activity, now: time.Now}
}

func (s *CampaignService) List(ctx context.Context) ([]models.Campaign, error) {
	return s.campaigns.List(ctx)
}

func (s *CampaignService) Get(ctx context.Context, id string) (models.Campaign, error) {
	return s.campaigns.Get(ctx, id)
}

// Create stores a new campaign authored by actorID and returns it with its id and modify date.
func (s *CampaignService) Create(ctx context.Context, actorID int, f models.CampaignFields) (models.Campaign, error) {
	if actorID <= 0 {
		return models.Campaign{}, ErrPermissionDenied
	}
	c := models.Campaign{
		ID:             uuid.NewString(),
		AuthorID:       actorID,
		ModifyDate:     s.now().UTC(),
		CampaignFields: f,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return models.Campaign{}, err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityCampaignCreated,
		ActorID:     actorID,
		Subject:     c.ID,
		Description: fmt.Sprintf("campaign for %s created", f.CandidateName),
	})
	return c, nil
}

// GetForEdit loads a campaign for its author. Anyone else gets ErrPermissionDenied.
func (s *CampaignService) GetForEdit(ctx context.Context, actorID int, id string) (models.Campaign, error) {
	c, err := s.campaigns.Get(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if !c.IsAuthor(actorID) {
		return models.Campaign{}, ErrPermissionDenied
	}
	return c, nil
}

// Update replaces the editable fields and bumps the modify date. The author never changes.
func (s *CampaignService) Update(ctx context.Context, actorID int, id string, f models.CampaignFields) error {
	if _, err := s.GetForEdit(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.campaigns.Update(ctx, id, f, s.now().UTC()); err != nil {
		return err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityCampaignUpdated,
		ActorID:     actorID,
		Subject:     id,
		Description: fmt.Sprintf("campaign for %s updated", f.CandidateName),
	})
	return nil
}

// Delete removes the campaign if actorID is its author.
func (s *CampaignService) Delete(ctx context.Context, actorID int, id string) error {
	c, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityCampaignDeleted,
		ActorID:     actorID,
		Subject:     id,
		Description: fmt.Sprintf("campaign for %s deleted", c.CandidateName),
	})
	return nil
}
