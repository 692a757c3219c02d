package service

import (
	"context"
	"time"

	"campaign_forum/internal/forms"
	"campaign_forum/internal/logger"
	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"
)

type Authorization interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	IssueToken(userID int, remember bool) (token string, expires time.Time, err error)
	ParseToken(accessToken string) (int, error)
}

// Accounts covers registration and the signed-in user's own profile.
type Accounts interface {
	CheckRegistrationUniqueness(ctx context.Context, username, email string) (forms.Errors, []string, error)
	Register(ctx context.Context, f forms.Registration) (int, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, actorID int, f forms.Profile) error
	ChangePassword(ctx context.Context, actorID int, newPassword string) error
}

// Campaigns is the campaign CRUD surface. Reads are open to anyone; Update and Delete are
// reserved to the campaign's author and check that before touching the store.
type Campaigns interface {
	List(ctx context.Context) ([]models.Campaign, error)
	Get(ctx context.Context, id string) (models.Campaign, error)
	Create(ctx context.Context, actorID int, f models.CampaignFields) (models.Campaign, error)
	GetForEdit(ctx context.Context, actorID int, id string) (models.Campaign, error)
	Update(ctx context.Context, actorID int, id string, f models.CampaignFields) error
	Delete(ctx context.Context, actorID int, id string) error
}

// ActivityLog exposes the append-only audit trail with filtering access.
type ActivityLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Accounts
	Campaigns
	ActivityLog
}

// AuthConfig carries token signing settings.
type AuthConfig struct {
	SigningKey  string
	TokenTTL    time.Duration
	RememberTTL time.Duration
}

// NewService wires the repository layer into concrete services. log may be nil.
func NewService(repos *repository.Repository, auth AuthConfig, log *logger.Logger) *Service {
	rec := newActivityRecorder(repos.Activity, log.Named("activity"))
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		Accounts:      NewAccountService(repos.Users, rec),
		Campaigns:     NewCampaignService(repos.Campaigns, rec),
		ActivityLog:   NewActivityLogService(repos.Activity),
	}
}
