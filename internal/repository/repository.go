package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campaign_forum/internal/models"
)

// ErrNotFound is returned by by-id lookups, updates and deletes that match no row.
var ErrNotFound = errors.New("not found")

// Users stores accounts. Lookups by username/email return (nil, nil) on a miss,
// since a miss is the normal outcome of a uniqueness check.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, p ProfileUpdate) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

// ProfileUpdate carries the user-editable profile columns.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Role      string
	Image     string
}

type Campaigns interface {
	List(ctx context.Context) ([]models.Campaign, error)
	Get(ctx context.Context, id string) (models.Campaign, error)
	Create(ctx context.Context, c models.Campaign) error
	Update(ctx context.Context, id string, f models.CampaignFields, modifyDate time.Time) error
	Delete(ctx context.Context, id string) error
}

type Activity interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, q ActivityQuery) ([]models.ActivityEvent, error)
}

// ActivityQuery narrows an activity listing. Zero values mean "any".
type ActivityQuery struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Type    string
	ActorID int
	Subject string
}

type Repository struct {
	Users     Users
	Campaigns Campaigns
	Activity  Activity
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Campaigns: NewCampaignSQLite(db),
		Activity:  NewActivitySQLite(db),
	}
}
