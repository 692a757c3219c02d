package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaign_forum/internal/forms"
	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"
)

// Messages for registration conflicts.
const (
	MsgUsernameTaken = "This username is taken."
	MsgEmailTaken    = "This email address is already in use. if you have forgotten your credentials you can try to recover your account."
)

// ErrDuplicateAccount is returned by Register when the store rejects a username or email
// that passed the uniqueness check (a concurrent registration won the race).
var ErrDuplicateAccount = errors.New("account already exists")

// ConflictError carries the registration field that collided.
type ConflictError struct {
	Field string // "username" | "email"
}

func (e *ConflictError) Error() string { return e.Field + " already registered" }
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateAccount
}

// Errors converts the conflict into the form message for its field.
func (e *ConflictError) Errors() forms.Errors {
	if e.Field == "email" {
		return forms.Errors{"email": MsgEmailTaken}
	}
	return forms.Errors{"username": MsgUsernameTaken}
}

type AccountService struct {
	users    repository.Users
	activity *activityRecorder
	now      func() time.Time
}

func NewAccountService(users repository.Users, activity *activityRecorder) *AccountService {
	return &AccountService{users: users, activity: activity, now: time.Now}
}

// CheckRegistrationUniqueness looks up username and email. A hit becomes a field error; a miss is
// the success case and yields an informational notice for the page. An empty argument is not
// looked up, so callers pass "" for a field that already failed validation.
func (s *AccountService) CheckRegistrationUniqueness(ctx context.Context, username, email string) (forms.Errors, []string, error) {
	errs := forms.Errors{}
	var notices []string

	if username != "" {
		byName, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, nil, fmt.Errorf("check username: %w", err)
		}
		if byName != nil {
			errs.Add("username", MsgUsernameTaken)
		} else {
			notices = append(notices, fmt.Sprintf("%s is available.", username))
		}
	}

	if email != "" {
		byEmail, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, nil, fmt.Errorf("check email: %w", err)
		}
		if byEmail != nil {
			errs.Add("email", MsgEmailTaken)
		} else {
			notices = append(notices, fmt.Sprintf("%s is a unique email address.", email))
		}
	}
	return errs, notices, nil
}

// Register stores a new user from a validated registration form and returns its id.
func (s *AccountService) Register(ctx context.Context, f forms.Registration) (int, error) {
	hash, err := hashPassword(f.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.users.Create(ctx, models.User{
		Username:     f.Username,
		Email:        f.Email,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return 0, &ConflictError{Field: dup.Column}
		}
		return 0, err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityUserRegistered,
		ActorID:     id,
		Subject:     f.Username,
		Description: fmt.Sprintf("%s registered", f.Username),
	})
	return id, nil
}

// GetUser returns the user or ErrUserNotFound.
func (s *AccountService) GetUser(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes the acting user's own profile. There is no way to edit someone else's.
func (s *AccountService) UpdateProfile(ctx context.Context, actorID int, f forms.Profile) error {
	err := s.users.UpdateProfile(ctx, actorID, repository.ProfileUpdate{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Role:      f.Role,
		Image:     f.Image,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityProfileUpdated,
		ActorID:     actorID,
		Description: "profile updated",
		Metadata:    map[string]string{"role": f.Role},
	})
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, actorID int, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, actorID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.ActivityPasswordChanged,
		ActorID:     actorID,
		Description: "password changed",
	})
	return nil
}
