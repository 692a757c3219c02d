package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"campaign_forum/internal/logger"
	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"
)

type ActivityLogService struct {
	activityRepo repository.Activity
}

func NewActivityLogService(activityRepo repository.Activity) *ActivityLogService {
	return &ActivityLogService{activityRepo: activityRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errInvalidActor     = errors.New("invalid actor id")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

func (s *ActivityLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	if f.ActorID < 0 {
		return nil, errInvalidActor
	}
	return s.activityRepo.List(ctx, repository.ActivityQuery{
		From:    from,
		To:      to,
		Type:    typ,
		ActorID: f.ActorID,
		Subject: strings.TrimSpace(f.Subject),
	})
}

// activityRecorder appends audit events on behalf of the mutating services.
// The audit trail is secondary: a failed append is logged and never fails the caller.
type activityRecorder struct {
	repo repository.Activity
	log  *logger.Logger
	now  func() time.Time
}

func newActivityRecorder(repo repository.Activity, log *logger.Logger) *activityRecorder {
	return &activityRecorder{repo: repo, log: log, now: time.Now}
}

func (r *activityRecorder) record(ctx context.Context, e models.ActivityEvent) {
	if r == nil || r.repo == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = r.now().UTC()
	}
	if err := r.repo.Append(ctx, e); err != nil && r.log != nil {
		r.log.Warnw("activity_append_failed", "err", err, "type", e.Type, "actor_id", e.ActorID, "subject", e.Subject)
	}
}
