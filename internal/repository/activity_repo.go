package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"campaign_forum/internal/models"

	"github.com/google/uuid"
)

// activityTimeLayout keeps stored timestamps lexically ordered so range filters work on TEXT.
const activityTimeLayout = "2006-01-02 15:04:05.000000"

const (
	insertActivitySQL = `
		INSERT INTO activity_events (id, occurred_at, type, actor_id, subject, message, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectActivitySQL = `SELECT id, occurred_at, type, actor_id, subject, message, meta FROM activity_events`
)

type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite { return &ActivitySQLite{db: db} }

var _ Activity = (*ActivitySQLite)(nil)

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *ActivitySQLite) Append(ctx context.Context, e models.ActivityEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		e.EventID,
		e.OccurredAt.Format(activityTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.ActorID,
		e.Subject,
		e.Description,
		metaPtr,
	)
	return err
}

// List returns events matching q, oldest first.
func (r *ActivitySQLite) List(ctx context.Context, q ActivityQuery) ([]models.ActivityEvent, error) {
	conds, args := q.where()

	query := selectActivitySQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ActivityEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.ActivityEvent
			when    string
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &when, &ev.Type, &ev.ActorID, &ev.Subject, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt, err = time.ParseInLocation(activityTimeLayout, when, time.UTC)
		if err != nil {
			return nil, err
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// where renders the filter as SQL conditions in a fixed column order.
func (q ActivityQuery) where() ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(activityTimeLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(activityTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if q.ActorID > 0 {
		conds = append(conds, "actor_id = ?")
		args = append(args, q.ActorID)
	}
	if subject := strings.TrimSpace(q.Subject); subject != "" {
		conds = append(conds, "subject = ?")
		args = append(args, subject)
	}
	return conds, args
}
