package event

import (
	"context"
	"time"

	"backend-sparnet/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateEvent(ctx context.Context, input Event) (Event, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO events (id, title, discipline, venue, starts_at, ends_at, description, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, input.ID, input.Title, input.Discipline, input.Venue, timePtr(input.StartsAt), timePtr(input.EndsAt), input.Description, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Event{}, err
	}
	return input, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, discipline, venue, starts_at, ends_at, description, created_by, created_at
		FROM events WHERE id=$1
	`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Title, &e.Discipline, &e.Venue, &e.StartsAt, &e.EndsAt, &e.Description, &e.CreatedBy, &e.CreatedAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Upcoming returns events starting after now, soonest first, optionally
// filtered by discipline.
func (s *Service) Upcoming(ctx context.Context, discipline string) ([]Event, error) {
	query := `
		SELECT id, title, discipline, venue, starts_at, ends_at, description, created_by, created_at
		FROM events
		WHERE starts_at > now()
	`
	args := []any{}
	if discipline != "" {
		query += ` AND discipline=$1`
		args = append(args, discipline)
	}
	query += ` ORDER BY starts_at`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Discipline, &e.Venue, &e.StartsAt, &e.EndsAt, &e.Description, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *Service) Join(ctx context.Context, eventID, userID, status string) (Attendee, error) {
	if status == "" {
		status = "going"
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO event_attendees (event_id, user_id, status)
		VALUES ($1,$2,$3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET status=EXCLUDED.status
		RETURNING joined_at
	`, eventID, userID, status)
	attendee := Attendee{EventID: eventID, UserID: userID, Status: status}
	if err := row.Scan(&attendee.JoinedAt); err != nil {
		return Attendee{}, err
	}
	return attendee, nil
}

func (s *Service) Attendees(ctx context.Context, eventID string) ([]Attendee, error) {
	rows, err := s.db.Query(ctx, `
		SELECT event_id, user_id, status, joined_at
		FROM event_attendees WHERE event_id=$1
		ORDER BY joined_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []Attendee
	for rows.Next() {
		var a Attendee
		if err := rows.Scan(&a.EventID, &a.UserID, &a.Status, &a.JoinedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
