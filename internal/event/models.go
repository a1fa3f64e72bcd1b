package event

import "time"

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Discipline  string    `json:"discipline"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Attendee struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}
