package models

import "time"

// RSVP status values. Cancellation is a status transition, never a delete.
const (
	StatusAttending = "attending"
	StatusCancelled = "cancelled"
)

type User struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// UserSummary is the password-free shape exposed on read paths and
// attached to the request context by the auth middleware.
type UserSummary struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Event struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Date        string    `json:"date" bson:"date"`
	CreatedBy   string    `json:"-" bson:"createdBy"` // owner user id, immutable
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EventView is an Event with its owner summarized, matching the API's
// read shape where createdBy is an object rather than a bare id.
type EventView struct {
	Event
	Owner UserSummary `json:"createdBy"`
}

// EventUpdate carries a partial update. A nil field keeps the stored
// value; a present-but-empty field is rejected upstream.
type EventUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

type RSVP struct {
	ID        string    `json:"id" bson:"id"`
	Event     string    `json:"event" bson:"event"`
	User      string    `json:"-" bson:"user"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Attendee is an attending RSVP row with the user summarized.
type Attendee struct {
	RSVP
	User UserSummary `json:"user"`
}

type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id string) (User, error)
	GetByIDs(ids []string) (map[string]User, error)
}

type EventRepository interface {
	GetAll() ([]Event, error)
	GetByID(id string) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id string) error
}

type RSVPRepository interface {
	// Upsert atomically creates or updates the (event, user) row's
	// status; the unique index on the pair makes it race-safe.
	Upsert(eventID, userID, status string) (RSVP, error)
	// SetStatus updates an existing row in place; ErrNotFound when the
	// pair has no row yet.
	SetStatus(eventID, userID, status string) (RSVP, error)
	ListAttending(eventID string) ([]RSVP, error)
}
