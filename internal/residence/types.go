package residence

import (
	"time"

	"casapio.org/internal/auth"
)

// Account is a credential record. The password hash never serializes.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the personal record attached to an account.
// Birthdate uses the ISO date form (2006-01-02).
type Profile struct {
	AccountID      string `json:"account_id"`
	FullName       string `json:"full_name"`
	Birthdate      string `json:"birthdate"`
	Gender         string `json:"gender,omitempty"`
	Occupation     string `json:"occupation,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	DocumentType   string `json:"document_type,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

// Guest is a visitor hosted by a resident account.
type Guest struct {
	ID            string    `json:"id"`
	HostAccountID string    `json:"host_account_id"`
	FullName      string    `json:"full_name"`
	Arrival       time.Time `json:"arrival"`
	Departure     time.Time `json:"departure"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Accommodation assigns a room to exactly one occupant, either a
// resident account or a guest.
type Accommodation struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id,omitempty"`
	GuestID   string    `json:"guest_id,omitempty"`
	Room      string    `json:"room"`
	StartsOn  time.Time `json:"starts_on"`
	EndsOn    time.Time `json:"ends_on"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RequestStatusOpen   = "open"
	RequestStatusClosed = "closed"
)

// Request is an item in the resident request queue.
type Request struct {
	ID        string     `json:"id"`
	AccountID string     `json:"account_id"`
	Kind      string     `json:"kind"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}
