package residence

import (
	"context"
	"time"
)

// Store describes persistence operations required by the residence domain.
type Store interface {
	// Register creates the account and its profile atomically: either
	// both rows commit or neither does.
	Register(ctx context.Context, a *Account, p *Profile) error

	Accounts() AccountStore
	Profiles() ProfileStore
	Guests() GuestStore
	Accommodations() AccommodationStore
	Requests() RequestStore
}

// AccountStore manages credential records.
type AccountStore interface {
	Find(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// List returns a page of accounts plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Account, int, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetActive toggles the active flag; ErrNotFound when no row changed.
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore manages personal records.
type ProfileStore interface {
	FindByAccount(ctx context.Context, accountID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

// GuestStore manages visitor records.
type GuestStore interface {
	Create(ctx context.Context, g *Guest) error
	List(ctx context.Context) ([]*Guest, error)
}

// AccommodationStore manages room assignments.
type AccommodationStore interface {
	Create(ctx context.Context, a *Accommodation) error
	List(ctx context.Context) ([]*Accommodation, error)
}

// RequestStore manages the resident request queue.
type RequestStore interface {
	Create(ctx context.Context, r *Request) error
	// List filters by status when status is non-empty.
	List(ctx context.Context, status string) ([]*Request, error)
	Close(ctx context.Context, id string, at time.Time) error
}
