package residence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casapio.org/internal/auth"
	"casapio.org/internal/ids"
)

const birthdateLayout = "2006-01-02"

// Service provides the account, profile, guest, accommodation and
// request operations on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("residence: store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register creates an account with its profile. The password must pass
// the policy against the profile's name and birthdate; a duplicate
// email fails with ErrConflict. Both rows commit in one transaction.
func (s *Service) Register(ctx context.Context, email, password string, role auth.Role, profile Profile) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	profile.FullName = strings.TrimSpace(profile.FullName)
	if profile.FullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}
	if profile.Birthdate != "" {
		if _, err := time.Parse(birthdateLayout, profile.Birthdate); err != nil {
			return nil, fmt.Errorf("%w: birthdate must use the %s form", ErrInvalidInput, birthdateLayout)
		}
	}
	if !auth.IsPasswordValid(password, profile.FullName, profile.Birthdate) {
		return nil, ErrWeakPassword
	}

	if _, err := s.store.Accounts().FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already used", ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	account := &Account{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile.AccountID = account.ID
	if err := s.store.Register(ctx, account, &profile); err != nil {
		return nil, err
	}
	return account, nil
}

// Authenticate checks email and password against the stored credential
// record. Unknown email, inactive account and password mismatch all
// collapse into ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}
	account, err := s.store.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !account.Active {
		return nil, ErrUnauthorized
	}
	if err := auth.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, ErrUnauthorized
	}
	return account, nil
}

// ChangePassword verifies the current password, checks the replacement
// against the policy and stores the new hash.
func (s *Service) ChangePassword(ctx context.Context, accountID, current, next string) error {
	account, err := s.store.Accounts().Find(ctx, accountID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(account.PasswordHash, current); err != nil {
		return ErrUnauthorized
	}

	var ownerName, birthdate string
	if profile, err := s.store.Profiles().FindByAccount(ctx, accountID); err == nil {
		ownerName = profile.FullName
		birthdate = profile.Birthdate
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if !auth.IsPasswordValid(next, ownerName, birthdate) {
		return ErrWeakPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.store.Accounts().UpdatePassword(ctx, accountID, hash)
}

// SetAccountActive toggles the active flag of an account.
func (s *Service) SetAccountActive(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	return s.store.Accounts().SetActive(ctx, id, active)
}

// DeleteAccount removes a credential record.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	return s.store.Accounts().Delete(ctx, id)
}

// ListAccounts returns a page of accounts plus the total count.
func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	if limit <= 0 {
		limit = 8
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Accounts().List(ctx, limit, offset)
}

// Profile returns the personal record of an account.
func (s *Service) Profile(ctx context.Context, accountID string) (*Profile, error) {
	return s.store.Profiles().FindByAccount(ctx, accountID)
}

// UpdateProfile replaces the mutable fields of a profile.
func (s *Service) UpdateProfile(ctx context.Context, p *Profile) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.AccountID == "" || p.FullName == "" {
		return fmt.Errorf("%w: account id and full_name are required", ErrInvalidInput)
	}
	if p.Birthdate != "" {
		if _, err := time.Parse(birthdateLayout, p.Birthdate); err != nil {
			return fmt.Errorf("%w: birthdate must use the %s form", ErrInvalidInput, birthdateLayout)
		}
	}
	return s.store.Profiles().Update(ctx, p)
}

// CreateGuest registers a visitor hosted by an account.
func (s *Service) CreateGuest(ctx context.Context, g *Guest) (*Guest, error) {
	g.FullName = strings.TrimSpace(g.FullName)
	if g.HostAccountID == "" || g.FullName == "" {
		return nil, fmt.Errorf("%w: host account and full_name are required", ErrInvalidInput)
	}
	if g.Arrival.IsZero() || g.Departure.IsZero() || !g.Departure.After(g.Arrival) {
		return nil, fmt.Errorf("%w: departure must follow arrival", ErrInvalidInput)
	}
	g.ID = ids.New()
	g.CreatedAt = s.now().UTC()
	if err := s.store.Guests().Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGuests returns all visitor records.
func (s *Service) ListGuests(ctx context.Context) ([]*Guest, error) {
	return s.store.Guests().List(ctx)
}

// CreateAccommodation assigns a room to exactly one occupant.
func (s *Service) CreateAccommodation(ctx context.Context, a *Accommodation) (*Accommodation, error) {
	a.Room = strings.TrimSpace(a.Room)
	if a.Room == "" {
		return nil, fmt.Errorf("%w: room is required", ErrInvalidInput)
	}
	hasAccount := strings.TrimSpace(a.AccountID) != ""
	hasGuest := strings.TrimSpace(a.GuestID) != ""
	if hasAccount == hasGuest {
		return nil, fmt.Errorf("%w: exactly one of account_id or guest_id is required", ErrInvalidInput)
	}
	if a.StartsOn.IsZero() {
		return nil, fmt.Errorf("%w: starts_on is required", ErrInvalidInput)
	}
	a.ID = ids.New()
	a.CreatedAt = s.now().UTC()
	if err := s.store.Accommodations().Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccommodations returns all room assignments.
func (s *Service) ListAccommodations(ctx context.Context) ([]*Accommodation, error) {
	return s.store.Accommodations().List(ctx)
}

// CreateRequest appends an item to the resident request queue.
func (s *Service) CreateRequest(ctx context.Context, accountID, kind, body string) (*Request, error) {
	kind = strings.TrimSpace(kind)
	body = strings.TrimSpace(body)
	if accountID == "" || kind == "" || body == "" {
		return nil, fmt.Errorf("%w: kind and body are required", ErrInvalidInput)
	}
	req := &Request{
		ID:        ids.New(),
		AccountID: accountID,
		Kind:      kind,
		Body:      body,
		Status:    RequestStatusOpen,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Requests().Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests returns requests, optionally filtered by status.
func (s *Service) ListRequests(ctx context.Context, status string) ([]*Request, error) {
	status = strings.TrimSpace(strings.ToLower(status))
	if status != "" && status != RequestStatusOpen && status != RequestStatusClosed {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.store.Requests().List(ctx, status)
}

// CloseRequest marks an open request closed.
func (s *Service) CloseRequest(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}
	return s.store.Requests().Close(ctx, id, s.now().UTC())
}
