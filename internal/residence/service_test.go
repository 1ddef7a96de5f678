package residence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"casapio.org/internal/auth"
)

// memStore is an in-memory Store used by the service tests.
type memStore struct {
	accounts       map[string]*Account
	profiles       map[string]*Profile
	guests         []*Guest
	accommodations []*Accommodation
	requests       map[string]*Request
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*Account),
		profiles: make(map[string]*Profile),
		requests: make(map[string]*Request),
	}
}

func (m *memStore) Register(_ context.Context, a *Account, p *Profile) error {
	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return fmt.Errorf("%w: email already used", ErrConflict)
		}
	}
	cp := *a
	m.accounts[a.ID] = &cp
	pp := *p
	m.profiles[p.AccountID] = &pp
	return nil
}

func (m *memStore) Accounts() AccountStore             { return m }
func (m *memStore) Profiles() ProfileStore             { return m }
func (m *memStore) Guests() GuestStore                 { return memGuests{m} }
func (m *memStore) Accommodations() AccommodationStore { return memAccommodations{m} }
func (m *memStore) Requests() RequestStore             { return memRequests{m} }

func (m *memStore) Find(_ context.Context, id string) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) List(_ context.Context, limit, offset int) ([]*Account, int, error) {
	var all []*Account
	for _, a := range m.accounts {
		cp := *a
		all = append(all, &cp)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id, hash string) error {
	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (m *memStore) SetActive(_ context.Context, id string, active bool) error {
	a, ok := m.accounts[id]
	if !ok || a.Active == active {
		return ErrNotFound
	}
	a.Active = active
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *memStore) FindByAccount(_ context.Context, accountID string) (*Profile, error) {
	p, ok := m.profiles[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, p *Profile) error {
	if _, ok := m.profiles[p.AccountID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.profiles[p.AccountID] = &cp
	return nil
}

type memGuests struct{ m *memStore }

func (g memGuests) Create(_ context.Context, guest *Guest) error {
	cp := *guest
	g.m.guests = append(g.m.guests, &cp)
	return nil
}

func (g memGuests) List(_ context.Context) ([]*Guest, error) { return g.m.guests, nil }

type memAccommodations struct{ m *memStore }

func (a memAccommodations) Create(_ context.Context, acc *Accommodation) error {
	cp := *acc
	a.m.accommodations = append(a.m.accommodations, &cp)
	return nil
}

func (a memAccommodations) List(_ context.Context) ([]*Accommodation, error) {
	return a.m.accommodations, nil
}

type memRequests struct{ m *memStore }

func (r memRequests) Create(_ context.Context, req *Request) error {
	cp := *req
	r.m.requests[req.ID] = &cp
	return nil
}

func (r memRequests) List(_ context.Context, status string) ([]*Request, error) {
	var out []*Request
	for _, req := range r.m.requests {
		if status == "" || req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memRequests) Close(_ context.Context, id string, at time.Time) error {
	req, ok := r.m.requests[id]
	if !ok || req.Status != RequestStatusOpen {
		return ErrNotFound
	}
	req.Status = RequestStatusClosed
	req.ClosedAt = &at
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func register(t *testing.T, svc *Service) *Account {
	t.Helper()
	account, err := svc.Register(context.Background(), "maria@example.com", "Str0ngpass", auth.RoleCommon, Profile{
		FullName:  "Maria Souza",
		Birthdate: "1990-04-12",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return account
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	account := register(t, svc)

	if account.Email != "maria@example.com" {
		t.Fatalf("unexpected email: %s", account.Email)
	}
	if !account.Active {
		t.Fatal("new account must be active")
	}
	if account.PasswordHash == "Str0ngpass" {
		t.Fatal("password must not be stored as plaintext")
	}

	got, err := svc.Authenticate(context.Background(), "Maria@Example.com", "Str0ngpass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != account.ID {
		t.Fatalf("unexpected account: %s", got.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), "maria@example.com", "An0therPass", auth.RoleCommon, Profile{
		FullName: "Maria Souza",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService(t)
	cases := []string{
		"Short1",          // too short
		"alllowercase1",   // no uppercase
		"Maria1990pass",   // contains owner name
		"Ab1990-04-12xyz", // contains birthdate
	}
	for _, password := range cases {
		_, err := svc.Register(context.Background(), "maria@example.com", password, auth.RoleCommon, Profile{
			FullName:  "Maria",
			Birthdate: "1990-04-12",
		})
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", password, err)
		}
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, store := newTestService(t)
	account := register(t, svc)

	if _, err := svc.Authenticate(context.Background(), "maria@example.com", "WrongPass1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "Str0ngpass"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", err)
	}

	store.accounts[account.ID].Active = false
	if _, err := svc.Authenticate(context.Background(), "maria@example.com", "Str0ngpass"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("inactive account: expected ErrUnauthorized, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, store := newTestService(t)
	account := register(t, svc)

	if err := svc.ChangePassword(context.Background(), account.ID, "WrongPass1", "NewPassw0rd"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong current password: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), account.ID, "Str0ngpass", "MariaSouza1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("policy violation: expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), account.ID, "Str0ngpass", "NewPassw0rd"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if err := auth.VerifyPassword(store.accounts[account.ID].PasswordHash, "NewPassw0rd"); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestSetAccountActiveToggle(t *testing.T) {
	svc, _ := newTestService(t)
	account := register(t, svc)

	if err := svc.SetAccountActive(context.Background(), account.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("already active: expected ErrNotFound, got %v", err)
	}
	if err := svc.SetAccountActive(context.Background(), account.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := svc.SetAccountActive(context.Background(), account.ID, true); err != nil {
		t.Fatalf("activate: %v", err)
	}
}

func TestCreateAccommodationOccupant(t *testing.T) {
	svc, _ := newTestService(t)
	start := time.Now().UTC()

	if _, err := svc.CreateAccommodation(context.Background(), &Accommodation{Room: "12A", StartsOn: start}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("no occupant: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateAccommodation(context.Background(), &Accommodation{
		Room: "12A", StartsOn: start, AccountID: "a-1", GuestID: "g-1",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("both occupants: expected ErrInvalidInput, got %v", err)
	}
	created, err := svc.CreateAccommodation(context.Background(), &Accommodation{
		Room: "12A", StartsOn: start, AccountID: "a-1",
	})
	if err != nil {
		t.Fatalf("CreateAccommodation: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestRequestLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	req, err := svc.CreateRequest(context.Background(), "a-1", "maintenance", "leaking sink")
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.Status != RequestStatusOpen {
		t.Fatalf("unexpected status: %s", req.Status)
	}

	open, err := svc.ListRequests(context.Background(), RequestStatusOpen)
	if err != nil || len(open) != 1 {
		t.Fatalf("expected one open request, got %d (%v)", len(open), err)
	}

	if err := svc.CloseRequest(context.Background(), req.ID); err != nil {
		t.Fatalf("CloseRequest: %v", err)
	}
	if err := svc.CloseRequest(context.Background(), req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second close: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ListRequests(context.Background(), "bogus"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
