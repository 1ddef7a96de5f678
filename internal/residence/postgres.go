package residence

import (
	"context"
	"database/sql"
	"time"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Accounts() AccountStore             { return &accountStore{db: s.db} }
func (s *PGStore) Profiles() ProfileStore             { return &profileStore{db: s.db} }
func (s *PGStore) Guests() GuestStore                 { return &guestStore{db: s.db} }
func (s *PGStore) Accommodations() AccommodationStore { return &accommodationStore{db: s.db} }
func (s *PGStore) Requests() RequestStore             { return &requestStore{db: s.db} }

// Register inserts the account and its profile in one transaction so a
// failure on either statement leaves no partial credential record.
func (s *PGStore) Register(ctx context.Context, a *Account, p *Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`insert into accounts(id, email, password_hash, role, active) values($1,$2,$3,$4,$5)`,
		a.ID, a.Email, a.PasswordHash, string(a.Role), a.Active,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`insert into profiles(account_id, full_name, birthdate, gender, occupation, document_number, document_type, avatar_url)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.AccountID, p.FullName, nullableDate(p.Birthdate), p.Gender, p.Occupation,
		p.DocumentNumber, p.DocumentType, p.AvatarURL,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func nullableDate(iso string) any {
	if iso == "" {
		return nil
	}
	return iso
}

// Account store -------------------------------------------------------
type accountStore struct{ db *sql.DB }

const accountColumns = `id, email, password_hash, role, active, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *accountStore) Find(ctx context.Context, id string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where id=$1`, id)
	return scanAccount(row)
}

func (s *accountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where email=$1`, email)
	return scanAccount(row)
}

func (s *accountStore) List(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `select count(*) from accounts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`select `+accountColumns+` from accounts order by created_at asc limit $1 offset $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (s *accountStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`update accounts set password_hash=$2, updated_at=now() where id=$1`, id, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *accountStore) SetActive(ctx context.Context, id string, active bool) error {
	// The active <> $2 guard makes a repeated toggle report ErrNotFound,
	// matching the "not found or already active" contract.
	res, err := s.db.ExecContext(ctx,
		`update accounts set active=$2, updated_at=now() where id=$1 and active <> $2`, id, active)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from accounts where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Profile store -------------------------------------------------------
type profileStore struct{ db *sql.DB }

func (s *profileStore) FindByAccount(ctx context.Context, accountID string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`select account_id, full_name, birthdate, gender, occupation, document_number, document_type, avatar_url
		 from profiles where account_id=$1`, accountID)
	var (
		p  Profile
		bd sql.NullTime
	)
	if err := row.Scan(&p.AccountID, &p.FullName, &bd, &p.Gender, &p.Occupation,
		&p.DocumentNumber, &p.DocumentType, &p.AvatarURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bd.Valid {
		p.Birthdate = bd.Time.Format(birthdateLayout)
	}
	return &p, nil
}

func (s *profileStore) Update(ctx context.Context, p *Profile) error {
	res, err := s.db.ExecContext(ctx,
		`update profiles set full_name=$2, birthdate=$3, gender=$4, occupation=$5,
		 document_number=$6, document_type=$7, avatar_url=$8 where account_id=$1`,
		p.AccountID, p.FullName, nullableDate(p.Birthdate), p.Gender, p.Occupation,
		p.DocumentNumber, p.DocumentType, p.AvatarURL)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Guest store ---------------------------------------------------------
type guestStore struct{ db *sql.DB }

func (s *guestStore) Create(ctx context.Context, g *Guest) error {
	_, err := s.db.ExecContext(ctx,
		`insert into guests(id, host_account_id, full_name, arrival, departure, notes, created_at)
		 values($1,$2,$3,$4,$5,$6,$7)`,
		g.ID, g.HostAccountID, g.FullName, g.Arrival, g.Departure, g.Notes, g.CreatedAt)
	return err
}

func (s *guestStore) List(ctx context.Context) ([]*Guest, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, host_account_id, full_name, arrival, departure, notes, created_at
		 from guests order by arrival asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.HostAccountID, &g.FullName, &g.Arrival, &g.Departure, &g.Notes, &g.CreatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, &g)
	}
	return guests, rows.Err()
}

// Accommodation store -------------------------------------------------
type accommodationStore struct{ db *sql.DB }

func (s *accommodationStore) Create(ctx context.Context, a *Accommodation) error {
	var accountID, guestID any
	if a.AccountID != "" {
		accountID = a.AccountID
	}
	if a.GuestID != "" {
		guestID = a.GuestID
	}
	var endsOn any
	if !a.EndsOn.IsZero() {
		endsOn = a.EndsOn
	}
	_, err := s.db.ExecContext(ctx,
		`insert into accommodations(id, account_id, guest_id, room, starts_on, ends_on, created_at)
		 values($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, accountID, guestID, a.Room, a.StartsOn, endsOn, a.CreatedAt)
	return err
}

func (s *accommodationStore) List(ctx context.Context) ([]*Accommodation, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, account_id, guest_id, room, starts_on, ends_on, created_at
		 from accommodations order by starts_on asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Accommodation
	for rows.Next() {
		var (
			a         Accommodation
			accountID sql.NullString
			guestID   sql.NullString
			endsOn    sql.NullTime
		)
		if err := rows.Scan(&a.ID, &accountID, &guestID, &a.Room, &a.StartsOn, &endsOn, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.AccountID = accountID.String
		a.GuestID = guestID.String
		if endsOn.Valid {
			a.EndsOn = endsOn.Time
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// Request store -------------------------------------------------------
type requestStore struct{ db *sql.DB }

func (s *requestStore) Create(ctx context.Context, r *Request) error {
	_, err := s.db.ExecContext(ctx,
		`insert into requests(id, account_id, kind, body, status, created_at)
		 values($1,$2,$3,$4,$5,$6)`,
		r.ID, r.AccountID, r.Kind, r.Body, r.Status, r.CreatedAt)
	return err
}

func (s *requestStore) List(ctx context.Context, status string) ([]*Request, error) {
	query := `select id, account_id, kind, body, status, created_at, closed_at from requests`
	args := []any{}
	if status != "" {
		query += ` where status=$1`
		args = append(args, status)
	}
	query += ` order by created_at asc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Request
	for rows.Next() {
		var (
			r        Request
			closedAt sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.AccountID, &r.Kind, &r.Body, &r.Status, &r.CreatedAt, &closedAt); err != nil {
			return nil, err
		}
		if closedAt.Valid {
			t := closedAt.Time
			r.ClosedAt = &t
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}

func (s *requestStore) Close(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`update requests set status=$2, closed_at=$3 where id=$1 and status=$4`,
		id, RequestStatusClosed, at, RequestStatusOpen)
	if err != nil {
		return err
	}
	return requireRow(res)
}
