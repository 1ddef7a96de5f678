package meals

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

// UpsertWeek writes the whole batch in a single statement. The unique
// key (person_ref, meal_date) turns resubmission into an update.
func (s *PGStore) UpsertWeek(ctx context.Context, records []Record) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			string(r.PersonType), r.PersonRef, r.Date,
			r.LunchAtSite, r.LunchToGo, r.DinnerAtSite, r.Notes,
		}
	}
	clause, args, err := BuildBulkUpsert(rows)
	if err != nil {
		return err
	}

	query := `insert into meal_records(person_type, person_ref, meal_date, lunch_at_site, lunch_to_go, dinner_at_site, notes)
		 values ` + clause + `
		 on conflict (person_ref, meal_date) do update set
		 person_type=excluded.person_type,
		 lunch_at_site=excluded.lunch_at_site,
		 lunch_to_go=excluded.lunch_to_go,
		 dinner_at_site=excluded.dinner_at_site,
		 notes=excluded.notes`
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *PGStore) Week(ctx context.Context, personRef string, from, to time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`select person_type, person_ref, meal_date, lunch_at_site, lunch_to_go, dinner_at_site, notes
		 from meal_records
		 where person_ref=$1 and meal_date between $2 and $3
		 order by meal_date asc`,
		personRef, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.PersonType, &r.PersonRef, &r.Date,
			&r.LunchAtSite, &r.LunchToGo, &r.DinnerAtSite, &r.Notes); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
