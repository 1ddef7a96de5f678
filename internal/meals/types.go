package meals

import "time"

// PersonType says whose meal record this is. Residents are accounts,
// guests come from the guest register, invitees are one-off visitors.
type PersonType string

const (
	PersonResident PersonType = "resident"
	PersonGuest    PersonType = "guest"
	PersonInvitee  PersonType = "invitee"
)

func (p PersonType) Valid() bool {
	switch p {
	case PersonResident, PersonGuest, PersonInvitee:
		return true
	}
	return false
}

// Record is the per-person, per-day meal plan. A week submission is a
// batch of these keyed by (PersonRef, Date).
type Record struct {
	PersonType   PersonType `json:"person_type"`
	PersonRef    string     `json:"person_ref"`
	Date         time.Time  `json:"date"`
	LunchAtSite  bool       `json:"lunch_at_site"`
	LunchToGo    bool       `json:"lunch_to_go"`
	DinnerAtSite bool       `json:"dinner_at_site"`
	Notes        string     `json:"notes,omitempty"`
}
