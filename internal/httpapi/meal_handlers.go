package httpapi

import (
	"net/http"
	"time"

	"casapio.org/internal/audit"
	"casapio.org/internal/auth"
	"casapio.org/internal/meals"
)

const dateLayout = "2006-01-02"

type mealDayRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	LunchAtSite  bool   `json:"lunch_at_site"`
	LunchToGo    bool   `json:"lunch_to_go"`
	DinnerAtSite bool   `json:"dinner_at_site"`
	Notes        string `json:"notes"`
}

type mealWeekRequest struct {
	Days []mealDayRequest `json:"days" validate:"required,min=1,max=7,dive"`
}

type mealWeekResponse struct {
	Records []meals.Record `json:"records"`
	From    string         `json:"from"`
	To      string         `json:"to"`
}

// The meal week always belongs to the authenticated resident; the
// person reference is never read from the request body.
func (a *API) handleMealWeek(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getMealWeek(w, r, accountID)
	case http.MethodPut:
		a.submitMealWeek(w, r, accountID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) getMealWeek(w http.ResponseWriter, r *http.Request, accountID string) {
	from, to, err := weekRange(r.URL.Query().Get("from"), time.Now().UTC())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := a.meals.Week(r.Context(), accountID, from, to)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mealWeekResponse{
		Records: records,
		From:    from.Format(dateLayout),
		To:      to.Format(dateLayout),
	})
}

func (a *API) submitMealWeek(w http.ResponseWriter, r *http.Request, accountID string) {
	var req mealWeekRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records := make([]meals.Record, 0, len(req.Days))
	for _, d := range req.Days {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid date "+d.Date)
			return
		}
		records = append(records, meals.Record{
			PersonType:   meals.PersonResident,
			PersonRef:    accountID,
			Date:         date,
			LunchAtSite:  d.LunchAtSite,
			LunchToGo:    d.LunchToGo,
			DinnerAtSite: d.DinnerAtSite,
			Notes:        d.Notes,
		})
	}

	if err := a.meals.SubmitWeek(r.Context(), records); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "meals.week.submit", map[string]any{
		"account_id": accountID,
		"days":       len(records),
	})

	w.WriteHeader(http.StatusNoContent)
}

// weekRange resolves the ?from= query to a monday-anchored 7-day span.
// An empty value means the week containing today.
func weekRange(raw string, now time.Time) (time.Time, time.Time, error) {
	anchor := now
	if raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		anchor = parsed
	}
	anchor = anchor.Truncate(24 * time.Hour)
	offset := (int(anchor.Weekday()) + 6) % 7
	from := anchor.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 6), nil
}
