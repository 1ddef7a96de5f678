package httpapi

import (
	"net/http"
	"strings"
	"time"

	"casapio.org/internal/audit"
	"casapio.org/internal/auth"
	"casapio.org/internal/residence"
)

type registerUserRequest struct {
	Email    string               `json:"email" validate:"required,email"`
	Password string               `json:"password" validate:"required"`
	Role     string               `json:"role" validate:"required"`
	Profile  updateProfileRequest `json:"profile" validate:"required"`
}

type createGuestRequest struct {
	HostAccountID string `json:"host_account_id" validate:"required"`
	FullName      string `json:"full_name" validate:"required"`
	Arrival       string `json:"arrival" validate:"required,datetime=2006-01-02"`
	Departure     string `json:"departure" validate:"required,datetime=2006-01-02"`
	Notes         string `json:"notes"`
}

type createAccommodationRequest struct {
	AccountID string `json:"account_id"`
	GuestID   string `json:"guest_id"`
	Room      string `json:"room" validate:"required"`
	StartsOn  string `json:"starts_on" validate:"required,datetime=2006-01-02"`
	EndsOn    string `json:"ends_on" validate:"omitempty,datetime=2006-01-02"`
}

type listAccountsResponse struct {
	Items []*residence.Account `json:"items"`
	Page  Page                 `json:"pagination"`
}

// handleAdmin dispatches everything under /v1/admin/. Role enforcement
// happens in the RequireRole wrapper, not here.
func (a *API) handleAdmin(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/admin/")
	path = strings.Trim(path, "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	parts := strings.Split(path, "/")

	switch parts[0] {
	case "users":
		a.handleAdminUsers(w, r, parts[1:])
	case "guests":
		if len(parts) != 1 {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		a.handleAdminGuests(w, r)
	case "accommodations":
		if len(parts) != 1 {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		a.handleAdminAccommodations(w, r)
	case "requests":
		a.handleAdminRequests(w, r, parts[1:])
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) handleAdminUsers(w http.ResponseWriter, r *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		switch r.Method {
		case http.MethodPost:
			a.registerUser(w, r)
		case http.MethodGet:
			a.listUsers(w, r)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
	case 1:
		if r.Method != http.MethodDelete {
			methodNotAllowed(w, r, http.MethodDelete)
			return
		}
		a.deleteUser(w, r, rest[0])
	case 2:
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		switch rest[1] {
		case "activate":
			a.setUserActive(w, r, rest[0], true)
		case "deactivate":
			a.setUserActive(w, r, rest[0], false)
		default:
			writeError(w, r, http.StatusNotFound, "resource not found")
		}
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile := residence.Profile{
		FullName:       req.Profile.FullName,
		Birthdate:      req.Profile.Birthdate,
		Gender:         req.Profile.Gender,
		Occupation:     req.Profile.Occupation,
		DocumentNumber: req.Profile.DocumentNumber,
		DocumentType:   req.Profile.DocumentType,
		AvatarURL:      req.Profile.AvatarURL,
	}

	account, err := a.residence.Register(r.Context(), req.Email, req.Password, role, profile)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.auditAdmin(r, "admin.user.register", map[string]any{
		"account_id": account.ID,
		"role":       string(account.Role),
	})

	w.Header().Set("Location", "/v1/admin/users/"+account.ID)
	writeJSON(w, http.StatusCreated, account)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// A first fetch with offset 0 establishes the total; the clamped
	// page may then need a second fetch at the real offset.
	items, total, err := a.residence.ListAccounts(r.Context(), defaultPerPage, (page-1)*defaultPerPage)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	pg := paginate(total, page, defaultPerPage)
	if pg.Offset != (page-1)*defaultPerPage {
		items, _, err = a.residence.ListAccounts(r.Context(), defaultPerPage, pg.Offset)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, listAccountsResponse{Items: items, Page: pg})
}

func (a *API) setUserActive(w http.ResponseWriter, r *http.Request, id string, active bool) {
	if err := a.residence.SetAccountActive(r.Context(), id, active); err != nil {
		handleDomainError(w, r, err)
		return
	}
	event := "admin.user.deactivate"
	if active {
		event = "admin.user.activate"
	}
	a.auditAdmin(r, event, map[string]any{"account_id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request, id string) {
	if adminID, _ := auth.UserIDFromContext(r.Context()); adminID == id {
		writeError(w, r, http.StatusConflict, "cannot delete own account")
		return
	}
	if err := a.residence.DeleteAccount(r.Context(), id); err != nil {
		handleDomainError(w, r, err)
		return
	}
	a.auditAdmin(r, "admin.user.delete", map[string]any{"account_id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAdminGuests(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createGuest(w, r)
	case http.MethodGet:
		guests, err := a.residence.ListGuests(r.Context())
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": guests})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) createGuest(w http.ResponseWriter, r *http.Request) {
	var req createGuestRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	arrival, err := time.Parse(dateLayout, req.Arrival)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid arrival date")
		return
	}
	departure, err := time.Parse(dateLayout, req.Departure)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid departure date")
		return
	}

	guest, err := a.residence.CreateGuest(r.Context(), &residence.Guest{
		HostAccountID: req.HostAccountID,
		FullName:      req.FullName,
		Arrival:       arrival,
		Departure:     departure,
		Notes:         req.Notes,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.auditAdmin(r, "admin.guest.create", map[string]any{"guest_id": guest.ID})
	writeJSON(w, http.StatusCreated, guest)
}

func (a *API) handleAdminAccommodations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createAccommodation(w, r)
	case http.MethodGet:
		items, err := a.residence.ListAccommodations(r.Context())
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) createAccommodation(w http.ResponseWriter, r *http.Request) {
	var req createAccommodationRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	startsOn, err := time.Parse(dateLayout, req.StartsOn)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid starts_on date")
		return
	}
	var endsOn time.Time
	if req.EndsOn != "" {
		endsOn, err = time.Parse(dateLayout, req.EndsOn)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid ends_on date")
			return
		}
	}

	acc, err := a.residence.CreateAccommodation(r.Context(), &residence.Accommodation{
		AccountID: req.AccountID,
		GuestID:   req.GuestID,
		Room:      req.Room,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.auditAdmin(r, "admin.accommodation.create", map[string]any{
		"accommodation_id": acc.ID,
		"room":             acc.Room,
	})
	writeJSON(w, http.StatusCreated, acc)
}

func (a *API) handleAdminRequests(w http.ResponseWriter, r *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		items, err := a.residence.ListRequests(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case 2:
		if rest[1] != "close" {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		if err := a.residence.CloseRequest(r.Context(), rest[0]); err != nil {
			handleDomainError(w, r, err)
			return
		}
		a.auditAdmin(r, "admin.request.close", map[string]any{"request": rest[0]})
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) auditAdmin(r *http.Request, event string, fields map[string]any) {
	_ = audit.LogEvent(r.Context(), event, fields)
}
