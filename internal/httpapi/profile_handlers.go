package httpapi

import (
	"net/http"

	"casapio.org/internal/auth"
	"casapio.org/internal/residence"
)

type updateProfileRequest struct {
	FullName       string `json:"full_name" validate:"required"`
	Birthdate      string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender"`
	Occupation     string `json:"occupation"`
	DocumentNumber string `json:"document_number"`
	DocumentType   string `json:"document_type"`
	AvatarURL      string `json:"avatar_url" validate:"omitempty,url"`
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getProfile(w, r, accountID)
	case http.MethodPut:
		a.updateProfile(w, r, accountID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) getProfile(w http.ResponseWriter, r *http.Request, accountID string) {
	p, err := a.residence.Profile(r.Context(), accountID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request, accountID string) {
	var req updateProfileRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p := &residence.Profile{
		AccountID:      accountID,
		FullName:       req.FullName,
		Birthdate:      req.Birthdate,
		Gender:         req.Gender,
		Occupation:     req.Occupation,
		DocumentNumber: req.DocumentNumber,
		DocumentType:   req.DocumentType,
		AvatarURL:      req.AvatarURL,
	}
	if err := a.residence.UpdateProfile(r.Context(), p); err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
