package httpapi

import (
	"net/http"

	"casapio.org/internal/audit"
	"casapio.org/internal/auth"
)

type createRequestRequest struct {
	Kind string `json:"kind" validate:"required"`
	Body string `json:"body" validate:"required"`
}

func (a *API) handleRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	accountID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRequestRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := a.residence.CreateRequest(r.Context(), accountID, req.Kind, req.Body)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "request.create", map[string]any{
		"request": created.ID,
		"kind":    created.Kind,
	})

	w.Header().Set("Location", "/v1/admin/requests/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}
