package httpapi

import (
	"net/http"
	"time"

	"casapio.org/internal/audit"
	"casapio.org/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      auth.Role `json:"role"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	account, err := a.residence.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(account.ID, account.Role)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"account_id": account.ID,
		"role":       string(account.Role),
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      account.Role,
	})
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	accountID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.residence.ChangePassword(r.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.password.change", map[string]any{
		"account_id": accountID,
	})

	w.WriteHeader(http.StatusNoContent)
}
