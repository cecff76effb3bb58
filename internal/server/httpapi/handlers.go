package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/wholesaleos/backend/internal/common"
	"github.com/wholesaleos/backend/internal/server/auth"
	"github.com/wholesaleos/backend/internal/server/models"
)

const minPasswordLength = 8

type userResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

type signupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := s.accounts.CreateUser(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		s.logger.Error(r.Context(), "signup failed", "error", err, "request_id", requestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.accounts.VerifyPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Warn(r.Context(), "failed login attempt",
				"request_id", requestID(r.Context()))
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err, "request_id", requestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": toUserResponse(user)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := s.accounts.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		s.logger.Error(r.Context(), "me lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

type updateNameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleUpdateName(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.accounts.UpdateUserName(r.Context(), userID, req.Name); err != nil {
		s.logger.Error(r.Context(), "name update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	if err := s.accounts.UpdateUserPassword(r.Context(), userID, req.Password); err != nil {
		s.logger.Error(r.Context(), "password update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type preferencesResponse struct {
	AlertThreshold  int  `json:"alert_threshold"`
	EmailAlerts     bool `json:"email_alerts"`
	QuietHoursStart *int `json:"quiet_hours_start"`
	QuietHoursEnd   *int `json:"quiet_hours_end"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	prefs, err := s.accounts.GetUserPreferences(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "preferences not found")
			return
		}
		s.logger.Error(r.Context(), "preferences lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, preferencesResponse{
		AlertThreshold:  prefs.AlertThreshold,
		EmailAlerts:     prefs.EmailAlerts,
		QuietHoursStart: prefs.QuietHoursStart,
		QuietHoursEnd:   prefs.QuietHoursEnd,
	})
}

// optionalHour decodes a JSON field that may be absent, null, or an integer.
// Absent leaves the column untouched; null clears it.
type optionalHour struct {
	set   bool
	value *int
}

func (o *optionalHour) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

type preferencesPatchRequest struct {
	AlertThreshold  *int         `json:"alert_threshold"`
	EmailAlerts     *bool        `json:"email_alerts"`
	QuietHoursStart optionalHour `json:"quiet_hours_start"`
	QuietHoursEnd   optionalHour `json:"quiet_hours_end"`
}

func validHour(o optionalHour) bool {
	return o.value == nil || (*o.value >= 0 && *o.value <= 23)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req preferencesPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.AlertThreshold != nil && (*req.AlertThreshold < 50 || *req.AlertThreshold > 100) {
		writeError(w, http.StatusBadRequest, "alert_threshold must be between 50 and 100")
		return
	}
	if !validHour(req.QuietHoursStart) || !validHour(req.QuietHoursEnd) {
		writeError(w, http.StatusBadRequest, "quiet hours must be between 0 and 23")
		return
	}

	upd := models.PreferencesUpdate{
		AlertThreshold:  req.AlertThreshold,
		EmailAlerts:     req.EmailAlerts,
		QuietHoursStart: models.OptionalHour{Set: req.QuietHoursStart.set, Value: req.QuietHoursStart.value},
		QuietHoursEnd:   models.OptionalHour{Set: req.QuietHoursEnd.set, Value: req.QuietHoursEnd.value},
	}

	if err := s.accounts.UpdateUserPreferences(r.Context(), userID, upd); err != nil {
		s.logger.Error(r.Context(), "preferences update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := s.accounts.DeleteUser(r.Context(), userID); err != nil {
		s.logger.Error(r.Context(), "account deletion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
