package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/icutech/auth-gateway/internal/api/response"
	"github.com/icutech/auth-gateway/internal/validate"
	"github.com/rs/zerolog/log"
)

// ProfileHandler serves the demo profile endpoints. There is no user store
// behind them; they exist to exercise the validation rules and back the demo
// frontend.
type ProfileHandler struct{}

// NewProfileHandler creates a profile handler.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

type userProfile struct {
	UserID      string    `json:"userId"`
	Login       string    `json:"login"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	FullName    string    `json:"fullName"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

type profileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Profile userProfile `json:"profile"`
}

// Get handles GET /api/profile/{userID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	log.Info().Str("user_id", userID).Msg("Fetching profile")

	response.OK(w, profileResponse{
		Success: true,
		Message: "profile retrieved",
		Profile: demoProfile(userID, "demo@example.com", "Demo", "User", time.Now().UTC().Add(-2*time.Hour)),
	})
}

// Update handles PUT /api/profile/{userID}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var input struct {
		Email     *string `json:"email"`
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if ok, msg := validate.Email(*input.Email, false); !ok {
			response.BadRequest(w, msg)
			return
		}
	}

	log.Info().Str("user_id", userID).Msg("Updating profile")

	email := valueOr(input.Email, "demo@example.com")
	first := valueOr(input.FirstName, "Demo")
	last := valueOr(input.LastName, "User")
	response.OK(w, profileResponse{
		Success: true,
		Message: "profile updated",
		Profile: demoProfile(userID, email, first, last, time.Now().UTC()),
	})
}

// ChangePassword handles POST /api/profile/{userID}/change-password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(input.CurrentPassword) == "":
		response.BadRequest(w, "current password is required")
		return
	case strings.TrimSpace(input.NewPassword) == "":
		response.BadRequest(w, "new password is required")
		return
	case input.NewPassword != input.ConfirmPassword:
		response.BadRequest(w, "new password and confirmation do not match")
		return
	case input.NewPassword == input.CurrentPassword:
		response.BadRequest(w, "new password must differ from the current one")
		return
	}

	if ok, msg := validate.Password(input.NewPassword); !ok {
		response.BadRequest(w, msg)
		return
	}

	log.Info().Str("user_id", userID).Msg("Password changed")
	response.OKMessage(w, "password changed")
}

// Delete handles DELETE /api/profile/{userID}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	log.Warn().Str("user_id", userID).Msg("Deleting account")
	response.OKMessage(w, "account deleted")
}

// CheckPasswordStrength handles POST /api/profile/check-password-strength.
func (h *ProfileHandler) CheckPasswordStrength(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	strength := validate.Strength(input.Password)
	valid, msg := validate.Password(input.Password)
	message := strength
	if !valid {
		message = msg
	}

	response.OK(w, map[string]any{
		"strength": strength,
		"isValid":  valid,
		"isStrong": validate.IsStrongPassword(input.Password),
		"message":  message,
	})
}

func demoProfile(userID, email, first, last string, lastLogin time.Time) userProfile {
	return userProfile{
		UserID:      userID,
		Login:       "demo_user",
		Email:       email,
		FirstName:   first,
		LastName:    last,
		FullName:    first + " " + last,
		CreatedAt:   time.Now().UTC().AddDate(0, -3, 0),
		LastLoginAt: lastLogin,
	}
}

func valueOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
