package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/icutech/auth-gateway/internal/api/response"
	"github.com/icutech/auth-gateway/internal/domain"
	"github.com/icutech/auth-gateway/internal/soap"
	"github.com/icutech/auth-gateway/internal/validate"
	"github.com/rs/zerolog/log"
)

var structValidate = validator.New()

// Fixed sanitized message for upstream failures; raw upstream details stay in
// the logs.
const soapFailureMessage = "internal server error while contacting the authentication service"

// AuthHandler exposes the login and registration endpoints backed by the
// SOAP gateway client.
type AuthHandler struct {
	client soap.AuthClient
}

// NewAuthHandler creates an auth handler around client.
func NewAuthHandler(client soap.AuthClient) *AuthHandler {
	return &AuthHandler{client: client}
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Entity  any    `json:"entity"`
}

type registerResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	CreatedCustomerID string `json:"createdCustomerId"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := structValidate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	log.Info().Str("login", input.Login).Msg("Login attempt")

	result, err := h.client.Login(r.Context(), input.Login, input.Password)
	if err != nil {
		writeClientError(w, err)
		return
	}

	if !result.Success {
		log.Warn().Str("login", input.Login).Str("message", result.Message).Msg("Login rejected")
		response.Unauthorized(w, result.Message)
		return
	}

	response.OK(w, loginResponse{
		Success: true,
		Message: result.Message,
		Entity:  result.EntityDetails,
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := structValidate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	if ok, msg := validate.Username(input.Login); !ok {
		response.BadRequest(w, msg)
		return
	}
	if ok, msg := validate.Password(input.Password); !ok {
		response.BadRequest(w, msg)
		return
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if ok, msg := validate.Email(*input.Email, false); !ok {
			response.BadRequest(w, msg)
			return
		}
	}

	log.Info().Str("login", input.Login).Msg("Registration attempt")

	result, err := h.client.Register(r.Context(), input)
	if err != nil {
		writeClientError(w, err)
		return
	}

	if !result.Success {
		log.Warn().Str("login", input.Login).Str("message", result.Message).Msg("Registration rejected")
		response.BadRequest(w, result.Message)
		return
	}

	log.Info().Str("login", input.Login).Str("customer_id", result.CreatedCustomerID).Msg("Registration successful")
	response.OK(w, registerResponse{
		Success:           true,
		Message:           result.Message,
		CreatedCustomerID: result.CreatedCustomerID,
	})
}

// writeClientError maps gateway client failures to HTTP statuses: caller
// errors become 400, everything upstream-related becomes a sanitized 500.
func writeClientError(w http.ResponseWriter, err error) {
	if soap.Kind(err) == soap.KindInvalidArgument {
		response.BadRequest(w, err.Error())
		return
	}
	response.InternalError(w, soapFailureMessage)
}

func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "max":
			parts = append(parts, field+" must be at most "+e.Param()+" characters")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
