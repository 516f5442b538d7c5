package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/schemas"
)

// ErrEmailAlreadyExists indicates a staff email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates a staff account was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("staff user not found: %s", e.UserID)
}

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Code    string               `json:"code"`
	Errors  []schemas.FieldError `json:"errors,omitempty"`
}

var errBadBody = recruitment.ErrValidation.Withf("Invalid request body")

// HTTPStatus returns the status, code and client message for err. Errors it
// does not recognise are reported as a bare 500 so storage details never
// reach the client.
func HTTPStatus(err error) (int, errorBody) {
	var (
		rerr  *recruitment.Error
		verrs validator.ValidationErrors
		serr  *schemas.ValidationError
		taken *ErrEmailAlreadyExists
		creds *ErrInvalidCredentials
		staff *ErrUserNotFound
	)
	switch {
	case errors.As(err, &rerr):
		return rerr.Status, errorBody{Message: rerr.Message, Code: rerr.Code}
	case errors.As(err, &verrs):
		return http.StatusBadRequest, errorBody{Message: validationMessage(verrs), Code: recruitment.ErrValidation.Code}
	case errors.As(err, &serr):
		return http.StatusBadRequest, errorBody{Message: "Invalid application", Code: recruitment.ErrValidation.Code, Errors: serr.Errors}
	case errors.As(err, &taken):
		return http.StatusConflict, errorBody{Message: "Email is already registered", Code: "STAFF_EMAIL_EXISTS"}
	case errors.As(err, &creds):
		return http.StatusUnauthorized, errorBody{Message: "Invalid email or password", Code: "INVALID_CREDENTIALS"}
	case errors.As(err, &staff):
		return http.StatusNotFound, errorBody{Message: "Staff user not found", Code: "STAFF_NOT_FOUND"}
	}
	return http.StatusInternalServerError, errorBody{Message: "Internal server error", Code: "INTERNAL_ERROR"}
}

// validationMessage reports every failed field, e.g.
// "rating must be at most 10; jobType must be one of FULL_TIME PART_TIME".
func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid UUID"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return field + " is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "ID") {
		s = strings.TrimSuffix(s, "ID") + "Id"
	}
	if strings.HasSuffix(s, "URL") {
		s = strings.TrimSuffix(s, "URL") + "Url"
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// errorResponse writes err in the error envelope.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, body := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	s.jsonResponse(w, status, body)
}
