package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
)

const maxBodyBytes = 1 << 20

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// decodeValid decodes the JSON body into req and validates it, writing the
// error response itself when either step fails.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(req); err != nil {
		s.errorResponse(w, r, errBadBody)
		return false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return false
	}
	return true
}

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errBadBody
	}
	return body, nil
}

// pathID parses the UUID path value name. what names the resource in the
// error message.
func pathID(r *http.Request, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, recruitment.ErrValidation.Withf("Invalid %s ID", what)
	}
	return id, nil
}

func parseOptionalID(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, recruitment.ErrValidation.Withf("Invalid %s ID", what)
	}
	return &id, nil
}

func parseOptionalDate(raw *string) (*db.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := db.ParseDate(*raw)
	if err != nil {
		return nil, recruitment.ErrValidation.Withf("Dates must be in YYYY-MM-DD format")
	}
	return &d, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, recruitment.ErrValidation.Withf("%s must be true or false", name)
	}
	return &v, nil
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, recruitment.ErrValidation.Withf("%s must be a non-negative number", name)
	}
	return &v, nil
}

// ok writes the success envelope {"success": true, key: value}.
func (s *Server) ok(w http.ResponseWriter, status int, key string, value any) {
	s.jsonResponse(w, status, map[string]any{"success": true, key: value})
}

func (s *Server) deleted(w http.ResponseWriter, what string) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": what + " deleted"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", "error", err)
	}
}
