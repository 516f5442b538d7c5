package server

import (
	"encoding/json"
	"net/http"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/schemas"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

// publicJob is what applicants see of a posting.
type publicJob struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Department  string   `json:"department"`
	Skills      []string `json:"skills"`
}

// handlePublicJob shows an active posting by its public token
func (s *Server) handlePublicJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.GetPublicJobPosting(r.Context(), r.PathValue("token"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	view := publicJob{
		Title:       job.Title,
		Description: job.Description,
		Department:  job.DepartmentName,
		Skills:      make([]string, 0, len(job.Skills)),
	}
	for _, sk := range job.Skills {
		view.Skills = append(view.Skills, sk.Name)
	}
	s.ok(w, http.StatusOK, "jobPosting", view)
}

// handlePublicApply validates the application form against its JSON schema
// before the candidate creation guard runs
func (s *Server) handlePublicApply(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, r, errBadBody)
		return
	}
	if err := schemas.ValidateApplication(body); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var req types.CandidateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, r, errBadBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	c, err := s.svc.ApplyPublic(r.Context(), r.PathValue("token"), candidateInput(&req))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Application received",
		"candidateId": c.ID,
	})
}

func (s *Server) handleApplicationSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(schemas.ApplicationSchema())
}
