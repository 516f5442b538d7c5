package server

import (
	"net/http"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

func candidateInput(req *types.CandidateRequest) recruitment.CandidateInput {
	return recruitment.CandidateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		ResumeURL: req.ResumeURL,
	}
}

// handleListCandidates lists a posting's candidates, optionally by ?stage=
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	candidates, err := s.svc.ListCandidates(r.Context(), jobID, r.URL.Query().Get("stage"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "candidates", candidates)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.CandidateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	c, err := s.svc.CreateCandidate(r.Context(), jobID, candidateInput(&req))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "candidate", c)
}

// handleGetCandidate returns a candidate with interviews and documents
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	c, err := s.svc.GetCandidateDetail(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "candidate", c)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.CandidateUpdateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	c, err := s.svc.UpdateCandidate(r.Context(), id, recruitment.CandidateUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		ResumeURL: req.ResumeURL,
		Score:     req.Score,
		Feedback:  req.Feedback,
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "candidate", c)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.svc.DeleteCandidate(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.deleted(w, "Candidate")
}

// handleChangeStage moves a candidate along the transition table
func (s *Server) handleChangeStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.StageRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	c, err := s.svc.ChangeStage(r.Context(), id, req.Stage)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "candidate", c)
}

// handleUpdateStatus sets a stage with an optional reason, under the
// configured override policy
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.StatusRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	c, err := s.svc.UpdateStatus(r.Context(), id, req.Stage, req.Reason)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "candidate", c)
}

// handleHireCandidate converts a candidate into an employee
func (s *Server) handleHireCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.HireRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in := recruitment.HireInput{JobType: req.JobType, Salary: req.Salary}
	if in.ManagerID, err = parseOptionalID(req.ManagerID, "manager"); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if in.StartDate, err = db.ParseDate(req.StartDate); err != nil {
		s.errorResponse(w, r, recruitment.ErrValidation.Withf("startDate must be a date in YYYY-MM-DD format"))
		return
	}

	employee, err := s.svc.HireCandidate(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "employee", employee)
}

// handleOfferLetter renders an offer letter from ?startDate=&salary=&jobType=
func (s *Server) handleOfferLetter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	terms := recruitment.OfferTerms{JobType: r.URL.Query().Get("jobType")}
	if terms.Salary, err = queryFloat(r, "salary"); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		if terms.StartDate, err = db.ParseDate(raw); err != nil {
			s.errorResponse(w, r, recruitment.ErrValidation.Withf("startDate must be a date in YYYY-MM-DD format"))
			return
		}
	}

	letter, err := s.svc.OfferLetter(r.Context(), id, terms)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "document", letter)
}
