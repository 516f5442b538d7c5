package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

func jobPostingInput(req *types.JobPostingRequest) (recruitment.JobPostingInput, error) {
	in := recruitment.JobPostingInput{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	var err error
	if in.DepartmentID, err = uuid.Parse(req.DepartmentID); err != nil {
		return in, recruitment.ErrValidation.Withf("Invalid department ID")
	}
	for _, sk := range req.Skills {
		id, err := uuid.Parse(sk.SkillID)
		if err != nil {
			return in, recruitment.ErrValidation.Withf("Invalid skill ID")
		}
		in.Skills = append(in.Skills, recruitment.SkillInput{SkillID: id, Required: sk.Required, MinLevel: sk.MinLevel})
	}
	return in, nil
}

// handleListDepartments lists all departments
func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := s.svc.ListDepartments(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "departments", depts)
}

// handleListSkills lists the skill catalogue
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.svc.ListSkills(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "skills", skills)
}

// handleListJobs lists job postings, optionally filtered by ?active= and ?departmentId=
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	var filters db.JobPostingFilters
	active, err := queryBool(r, "active")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	filters.Active = active
	if raw := r.URL.Query().Get("departmentId"); raw != "" {
		if filters.DepartmentID, err = uuid.Parse(raw); err != nil {
			s.errorResponse(w, r, recruitment.ErrValidation.Withf("Invalid department ID"))
			return
		}
	}

	jobs, err := s.svc.ListJobPostings(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "jobPostings", jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobPostingRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in, err := jobPostingInput(&req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	job, err := s.svc.CreateJobPosting(r.Context(), in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "jobPosting", job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := s.svc.GetJobPosting(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "jobPosting", job)
}

// handleUpdateJob replaces a posting's fields and skill list
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.JobPostingRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in, err := jobPostingInput(&req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	job, err := s.svc.UpdateJobPosting(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "jobPosting", job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.svc.DeleteJobPosting(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.deleted(w, "Job posting")
}

func (s *Server) handleArchiveJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := s.svc.ArchiveJobPosting(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "jobPosting", job)
}

func (s *Server) handleRotatePublicToken(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := s.svc.RotatePublicToken(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "jobPosting", job)
}

// handleJobPipeline returns candidate counts per stage
func (s *Server) handleJobPipeline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job posting")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	counts, err := s.svc.Pipeline(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "pipeline", counts)
}
