package server

import (
	"net/http"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

func interviewInput(req *types.InterviewRequest) (recruitment.InterviewInput, error) {
	in := recruitment.InterviewInput{
		Date:            req.Date,
		DurationMinutes: req.Duration,
		Type:            req.Type,
		Location:        req.Location,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
		Feedback:        req.Feedback,
		Rating:          req.Rating,
		Status:          req.Status,
	}
	var err error
	in.InterviewerID, err = parseOptionalID(req.InterviewerID, "interviewer")
	return in, err
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	interviews, err := s.svc.ListInterviews(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "interviews", interviews)
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.InterviewRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in, err := interviewInput(&req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	iv, err := s.svc.ScheduleInterview(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "interview", iv)
}

func (s *Server) handleUpdateInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "interview")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.InterviewRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in, err := interviewInput(&req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	iv, err := s.svc.UpdateInterview(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "interview", iv)
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "interview")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.svc.DeleteInterview(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.deleted(w, "Interview")
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	docs, err := s.svc.ListDocuments(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "documents", docs)
}

// handleAddDocument records document metadata; files live elsewhere
func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "candidate")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	var req types.DocumentRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	doc, err := s.svc.AddDocument(r.Context(), id, recruitment.DocumentInput{
		Name:         req.Name,
		FileURL:      req.FileURL,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "document", doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "document")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.svc.DeleteDocument(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.deleted(w, "Document")
}
