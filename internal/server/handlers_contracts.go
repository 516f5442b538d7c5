package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req types.ContractRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in := recruitment.ContractInput{ContractType: req.ContractType, Salary: req.Salary, Terms: req.Terms}
	var err error
	if in.EmployeeID, err = uuid.Parse(req.EmployeeID); err != nil {
		s.errorResponse(w, r, recruitment.ErrValidation.Withf("Invalid employee ID"))
		return
	}
	if in.StartDate, err = db.ParseDate(req.StartDate); err != nil {
		s.errorResponse(w, r, recruitment.ErrValidation.Withf("Dates must be in YYYY-MM-DD format"))
		return
	}
	if in.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	contract, err := s.svc.CreateContract(r.Context(), in)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusCreated, "contract", contract)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "contract")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	contract, err := s.svc.GetContract(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "contract", contract)
}

// handleContractDocument renders a stored contract as text
func (s *Server) handleContractDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "contract")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	text, err := s.svc.ContractDocument(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "document", text)
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "employee")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	contracts, err := s.svc.ListContracts(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "contracts", contracts)
}

// handleOnboarding renders the onboarding checklist of a new employee
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "employee")
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	text, err := s.svc.OnboardingChecklist(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.ok(w, http.StatusOK, "document", text)
}
