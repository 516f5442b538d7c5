package recruitment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// HiredFeedback overwrites a candidate's feedback when it is hired.
const HiredFeedback = "Converted to employee"

// HireInput carries the employment terms of a hire.
type HireInput struct {
	JobType   string
	Salary    *float64
	ManagerID *uuid.UUID
	StartDate db.Date
}

// hire is the state threaded through the hire unit of work.
type hire struct {
	id        uuid.UUID
	in        HireInput
	candidate *db.Candidate
	job       *db.JobPosting
	dept      *db.Department
	employee  *db.Employee
}

// HireCandidate converts a candidate into an employee. The preconditions run
// in a fixed order and the first failure aborts with no writes; the employee
// insert and the HIRED stage update commit together.
func (s *Service) HireCandidate(ctx context.Context, id uuid.UUID, in HireInput) (*db.Employee, error) {
	in.JobType = strings.TrimSpace(in.JobType)
	if in.JobType == "" {
		return nil, ErrValidation.Withf("Job type is required")
	}
	if in.StartDate.IsZero() {
		return nil, ErrValidation.Withf("Start date is required")
	}
	if in.Salary != nil && *in.Salary < 0 {
		return nil, ErrValidation.Withf("Salary must not be negative")
	}

	h := &hire{id: id, in: in}
	err := s.atomically(ctx,
		h.loadCandidate,
		h.checkNotHired,
		h.loadJob,
		h.loadDepartment,
		h.checkManager,
		h.checkEmailFree,
		h.createEmployee,
		h.markHired,
	)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.Event{
		Type:         events.CandidateHired,
		CandidateID:  h.candidate.ID.String(),
		JobPostingID: h.candidate.JobPostingID.String(),
		FromStage:    string(h.candidate.Stage),
		ToStage:      string(stage.Hired),
		EmployeeID:   h.employee.ID.String(),
		OccurredAt:   s.now().UTC(),
	})
	return h.employee, nil
}

func (h *hire) loadCandidate(ctx context.Context, repo Repository) (err error) {
	if h.candidate, err = repo.GetCandidateForUpdate(ctx, h.id); err != nil {
		return err
	}
	if h.candidate == nil {
		return ErrCandidateNotFound
	}
	return nil
}

func (h *hire) checkNotHired(context.Context, Repository) error {
	if h.candidate.Stage == stage.Hired {
		return ErrAlreadyHired
	}
	return nil
}

func (h *hire) loadJob(ctx context.Context, repo Repository) error {
	h.job = h.candidate.JobPosting
	if h.job != nil {
		return nil
	}
	if h.candidate.JobPostingID == uuid.Nil {
		return ErrJobNotFoundForCandidate
	}
	job, err := repo.GetJobPosting(ctx, h.candidate.JobPostingID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFoundForCandidate
	}
	h.job = job
	return nil
}

func (h *hire) loadDepartment(ctx context.Context, repo Repository) (err error) {
	if h.dept, err = repo.GetDepartment(ctx, h.job.DepartmentID); err != nil {
		return err
	}
	if h.dept == nil {
		return ErrDepartmentNotFound
	}
	return nil
}

func (h *hire) checkManager(ctx context.Context, repo Repository) error {
	if h.in.ManagerID == nil {
		return nil
	}
	manager, err := repo.GetEmployee(ctx, *h.in.ManagerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return ErrManagerNotFound
	}
	return nil
}

func (h *hire) checkEmailFree(ctx context.Context, repo Repository) error {
	existing, err := repo.GetEmployeeByEmail(ctx, h.candidate.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmployeeEmail.Withf("An employee with email %s already exists: %s", h.candidate.Email, existing.FullName())
	}
	return nil
}

func (h *hire) createEmployee(ctx context.Context, repo Repository) (err error) {
	h.employee, err = repo.CreateEmployee(ctx, &db.EmployeeCreateInput{
		FirstName:    h.candidate.FirstName,
		LastName:     h.candidate.LastName,
		Email:        h.candidate.Email,
		Phone:        h.candidate.Phone,
		JobTitle:     h.job.Title,
		DepartmentID: h.dept.ID,
		ManagerID:    h.in.ManagerID,
		Salary:       h.in.Salary,
		HireDate:     h.in.StartDate,
		JobType:      h.in.JobType,
	})
	if db.IsConstraint(err, db.ConstraintEmployeeEmail) {
		return ErrDuplicateEmployeeEmail
	}
	return err
}

func (h *hire) markHired(ctx context.Context, repo Repository) error {
	feedback := HiredFeedback
	_, err := repo.SetCandidateStage(ctx, h.id, stage.Hired, &feedback)
	return notFound(err, ErrCandidateNotFound)
}
