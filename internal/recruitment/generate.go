package recruitment

import (
	"context"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/documents"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// OfferTerms are the optional terms printed on an offer letter.
type OfferTerms struct {
	StartDate db.Date
	Salary    *float64
	JobType   string
}

// OfferLetter renders an offer letter for a candidate. Rejected candidates
// get none.
func (s *Service) OfferLetter(ctx context.Context, candidateID uuid.UUID, terms OfferTerms) (string, error) {
	c, err := s.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}
	if c.Stage == stage.Rejected {
		return "", ErrInvalidTransition.Withf("Cannot issue an offer letter to a rejected candidate")
	}
	job := c.JobPosting
	if job == nil {
		return "", ErrJobNotFoundForCandidate
	}

	data := documents.OfferLetter{
		CandidateName: c.FirstName + " " + c.LastName,
		JobTitle:      job.Title,
		Department:    job.DepartmentName,
		Salary:        documents.FormatSalary(terms.Salary),
		JobType:       terms.JobType,
		IssuedOn:      s.now().Format("January 2, 2006"),
	}
	if !terms.StartDate.IsZero() {
		data.StartDate = terms.StartDate.String()
	}
	return documents.RenderOfferLetter(data)
}

// ContractDocument renders the summary of a stored contract.
func (s *Service) ContractDocument(ctx context.Context, contractID uuid.UUID) (string, error) {
	c, err := s.GetContract(ctx, contractID)
	if err != nil {
		return "", err
	}
	e, err := s.GetEmployee(ctx, c.EmployeeID)
	if err != nil {
		return "", err
	}

	data := documents.Contract{
		EmployeeName: e.FullName(),
		JobTitle:     e.JobTitle,
		ContractType: c.ContractType,
		StartDate:    c.StartDate.String(),
		Salary:       documents.FormatSalary(c.Salary),
	}
	if c.EndDate != nil {
		data.EndDate = c.EndDate.String()
	}
	if c.Terms != nil {
		data.Terms = *c.Terms
	}
	return documents.RenderContract(data)
}

// OnboardingChecklist renders the default onboarding checklist of an
// employee.
func (s *Service) OnboardingChecklist(ctx context.Context, employeeID uuid.UUID) (string, error) {
	e, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return documents.RenderOnboarding(documents.Onboarding{
		EmployeeName: e.FullName(),
		JobTitle:     e.JobTitle,
		StartDate:    e.HireDate.String(),
	})
}
