package recruitment

import (
	"fmt"
	"net/http"
)

// Kind classifies a domain error.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidInput
	KindInvalidTransition
	KindInactive
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindInactive:
		return "inactive"
	}
	return "unknown"
}

// Error is an expected business-rule failure. Every variant is declared
// below with its code and HTTP status; callers derive copies with a more
// specific message but never change Code, Kind or Status.
type Error struct {
	Code    string
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error carrying the same code, so errors.Is works against
// the declared variants regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Withf returns a copy of e with a formatted message.
func (e *Error) Withf(format string, args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

func newError(code string, kind Kind, status int, msg string) *Error {
	return &Error{Code: code, Kind: kind, Status: status, Message: msg}
}

// Stage transition guard
var (
	ErrInvalidStage      = newError("INVALID_STAGE", KindInvalidInput, http.StatusBadRequest, "Invalid stage")
	ErrUseHireEndpoint   = newError("USE_HIRE_ENDPOINT", KindInvalidInput, http.StatusBadRequest, "Use the hire endpoint to mark a candidate as hired")
	ErrInvalidTransition = newError("INVALID_STAGE_TRANSITION", KindInvalidTransition, http.StatusBadRequest, "Stage transition is not allowed")
	ErrJobInactive       = newError("JOB_INACTIVE", KindInactive, http.StatusBadRequest, "Job posting is not active")
)

// Hire transaction
var (
	ErrCandidateNotFound       = newError("CANDIDATE_NOT_FOUND", KindNotFound, http.StatusNotFound, "Candidate not found")
	ErrAlreadyHired            = newError("CANDIDATE_ALREADY_HIRED", KindConflict, http.StatusBadRequest, "Candidate has already been hired")
	ErrJobNotFoundForCandidate = newError("JOB_NOT_FOUND_FOR_CANDIDATE", KindNotFound, http.StatusNotFound, "Job posting not found for candidate")
	ErrDepartmentNotFound      = newError("DEPARTMENT_NOT_FOUND", KindNotFound, http.StatusNotFound, "Department not found")
	ErrManagerNotFound         = newError("MANAGER_NOT_FOUND", KindNotFound, http.StatusNotFound, "Manager not found")
	ErrDuplicateEmployeeEmail  = newError("EMAIL_ALREADY_EXISTS", KindConflict, http.StatusBadRequest, "An employee with this email already exists")
)

// Candidate creation guard
var (
	ErrJobNotFound          = newError("JOB_NOT_FOUND", KindNotFound, http.StatusNotFound, "Job posting not found")
	ErrDuplicateApplication = newError("DUPLICATE_APPLICATION", KindConflict, http.StatusConflict, "A candidate with this email has already applied to this job posting")
)

// Supporting resources
var (
	ErrSkillNotFound       = newError("SKILL_NOT_FOUND", KindNotFound, http.StatusNotFound, "One or more skills not found")
	ErrInterviewNotFound   = newError("INTERVIEW_NOT_FOUND", KindNotFound, http.StatusNotFound, "Interview not found")
	ErrInterviewerNotFound = newError("INTERVIEWER_NOT_FOUND", KindNotFound, http.StatusNotFound, "Interviewer not found")
	ErrDocumentNotFound    = newError("DOCUMENT_NOT_FOUND", KindNotFound, http.StatusNotFound, "Document not found")
	ErrContractNotFound    = newError("CONTRACT_NOT_FOUND", KindNotFound, http.StatusNotFound, "Contract not found")
	ErrEmployeeNotFound    = newError("EMPLOYEE_NOT_FOUND", KindNotFound, http.StatusNotFound, "Employee not found")
	ErrValidation          = newError("VALIDATION_ERROR", KindInvalidInput, http.StatusBadRequest, "Invalid input")
)

// Applicant-facing messages for the public application flow.
var (
	errPublicJobNotFound = ErrJobNotFound.Withf("Job posting not found")
	errPublicJobClosed   = ErrJobInactive.Withf("This job posting is no longer accepting applications")
	errPublicDuplicate   = ErrDuplicateApplication.Withf("You have already applied to this position")
)
