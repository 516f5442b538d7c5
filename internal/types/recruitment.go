package types

import "time"

// SkillRequirementRequest is one skill of a job posting.
type SkillRequirementRequest struct {
	SkillID  string `json:"skillId" validate:"required,uuid"`
	Required bool   `json:"required"`
	MinLevel int    `json:"minLevel" validate:"omitempty,min=1,max=5"`
}

// JobPostingRequest creates or replaces a job posting.
type JobPostingRequest struct {
	Title        string                    `json:"title" validate:"required,max=200"`
	Description  string                    `json:"description" validate:"max=10000"`
	DepartmentID string                    `json:"departmentId" validate:"required,uuid"`
	IsActive     *bool                     `json:"isActive"`
	Skills       []SkillRequirementRequest `json:"skills" validate:"omitempty,max=50,dive"`
}

// CandidateRequest is a new application, from staff or from the public form.
type CandidateRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Phone     *string `json:"phone" validate:"omitempty,max=40"`
	ResumeURL *string `json:"resumeUrl" validate:"omitempty,max=2048"`
}

// CandidateUpdateRequest edits a candidate. The stage is changed through
// StageRequest and HireRequest only.
type CandidateUpdateRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Phone     *string `json:"phone" validate:"omitempty,max=40"`
	ResumeURL *string `json:"resumeUrl" validate:"omitempty,max=2048"`
	Score     *int    `json:"score" validate:"omitempty,min=0,max=100"`
	Feedback  *string `json:"feedback" validate:"omitempty,max=5000"`
}

// StageRequest asks for a guarded stage change.
type StageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// StatusRequest asks for a stage change that records a reason.
type StatusRequest struct {
	Stage  string  `json:"stage" validate:"required"`
	Reason *string `json:"reason" validate:"omitempty,max=5000"`
}

// HireRequest carries the employment terms of a hire.
type HireRequest struct {
	JobType   string   `json:"jobType" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP TEMPORARY"`
	Salary    *float64 `json:"salary" validate:"omitempty,gte=0"`
	ManagerID *string  `json:"managerId" validate:"omitempty,uuid"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// InterviewRequest schedules or updates an interview.
type InterviewRequest struct {
	InterviewerID *string   `json:"interviewerId" validate:"omitempty,uuid"`
	Date          time.Time `json:"date" validate:"required"`
	Duration      *int      `json:"duration" validate:"omitempty,min=1,max=480"`
	Type          string    `json:"type" validate:"omitempty,oneof=IN_PERSON VIDEO PHONE"`
	Location      *string   `json:"location" validate:"omitempty,max=500"`
	MeetingLink   *string   `json:"meetingLink" validate:"omitempty,max=2048"`
	Notes         *string   `json:"notes" validate:"omitempty,max=5000"`
	Feedback      *string   `json:"feedback" validate:"omitempty,max=5000"`
	Rating        *int      `json:"rating" validate:"omitempty,min=1,max=10"`
	Status        string    `json:"status" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED RESCHEDULED"`
}

// DocumentRequest attaches document metadata to a candidate.
type DocumentRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	FileURL      *string `json:"fileUrl" validate:"omitempty,max=2048"`
	DocumentType string  `json:"documentType" validate:"omitempty,oneof=RESUME COVER_LETTER PORTFOLIO CERTIFICATE OTHER"`
}

// ContractRequest creates an employment contract.
type ContractRequest struct {
	EmployeeID   string   `json:"employeeId" validate:"required,uuid"`
	ContractType string   `json:"contractType" validate:"required,max=50"`
	StartDate    string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Salary       *float64 `json:"salary" validate:"omitempty,gte=0"`
	Terms        *string  `json:"terms" validate:"omitempty,max=10000"`
}

// Validate validates the JobPostingRequest using the validator.
func (r *JobPostingRequest) Validate() error { return validate.Struct(r) }

// Validate validates the CandidateRequest using the validator.
func (r *CandidateRequest) Validate() error { return validate.Struct(r) }

// Validate validates the CandidateUpdateRequest using the validator.
func (r *CandidateUpdateRequest) Validate() error { return validate.Struct(r) }

// Validate validates the StageRequest using the validator.
func (r *StageRequest) Validate() error { return validate.Struct(r) }

// Validate validates the StatusRequest using the validator.
func (r *StatusRequest) Validate() error { return validate.Struct(r) }

// Validate validates the HireRequest using the validator.
func (r *HireRequest) Validate() error { return validate.Struct(r) }

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error { return validate.Struct(r) }

// Validate validates the DocumentRequest using the validator.
func (r *DocumentRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ContractRequest using the validator.
func (r *ContractRequest) Validate() error { return validate.Struct(r) }
