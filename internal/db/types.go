package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// Interview types
const (
	InterviewInPerson = "IN_PERSON"
	InterviewVideo    = "VIDEO"
	InterviewPhone    = "PHONE"
)

// Interview statuses
const (
	InterviewScheduled   = "SCHEDULED"
	InterviewCompleted   = "COMPLETED"
	InterviewCancelled   = "CANCELLED"
	InterviewRescheduled = "RESCHEDULED"
)

// Candidate document types
const (
	DocumentResume      = "RESUME"
	DocumentCoverLetter = "COVER_LETTER"
	DocumentPortfolio   = "PORTFOLIO"
	DocumentCertificate = "CERTIFICATE"
	DocumentOther       = "OTHER"
)

// Department is owned by the organisation module; recruitment only reads it.
type Department struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Employee is owned by the employee module; recruitment creates one per hire.
type Employee struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	JobTitle     string     `json:"jobTitle"`
	DepartmentID uuid.UUID  `json:"departmentId"`
	ManagerID    *uuid.UUID `json:"managerId"`
	Salary       *float64   `json:"salary"`
	HireDate     Date       `json:"hireDate"`
	JobType      string     `json:"jobType"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeCreateInput holds the fields written when a candidate is hired.
type EmployeeCreateInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	JobTitle     string
	DepartmentID uuid.UUID
	ManagerID    *uuid.UUID
	Salary       *float64
	HireDate     Date
	JobType      string
}

// Skill is a named competency that job postings can require.
type Skill struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// JobPostingSkill links a skill to a job posting.
type JobPostingSkill struct {
	SkillID  uuid.UUID `json:"skillId"`
	Name     string    `json:"name"`
	Required bool      `json:"required"`
	MinLevel int       `json:"minLevel"`
}

// JobPosting is an open (or archived) position candidates apply to.
type JobPosting struct {
	ID             uuid.UUID         `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	DepartmentID   uuid.UUID         `json:"departmentId"`
	DepartmentName string            `json:"departmentName,omitempty"`
	IsActive       bool              `json:"isActive"`
	PublicToken    string            `json:"publicToken,omitempty"`
	Skills         []JobPostingSkill `json:"skills,omitempty"`
	CandidateCount int               `json:"candidateCount"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// SkillRequirement is one skill row written with a job posting.
type SkillRequirement struct {
	SkillID  uuid.UUID
	Required bool
	MinLevel int
}

// JobPostingInput holds writable job posting fields.
type JobPostingInput struct {
	Title        string
	Description  string
	DepartmentID uuid.UUID
	IsActive     bool
	PublicToken  string
	Skills       []SkillRequirement
}

// JobPostingFilters holds optional filters for listing job postings.
type JobPostingFilters struct {
	Active       *bool
	DepartmentID uuid.UUID
}

// Candidate is one application to one job posting.
type Candidate struct {
	ID           uuid.UUID           `json:"id"`
	JobPostingID uuid.UUID           `json:"jobPostingId"`
	JobPosting   *JobPosting         `json:"jobPosting,omitempty"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Email        string              `json:"email"`
	Phone        *string             `json:"phone"`
	ResumeURL    *string             `json:"resumeUrl"`
	Stage        stage.Stage         `json:"stage"`
	Score        *int                `json:"score"`
	Feedback     *string             `json:"feedback"`
	Interviews   []Interview         `json:"interviews,omitempty"`
	Documents    []CandidateDocument `json:"documents,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// CandidateCreateInput holds the fields of a new application.
type CandidateCreateInput struct {
	JobPostingID uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	ResumeURL    *string
}

// CandidateUpdate holds editable candidate fields. Stage is deliberately absent.
// Nil Score and Feedback leave the stored values unchanged.
type CandidateUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	ResumeURL *string
	Score     *int
	Feedback  *string
}

// StageCount is the number of candidates of a job posting in one stage.
type StageCount struct {
	Stage stage.Stage `json:"stage"`
	Count int         `json:"count"`
}

// Interview is a scheduled conversation with a candidate.
type Interview struct {
	ID              uuid.UUID  `json:"id"`
	CandidateID     uuid.UUID  `json:"candidateId"`
	InterviewerID   *uuid.UUID `json:"interviewerId"`
	Date            time.Time  `json:"date"`
	DurationMinutes *int       `json:"duration"`
	Type            string     `json:"type"`
	Location        *string    `json:"location"`
	MeetingLink     *string    `json:"meetingLink"`
	Notes           *string    `json:"notes"`
	Feedback        *string    `json:"feedback"`
	Rating          *int       `json:"rating"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// InterviewInput holds writable interview fields.
type InterviewInput struct {
	InterviewerID   *uuid.UUID
	Date            time.Time
	DurationMinutes *int
	Type            string
	Location        *string
	MeetingLink     *string
	Notes           *string
	Feedback        *string
	Rating          *int
	Status          string
}

// CandidateDocument is metadata for a file attached to a candidate.
type CandidateDocument struct {
	ID           uuid.UUID `json:"id"`
	CandidateID  uuid.UUID `json:"candidateId"`
	Name         string    `json:"name"`
	FileURL      *string   `json:"fileUrl"`
	DocumentType string    `json:"documentType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// DocumentInput holds the fields of a new candidate document.
type DocumentInput struct {
	Name         string
	FileURL      *string
	DocumentType string
}

// Contract is an employment contract. It references the employee, not the
// candidate the employee was hired from.
type Contract struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   uuid.UUID `json:"employeeId"`
	ContractType string    `json:"contractType"`
	StartDate    Date      `json:"startDate"`
	EndDate      *Date     `json:"endDate"`
	Salary       *float64  `json:"salary"`
	Terms        *string   `json:"terms"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContractInput holds the fields of a new contract.
type ContractInput struct {
	EmployeeID   uuid.UUID
	ContractType string
	StartDate    Date
	EndDate      *Date
	Salary       *float64
	Terms        *string
}

// StaffUser is an HR staff account allowed to use the authenticated API.
type StaffUser struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DateLayout is the wire and SQL format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar date mapped to SQL DATE (YYYY-MM-DD)
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Scan implements the Scanner interface
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return errors.New("failed to scan Date")
	}
	d.Time = t
	return nil
}

// Value implements the Valuer interface
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
