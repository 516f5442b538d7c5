package recruitment

import (
	"context"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// Repository is the data access the services need. Single-row getters return
// (nil, nil) when the row does not exist; updates and deletes return
// db.ErrNotFound.
type Repository interface {
	GetDepartment(ctx context.Context, id uuid.UUID) (*db.Department, error)
	ListDepartments(ctx context.Context) ([]db.Department, error)

	GetEmployee(ctx context.Context, id uuid.UUID) (*db.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*db.Employee, error)
	CreateEmployee(ctx context.Context, in *db.EmployeeCreateInput) (*db.Employee, error)

	GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
	GetJobPostingByToken(ctx context.Context, token string) (*db.JobPosting, error)
	ListJobPostings(ctx context.Context, filters db.JobPostingFilters) ([]db.JobPosting, error)
	CreateJobPosting(ctx context.Context, in *db.JobPostingInput) (*db.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id uuid.UUID, in *db.JobPostingInput) (*db.JobPosting, error)
	SetJobPostingActive(ctx context.Context, id uuid.UUID, active bool) error
	SetJobPostingToken(ctx context.Context, id uuid.UUID, token string) error
	DeleteJobPosting(ctx context.Context, id uuid.UUID) error
	ListSkills(ctx context.Context) ([]db.Skill, error)
	SkillsExist(ctx context.Context, ids []uuid.UUID) (bool, error)

	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	GetCandidateForUpdate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	FindCandidateByEmail(ctx context.Context, jobPostingID uuid.UUID, email string) (*db.Candidate, error)
	ListCandidates(ctx context.Context, jobPostingID uuid.UUID, st stage.Stage) ([]db.Candidate, error)
	CountCandidatesByStage(ctx context.Context, jobPostingID uuid.UUID) ([]db.StageCount, error)
	CreateCandidate(ctx context.Context, in *db.CandidateCreateInput) (*db.Candidate, error)
	UpdateCandidate(ctx context.Context, id uuid.UUID, in *db.CandidateUpdate) (*db.Candidate, error)
	SetCandidateStage(ctx context.Context, id uuid.UUID, st stage.Stage, feedback *string) (*db.Candidate, error)
	DeleteCandidate(ctx context.Context, id uuid.UUID) error

	GetInterview(ctx context.Context, id uuid.UUID) (*db.Interview, error)
	ListInterviews(ctx context.Context, candidateID uuid.UUID) ([]db.Interview, error)
	CreateInterview(ctx context.Context, candidateID uuid.UUID, in *db.InterviewInput) (*db.Interview, error)
	UpdateInterview(ctx context.Context, id uuid.UUID, in *db.InterviewInput) (*db.Interview, error)
	DeleteInterview(ctx context.Context, id uuid.UUID) error
	DeleteCandidateInterviews(ctx context.Context, candidateID uuid.UUID) error

	GetDocument(ctx context.Context, id uuid.UUID) (*db.CandidateDocument, error)
	ListDocuments(ctx context.Context, candidateID uuid.UUID) ([]db.CandidateDocument, error)
	CreateDocument(ctx context.Context, candidateID uuid.UUID, in *db.DocumentInput) (*db.CandidateDocument, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	GetContract(ctx context.Context, id uuid.UUID) (*db.Contract, error)
	ListContracts(ctx context.Context, employeeID uuid.UUID) ([]db.Contract, error)
	CreateContract(ctx context.Context, in *db.ContractInput) (*db.Contract, error)
}

// Store is a Repository that can also run a unit of work: fn sees a
// Repository whose writes commit together when fn returns nil and are
// discarded otherwise.
type Store interface {
	Repository
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

// postgresStore adapts *db.DB to Store.
type postgresStore struct {
	*db.DB
}

// NewPostgresStore returns a Store backed by PostgreSQL transactions.
func NewPostgresStore(database *db.DB) Store {
	return postgresStore{DB: database}
}

func (s postgresStore) WithinTx(ctx context.Context, fn func(repo Repository) error) error {
	return s.DB.InTx(ctx, func(tx *db.DB) error {
		return fn(postgresStore{DB: tx})
	})
}

// step is one read, check or write of a unit of work.
type step func(ctx context.Context, repo Repository) error

// atomically runs steps in order as a single unit of work. The first failing
// step aborts the remaining steps and discards every write made so far.
func (s *Service) atomically(ctx context.Context, steps ...step) error {
	return s.store.WithinTx(ctx, func(repo Repository) error {
		for _, st := range steps {
			if err := st(ctx, repo); err != nil {
				return err
			}
		}
		return nil
	})
}
