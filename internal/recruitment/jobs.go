package recruitment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
)

// SkillInput is one skill requirement of a job posting.
type SkillInput struct {
	SkillID  uuid.UUID
	Required bool
	MinLevel int
}

// JobPostingInput is the writable part of a job posting. A nil IsActive
// means active.
type JobPostingInput struct {
	Title        string
	Description  string
	DepartmentID uuid.UUID
	IsActive     *bool
	Skills       []SkillInput
}

func (in JobPostingInput) toDB() (*db.JobPostingInput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrValidation.Withf("Title is required")
	}
	out := &db.JobPostingInput{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		DepartmentID: in.DepartmentID,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}
	for _, sk := range in.Skills {
		level := sk.MinLevel
		if level == 0 {
			level = 1
		}
		if level < 1 || level > 5 {
			return nil, ErrValidation.Withf("Skill minLevel must be between 1 and 5")
		}
		out.Skills = append(out.Skills, db.SkillRequirement{SkillID: sk.SkillID, Required: sk.Required, MinLevel: level})
	}
	return out, nil
}

func (in JobPostingInput) skillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(in.Skills))
	for _, sk := range in.Skills {
		ids = append(ids, sk.SkillID)
	}
	return ids
}

// checkJobRefs verifies the department and skills a posting points at.
func checkJobRefs(ctx context.Context, repo Repository, in *JobPostingInput) error {
	dept, err := repo.GetDepartment(ctx, in.DepartmentID)
	if err != nil {
		return err
	}
	if dept == nil {
		return ErrDepartmentNotFound
	}
	ok, err := repo.SkillsExist(ctx, in.skillIDs())
	if err != nil {
		return err
	}
	if !ok {
		return ErrSkillNotFound
	}
	return nil
}

// CreateJobPosting creates a posting in an existing department and gives it
// a fresh public token.
func (s *Service) CreateJobPosting(ctx context.Context, in JobPostingInput) (*db.JobPosting, error) {
	rec, err := in.toDB()
	if err != nil {
		return nil, err
	}
	if rec.PublicToken, err = s.newToken(); err != nil {
		return nil, err
	}

	var created *db.JobPosting
	err = s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			return checkJobRefs(ctx, repo, &in)
		},
		func(ctx context.Context, repo Repository) (err error) {
			created, err = repo.CreateJobPosting(ctx, rec)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateJobPosting rewrites a posting and replaces its skills in one unit of
// work.
func (s *Service) UpdateJobPosting(ctx context.Context, id uuid.UUID, in JobPostingInput) (*db.JobPosting, error) {
	rec, err := in.toDB()
	if err != nil {
		return nil, err
	}

	var updated *db.JobPosting
	err = s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			job, err := repo.GetJobPosting(ctx, id)
			if err != nil {
				return err
			}
			if job == nil {
				return ErrJobNotFound
			}
			return checkJobRefs(ctx, repo, &in)
		},
		func(ctx context.Context, repo Repository) (err error) {
			updated, err = repo.UpdateJobPosting(ctx, id, rec)
			return notFound(err, ErrJobNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetJobPosting returns a posting with its skills.
func (s *Service) GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error) {
	job, err := s.store.GetJobPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ListJobPostings lists postings matching filters.
func (s *Service) ListJobPostings(ctx context.Context, filters db.JobPostingFilters) ([]db.JobPosting, error) {
	return s.store.ListJobPostings(ctx, filters)
}

// ArchiveJobPosting marks a posting inactive. Archived postings keep their
// candidates; new applications are refused.
func (s *Service) ArchiveJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error) {
	if err := s.store.SetJobPostingActive(ctx, id, false); err != nil {
		return nil, notFound(err, ErrJobNotFound)
	}
	return s.GetJobPosting(ctx, id)
}

// RotatePublicToken invalidates the current public link of a posting.
func (s *Service) RotatePublicToken(ctx context.Context, id uuid.UUID) (*db.JobPosting, error) {
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	if err := s.store.SetJobPostingToken(ctx, id, token); err != nil {
		return nil, notFound(err, ErrJobNotFound)
	}
	return s.GetJobPosting(ctx, id)
}

// DeleteJobPosting hard-deletes a posting with its skills and candidates.
func (s *Service) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	return notFound(s.store.DeleteJobPosting(ctx, id), ErrJobNotFound)
}

// GetPublicJobPosting resolves an active posting by its public token. The
// token itself is not echoed back.
func (s *Service) GetPublicJobPosting(ctx context.Context, token string) (*db.JobPosting, error) {
	job, err := s.store.GetJobPostingByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errPublicJobNotFound
	}
	if !job.IsActive {
		return nil, errPublicJobClosed
	}
	public := *job
	public.PublicToken = ""
	public.CandidateCount = 0
	return &public, nil
}

// Pipeline counts a posting's candidates per stage.
func (s *Service) Pipeline(ctx context.Context, jobID uuid.UUID) ([]db.StageCount, error) {
	if _, err := s.GetJobPosting(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.CountCandidatesByStage(ctx, jobID)
}

// ListDepartments lists departments postings can belong to.
func (s *Service) ListDepartments(ctx context.Context) ([]db.Department, error) {
	return s.store.ListDepartments(ctx)
}

// ListSkills lists skills postings can require.
func (s *Service) ListSkills(ctx context.Context) ([]db.Skill, error) {
	return s.store.ListSkills(ctx)
}
