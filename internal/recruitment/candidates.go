package recruitment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// CandidateInput is the data of a new application.
type CandidateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	ResumeURL *string
}

// CandidateUpdateInput is the staff-editable part of a candidate.
type CandidateUpdateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	ResumeURL *string
	Score     *int
	Feedback  *string
}

// applicationErrors selects the messages the creation guard reports, so the
// public flow can word them for applicants.
type applicationErrors struct {
	notFound  *Error
	inactive  *Error
	duplicate *Error
}

var (
	staffApplicationErrors  = applicationErrors{ErrJobNotFound, ErrJobInactive, ErrDuplicateApplication}
	publicApplicationErrors = applicationErrors{errPublicJobNotFound, errPublicJobClosed, errPublicDuplicate}
)

func (in CandidateInput) toDB(jobID uuid.UUID) (*db.CandidateCreateInput, error) {
	rec := &db.CandidateCreateInput{
		JobPostingID: jobID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		Phone:        optional(in.Phone),
		ResumeURL:    optional(in.ResumeURL),
	}
	if rec.FirstName == "" || rec.LastName == "" || rec.Email == "" {
		return nil, ErrValidation.Withf("First name, last name and email are required")
	}
	return rec, nil
}

// CreateCandidate attaches a new application to an active job posting.
// The job must exist and be active, and no candidate of that job may share
// the email. Both checks run before any write.
func (s *Service) CreateCandidate(ctx context.Context, jobID uuid.UUID, in CandidateInput) (*db.Candidate, error) {
	return s.createCandidate(ctx, staffApplicationErrors, in,
		func(ctx context.Context, repo Repository) (*db.JobPosting, error) {
			return repo.GetJobPosting(ctx, jobID)
		})
}

// ApplyPublic is CreateCandidate for unauthenticated applicants, resolving the
// job by its public token.
func (s *Service) ApplyPublic(ctx context.Context, token string, in CandidateInput) (*db.Candidate, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errPublicJobNotFound
	}
	return s.createCandidate(ctx, publicApplicationErrors, in,
		func(ctx context.Context, repo Repository) (*db.JobPosting, error) {
			return repo.GetJobPostingByToken(ctx, token)
		})
}

func (s *Service) createCandidate(
	ctx context.Context,
	errs applicationErrors,
	in CandidateInput,
	resolveJob func(context.Context, Repository) (*db.JobPosting, error),
) (*db.Candidate, error) {
	var (
		job     *db.JobPosting
		rec     *db.CandidateCreateInput
		created *db.Candidate
	)
	err := s.atomically(ctx,
		func(ctx context.Context, repo Repository) (err error) {
			if job, err = resolveJob(ctx, repo); err != nil {
				return err
			}
			if job == nil {
				return errs.notFound
			}
			if !job.IsActive {
				return errs.inactive
			}
			rec, err = in.toDB(job.ID)
			return err
		},
		func(ctx context.Context, repo Repository) error {
			existing, err := repo.FindCandidateByEmail(ctx, job.ID, rec.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return errs.duplicate
			}
			return nil
		},
		func(ctx context.Context, repo Repository) (err error) {
			created, err = repo.CreateCandidate(ctx, rec)
			if db.IsConstraint(err, db.ConstraintCandidateJobEmail) {
				return errs.duplicate
			}
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.Event{
		Type:         events.CandidateCreated,
		CandidateID:  created.ID.String(),
		JobPostingID: created.JobPostingID.String(),
		ToStage:      string(created.Stage),
		OccurredAt:   s.now().UTC(),
	})
	return created, nil
}

// GetCandidate returns a candidate with its job posting.
func (s *Service) GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	return c, nil
}

// GetCandidateDetail returns a candidate with its interviews and documents,
// loading the two collections concurrently.
func (s *Service) GetCandidateDetail(ctx context.Context, id uuid.UUID) (*db.Candidate, error) {
	c, err := s.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Interviews, err = s.store.ListInterviews(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		c.Documents, err = s.store.ListDocuments(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCandidates lists a job posting's candidates, optionally in one stage.
func (s *Service) ListCandidates(ctx context.Context, jobID uuid.UUID, stageFilter string) ([]db.Candidate, error) {
	var st stage.Stage
	if stageFilter != "" {
		parsed, err := stage.Parse(stageFilter)
		if err != nil {
			return nil, ErrInvalidStage.Withf("Invalid stage %q", stageFilter)
		}
		st = parsed
	}
	if _, err := s.GetJobPosting(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListCandidates(ctx, jobID, st)
}

// UpdateCandidate edits contact details, score and feedback. The stage is
// never touched here. An omitted score or feedback keeps the stored value.
func (s *Service) UpdateCandidate(ctx context.Context, id uuid.UUID, in CandidateUpdateInput) (*db.Candidate, error) {
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		return nil, ErrValidation.Withf("Score must be between 0 and 100")
	}
	rec := &db.CandidateUpdate{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     optional(in.Phone),
		ResumeURL: optional(in.ResumeURL),
		Score:     in.Score,
		Feedback:  in.Feedback,
	}
	if rec.FirstName == "" || rec.LastName == "" || rec.Email == "" {
		return nil, ErrValidation.Withf("First name, last name and email are required")
	}

	var updated *db.Candidate
	err := s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			current, err := repo.GetCandidateForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return ErrCandidateNotFound
			}
			if current.Email == rec.Email {
				return nil
			}
			other, err := repo.FindCandidateByEmail(ctx, current.JobPostingID, rec.Email)
			if err != nil {
				return err
			}
			if other != nil {
				return ErrDuplicateApplication
			}
			return nil
		},
		func(ctx context.Context, repo Repository) (err error) {
			updated, err = repo.UpdateCandidate(ctx, id, rec)
			if db.IsConstraint(err, db.ConstraintCandidateJobEmail) {
				return ErrDuplicateApplication
			}
			return notFound(err, ErrCandidateNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCandidate removes a candidate, deleting its interviews first, as one
// unit of work.
func (s *Service) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			c, err := repo.GetCandidateForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if c == nil {
				return ErrCandidateNotFound
			}
			return nil
		},
		func(ctx context.Context, repo Repository) error {
			return repo.DeleteCandidateInterviews(ctx, id)
		},
		func(ctx context.Context, repo Repository) error {
			return notFound(repo.DeleteCandidate(ctx, id), ErrCandidateNotFound)
		},
	)
}
