package recruitment

import (
	"context"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

// parseRequestedStage rejects unknown names and HIRED, which only the hire
// transaction may set.
func parseRequestedStage(requested string) (stage.Stage, error) {
	next, err := stage.Parse(requested)
	if err != nil {
		return "", ErrInvalidStage.Withf("Invalid stage %q", requested)
	}
	if next == stage.Hired {
		return "", ErrUseHireEndpoint
	}
	return next, nil
}

// guardTransition applies the job activity and transition table checks to a
// locked candidate.
func guardTransition(c *db.Candidate, next stage.Stage) error {
	if next != stage.Rejected && (c.JobPosting == nil || !c.JobPosting.IsActive) {
		return ErrJobInactive
	}
	if !stage.CanTransition(c.Stage, next) {
		return ErrInvalidTransition.Withf("Cannot move candidate from %s to %s", c.Stage, next)
	}
	return nil
}

// ChangeStage moves a candidate along the hiring pipeline. It refuses
// unknown stages, HIRED, non-rejecting moves on inactive job postings and
// any move the transition table does not list.
func (s *Service) ChangeStage(ctx context.Context, id uuid.UUID, requested string) (*db.Candidate, error) {
	next, err := parseRequestedStage(requested)
	if err != nil {
		return nil, err
	}
	return s.moveCandidate(ctx, id, next, nil, guardTransition)
}

// UpdateStatus records a stage together with an optional reason stored as
// feedback. How much of the transition table applies depends on the
// configured OverridePolicy; HIRED and unknown stages are always refused.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, requested string, reason *string) (*db.Candidate, error) {
	next, err := parseRequestedStage(requested)
	if err != nil {
		return nil, err
	}

	guard := func(*db.Candidate, stage.Stage) error { return nil }
	switch s.policy {
	case PolicyGuarded:
		guard = guardTransition
	case PolicyRejectedOnly:
		guard = func(c *db.Candidate, next stage.Stage) error {
			if next == stage.Rejected {
				if c.Stage.Terminal() {
					return ErrInvalidTransition.Withf("Cannot move candidate from %s to %s", c.Stage, next)
				}
				return nil
			}
			return guardTransition(c, next)
		}
	}
	return s.moveCandidate(ctx, id, next, optional(reason), guard)
}

func (s *Service) moveCandidate(
	ctx context.Context,
	id uuid.UUID,
	next stage.Stage,
	feedback *string,
	guard func(*db.Candidate, stage.Stage) error,
) (*db.Candidate, error) {
	var (
		from    stage.Stage
		updated *db.Candidate
	)
	err := s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			c, err := repo.GetCandidateForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if c == nil {
				return ErrCandidateNotFound
			}
			from = c.Stage
			return guard(c, next)
		},
		func(ctx context.Context, repo Repository) (err error) {
			updated, err = repo.SetCandidateStage(ctx, id, next, feedback)
			return notFound(err, ErrCandidateNotFound)
		},
	)
	if err != nil {
		return nil, err
	}

	if from != next {
		events.Emit(ctx, s.events, events.Event{
			Type:         events.CandidateStageChanged,
			CandidateID:  updated.ID.String(),
			JobPostingID: updated.JobPostingID.String(),
			FromStage:    string(from),
			ToStage:      string(next),
			OccurredAt:   s.now().UTC(),
		})
	}
	return updated, nil
}
