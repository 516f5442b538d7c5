package recruitment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
)

var (
	interviewTypes    = []string{db.InterviewInPerson, db.InterviewVideo, db.InterviewPhone}
	interviewStatuses = []string{db.InterviewScheduled, db.InterviewCompleted, db.InterviewCancelled, db.InterviewRescheduled}
)

// InterviewInput is the writable part of an interview. Empty Type and
// Status default to IN_PERSON and SCHEDULED.
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

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func (in InterviewInput) toDB() (*db.InterviewInput, error) {
	if in.Date.IsZero() {
		return nil, ErrValidation.Withf("Interview date is required")
	}
	if in.DurationMinutes != nil && (*in.DurationMinutes < 1 || *in.DurationMinutes > 480) {
		return nil, ErrValidation.Withf("Duration must be between 1 and 480 minutes")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 10) {
		return nil, ErrValidation.Withf("Rating must be between 1 and 10")
	}
	out := &db.InterviewInput{
		InterviewerID:   in.InterviewerID,
		Date:            in.Date.UTC(),
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		Location:        optional(in.Location),
		MeetingLink:     optional(in.MeetingLink),
		Notes:           optional(in.Notes),
		Feedback:        optional(in.Feedback),
		Rating:          in.Rating,
		Status:          in.Status,
	}
	if out.Type == "" {
		out.Type = db.InterviewInPerson
	}
	if out.Status == "" {
		out.Status = db.InterviewScheduled
	}
	if !oneOf(out.Type, interviewTypes) {
		return nil, ErrValidation.Withf("Invalid interview type %q", out.Type)
	}
	if !oneOf(out.Status, interviewStatuses) {
		return nil, ErrValidation.Withf("Invalid interview status %q", out.Status)
	}
	return out, nil
}

func checkInterviewer(ctx context.Context, repo Repository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	e, err := repo.GetEmployee(ctx, *id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrInterviewerNotFound
	}
	return nil
}

// ScheduleInterview adds an interview to a candidate. Interviews do not
// affect the candidate's stage.
func (s *Service) ScheduleInterview(ctx context.Context, candidateID uuid.UUID, in InterviewInput) (*db.Interview, error) {
	rec, err := in.toDB()
	if err != nil {
		return nil, err
	}

	var created *db.Interview
	err = s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			c, err := repo.GetCandidate(ctx, candidateID)
			if err != nil {
				return err
			}
			if c == nil {
				return ErrCandidateNotFound
			}
			return checkInterviewer(ctx, repo, rec.InterviewerID)
		},
		func(ctx context.Context, repo Repository) (err error) {
			created, err = repo.CreateInterview(ctx, candidateID, rec)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListInterviews lists a candidate's interviews in schedule order.
func (s *Service) ListInterviews(ctx context.Context, candidateID uuid.UUID) ([]db.Interview, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.store.ListInterviews(ctx, candidateID)
}

// UpdateInterview rewrites an interview, typically to record its outcome.
func (s *Service) UpdateInterview(ctx context.Context, id uuid.UUID, in InterviewInput) (*db.Interview, error) {
	rec, err := in.toDB()
	if err != nil {
		return nil, err
	}

	var updated *db.Interview
	err = s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			iv, err := repo.GetInterview(ctx, id)
			if err != nil {
				return err
			}
			if iv == nil {
				return ErrInterviewNotFound
			}
			return checkInterviewer(ctx, repo, rec.InterviewerID)
		},
		func(ctx context.Context, repo Repository) (err error) {
			updated, err = repo.UpdateInterview(ctx, id, rec)
			return notFound(err, ErrInterviewNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteInterview removes one interview.
func (s *Service) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	return notFound(s.store.DeleteInterview(ctx, id), ErrInterviewNotFound)
}
