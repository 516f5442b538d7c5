package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const interviewColumns = `id, candidate_id, interviewer_id, scheduled_at, duration_minutes,
	type::text, location, meeting_link, notes, feedback, rating, status::text, created_at, updated_at`

func scanInterview(row pgx.Row) (*Interview, error) {
	var i Interview
	var rating *int16
	err := row.Scan(&i.ID, &i.CandidateID, &i.InterviewerID, &i.Date, &i.DurationMinutes,
		&i.Type, &i.Location, &i.MeetingLink, &i.Notes, &i.Feedback, &rating, &i.Status,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rating != nil {
		v := int(*rating)
		i.Rating = &v
	}
	return &i, nil
}

// GetInterview retrieves an interview by ID
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*Interview, error) {
	i, err := scanInterview(db.q.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return i, nil
}

// ListInterviews returns a candidate's interviews in schedule order
func (db *DB) ListInterviews(ctx context.Context, candidateID uuid.UUID) ([]Interview, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE candidate_id = $1 ORDER BY scheduled_at`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]Interview, 0)
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, *i)
	}
	return interviews, rows.Err()
}

// CreateInterview schedules an interview for a candidate
func (db *DB) CreateInterview(ctx context.Context, candidateID uuid.UUID, in *InterviewInput) (*Interview, error) {
	i, err := scanInterview(db.q.QueryRow(ctx,
		`INSERT INTO interviews (candidate_id, interviewer_id, scheduled_at, duration_minutes, type,
		                         location, meeting_link, notes, feedback, rating, status)
		 VALUES ($1, $2, $3, $4, $5::interview_type, $6, $7, $8, $9, $10, $11::interview_status)
		 RETURNING `+interviewColumns,
		candidateID, in.InterviewerID, in.Date, in.DurationMinutes, in.Type,
		in.Location, in.MeetingLink, in.Notes, in.Feedback, in.Rating, in.Status,
	))
	if err != nil {
		return nil, writeErr("create interview", err)
	}
	return i, nil
}

// UpdateInterview overwrites an interview's fields
func (db *DB) UpdateInterview(ctx context.Context, id uuid.UUID, in *InterviewInput) (*Interview, error) {
	i, err := scanInterview(db.q.QueryRow(ctx,
		`UPDATE interviews
		 SET interviewer_id = $1, scheduled_at = $2, duration_minutes = $3, type = $4::interview_type,
		     location = $5, meeting_link = $6, notes = $7, feedback = $8, rating = $9,
		     status = $10::interview_status, updated_at = NOW()
		 WHERE id = $11
		 RETURNING `+interviewColumns,
		in.InterviewerID, in.Date, in.DurationMinutes, in.Type, in.Location, in.MeetingLink,
		in.Notes, in.Feedback, in.Rating, in.Status, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, writeErr("update interview", err)
	}
	return i, nil
}

// DeleteInterview deletes one interview
func (db *DB) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	tag, err := db.q.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCandidateInterviews deletes every interview of a candidate
func (db *DB) DeleteCandidateInterviews(ctx context.Context, candidateID uuid.UUID) error {
	if _, err := db.q.Exec(ctx, `DELETE FROM interviews WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete candidate interviews: %w", err)
	}
	return nil
}
