package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/stage"
)

const candidateColumns = `c.id, c.job_posting_id, c.first_name, c.last_name, c.email, c.phone,
	c.resume_url, c.stage::text, c.score, c.feedback, c.created_at, c.updated_at`

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var st string
	var score *int16
	err := row.Scan(&c.ID, &c.JobPostingID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.ResumeURL, &st, &score, &c.Feedback, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Stage, err = stage.Parse(st); err != nil {
		return nil, err
	}
	if score != nil {
		v := int(*score)
		c.Score = &v
	}
	return &c, nil
}

// GetCandidate retrieves a candidate with its owning job posting
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return db.getCandidate(ctx, id, false)
}

// GetCandidateForUpdate is GetCandidate with a row lock held until the
// surrounding transaction ends.
func (db *DB) GetCandidateForUpdate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return db.getCandidate(ctx, id, true)
}

func (db *DB) getCandidate(ctx context.Context, id uuid.UUID, lock bool) (*Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	c, err := scanCandidate(db.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	job, err := db.GetJobPosting(ctx, c.JobPostingID)
	if err != nil {
		return nil, err
	}
	c.JobPosting = job
	return c, nil
}

// FindCandidateByEmail returns the application with this email on a job
// posting, if any
func (db *DB) FindCandidateByEmail(ctx context.Context, jobPostingID uuid.UUID, email string) (*Candidate, error) {
	c, err := scanCandidate(db.q.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates c
		 WHERE c.job_posting_id = $1 AND lower(c.email) = lower($2)`,
		jobPostingID, email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find candidate by email: %w", err)
	}
	return c, nil
}

// ListCandidates returns the candidates of a job posting, newest first.
// An empty stage lists every stage.
func (db *DB) ListCandidates(ctx context.Context, jobPostingID uuid.UUID, st stage.Stage) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.job_posting_id = $1`
	args := []any{jobPostingID}
	if st != "" {
		query += ` AND c.stage = $2::candidate_stage`
		args = append(args, string(st))
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// CountCandidatesByStage groups a job posting's candidates by stage
func (db *DB) CountCandidatesByStage(ctx context.Context, jobPostingID uuid.UUID) ([]StageCount, error) {
	rows, err := db.q.Query(ctx,
		`SELECT stage::text, COUNT(*) FROM candidates WHERE job_posting_id = $1 GROUP BY stage`,
		jobPostingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	defer rows.Close()

	counts := make(map[stage.Stage]int)
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("failed to scan stage count: %w", err)
		}
		counts[stage.Stage(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]StageCount, 0, len(stage.All()))
	for _, st := range stage.All() {
		out = append(out, StageCount{Stage: st, Count: counts[st]})
	}
	return out, nil
}

// CreateCandidate inserts an application at the initial stage
func (db *DB) CreateCandidate(ctx context.Context, in *CandidateCreateInput) (*Candidate, error) {
	c, err := scanCandidate(db.q.QueryRow(ctx,
		`INSERT INTO candidates AS c (job_posting_id, first_name, last_name, email, phone, resume_url, stage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::candidate_stage)
		 RETURNING `+candidateColumns,
		in.JobPostingID, in.FirstName, in.LastName, in.Email, in.Phone, in.ResumeURL, string(stage.Initial),
	))
	if err != nil {
		return nil, writeErr("create candidate", err)
	}
	return c, nil
}

// UpdateCandidate overwrites the contact fields. A nil score or feedback
// keeps the stored value.
func (db *DB) UpdateCandidate(ctx context.Context, id uuid.UUID, in *CandidateUpdate) (*Candidate, error) {
	c, err := scanCandidate(db.q.QueryRow(ctx,
		`UPDATE candidates AS c
		 SET first_name = $1, last_name = $2, email = $3, phone = $4, resume_url = $5,
		     score = COALESCE($6, c.score), feedback = COALESCE($7, c.feedback), updated_at = NOW()
		 WHERE c.id = $8
		 RETURNING `+candidateColumns,
		in.FirstName, in.LastName, in.Email, in.Phone, in.ResumeURL, in.Score, in.Feedback, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, writeErr("update candidate", err)
	}
	return c, nil
}

// SetCandidateStage writes the stage and, when feedback is non-nil, the
// feedback column. Transition rules are enforced by the caller.
func (db *DB) SetCandidateStage(ctx context.Context, id uuid.UUID, st stage.Stage, feedback *string) (*Candidate, error) {
	c, err := scanCandidate(db.q.QueryRow(ctx,
		`UPDATE candidates AS c
		 SET stage = $1::candidate_stage, feedback = COALESCE($2, c.feedback), updated_at = NOW()
		 WHERE c.id = $3
		 RETURNING `+candidateColumns,
		string(st), feedback, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set candidate stage: %w", err)
	}
	return c, nil
}

// DeleteCandidate deletes a candidate row. Interviews must already be gone
// or are removed by cascade.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	tag, err := db.q.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
