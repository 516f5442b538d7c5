package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobPostingColumns = `jp.id, jp.title, jp.description, jp.department_id, COALESCE(d.name, ''),
	jp.is_active, jp.public_token, jp.created_at, jp.updated_at,
	(SELECT COUNT(*) FROM candidates c WHERE c.job_posting_id = jp.id)`

const jobPostingFrom = ` FROM job_postings jp LEFT JOIN departments d ON d.id = jp.department_id`

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.DepartmentID, &p.DepartmentName,
		&p.IsActive, &p.PublicToken, &p.CreatedAt, &p.UpdatedAt, &p.CandidateCount)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetJobPosting retrieves a job posting with its skills
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	p, err := scanJobPosting(db.q.QueryRow(ctx,
		`SELECT `+jobPostingColumns+jobPostingFrom+` WHERE jp.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	if p.Skills, err = db.ListJobPostingSkills(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetJobPostingByToken retrieves a job posting by its public token
func (db *DB) GetJobPostingByToken(ctx context.Context, token string) (*JobPosting, error) {
	p, err := scanJobPosting(db.q.QueryRow(ctx,
		`SELECT `+jobPostingColumns+jobPostingFrom+` WHERE jp.public_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting by token: %w", err)
	}
	if p.Skills, err = db.ListJobPostingSkills(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListJobPostings retrieves job postings with optional filters, newest first
func (db *DB) ListJobPostings(ctx context.Context, filters JobPostingFilters) ([]JobPosting, error) {
	query := `SELECT ` + jobPostingColumns + jobPostingFrom + ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Active != nil {
		query += fmt.Sprintf(" AND jp.is_active = $%d", argNum)
		args = append(args, *filters.Active)
		argNum++
	}
	if filters.DepartmentID != uuid.Nil {
		query += fmt.Sprintf(" AND jp.department_id = $%d", argNum)
		args = append(args, filters.DepartmentID)
	}
	query += " ORDER BY jp.created_at DESC"

	rows, err := db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	postings := make([]JobPosting, 0)
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}

// CreateJobPosting inserts a job posting and its skills. Callers wanting the
// two writes to be atomic run it inside InTx.
func (db *DB) CreateJobPosting(ctx context.Context, in *JobPostingInput) (*JobPosting, error) {
	var id uuid.UUID
	err := db.q.QueryRow(ctx,
		`INSERT INTO job_postings (title, description, department_id, is_active, public_token)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		in.Title, in.Description, in.DepartmentID, in.IsActive, in.PublicToken,
	).Scan(&id)
	if err != nil {
		return nil, writeErr("create job posting", err)
	}
	if err := db.insertSkills(ctx, id, in.Skills); err != nil {
		return nil, err
	}
	return db.GetJobPosting(ctx, id)
}

// UpdateJobPosting overwrites the posting fields and replaces its skill set.
// The public token is left untouched.
func (db *DB) UpdateJobPosting(ctx context.Context, id uuid.UUID, in *JobPostingInput) (*JobPosting, error) {
	tag, err := db.q.Exec(ctx,
		`UPDATE job_postings
		 SET title = $1, description = $2, department_id = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5`,
		in.Title, in.Description, in.DepartmentID, in.IsActive, id,
	)
	if err != nil {
		return nil, writeErr("update job posting", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	if _, err := db.q.Exec(ctx, `DELETE FROM job_posting_skills WHERE job_posting_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear job posting skills: %w", err)
	}
	if err := db.insertSkills(ctx, id, in.Skills); err != nil {
		return nil, err
	}
	return db.GetJobPosting(ctx, id)
}

// SetJobPostingActive toggles is_active
func (db *DB) SetJobPostingActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := db.q.Exec(ctx,
		`UPDATE job_postings SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update job posting status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetJobPostingToken replaces the public token
func (db *DB) SetJobPostingToken(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := db.q.Exec(ctx,
		`UPDATE job_postings SET public_token = $1, updated_at = NOW() WHERE id = $2`, token, id)
	if err != nil {
		return writeErr("rotate public token", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJobPosting hard-deletes a job posting; skills, candidates and their
// interviews and documents go with it (via cascade)
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	tag, err := db.q.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListJobPostingSkills returns the skills linked to a job posting
func (db *DB) ListJobPostingSkills(ctx context.Context, jobPostingID uuid.UUID) ([]JobPostingSkill, error) {
	rows, err := db.q.Query(ctx,
		`SELECT s.id, s.name, jps.required, jps.min_level
		 FROM job_posting_skills jps
		 JOIN skills s ON s.id = jps.skill_id
		 WHERE jps.job_posting_id = $1
		 ORDER BY jps.required DESC, s.name`,
		jobPostingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posting skills: %w", err)
	}
	defer rows.Close()

	skills := make([]JobPostingSkill, 0)
	for rows.Next() {
		var s JobPostingSkill
		if err := rows.Scan(&s.SkillID, &s.Name, &s.Required, &s.MinLevel); err != nil {
			return nil, fmt.Errorf("failed to scan job posting skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (db *DB) insertSkills(ctx context.Context, jobPostingID uuid.UUID, skills []SkillRequirement) error {
	for _, s := range skills {
		_, err := db.q.Exec(ctx,
			`INSERT INTO job_posting_skills (job_posting_id, skill_id, required, min_level)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (job_posting_id, skill_id) DO UPDATE SET required = $3, min_level = $4`,
			jobPostingID, s.SkillID, s.Required, s.MinLevel,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job posting skill: %w", err)
		}
	}
	return nil
}

// ListSkills returns every skill ordered by name
func (db *DB) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := db.q.Query(ctx, `SELECT id, name FROM skills ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// SkillsExist reports whether every id refers to an existing skill
func (db *DB) SkillsExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var n int
	err := db.q.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE id = ANY($1)`, ids).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check skills: %w", err)
	}
	return n == len(uniqueIDs(ids)), nil
}

// CreateSkill inserts a skill or returns the existing one with that name
func (db *DB) CreateSkill(ctx context.Context, name string) (*Skill, error) {
	var s Skill
	err := db.q.QueryRow(ctx,
		`INSERT INTO skills (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`, name,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, writeErr("create skill", err)
	}
	return &s, nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
