package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const documentColumns = `id, candidate_id, name, file_url, document_type::text, uploaded_at`

func scanDocument(row pgx.Row) (*CandidateDocument, error) {
	var d CandidateDocument
	if err := row.Scan(&d.ID, &d.CandidateID, &d.Name, &d.FileURL, &d.DocumentType, &d.UploadedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDocument retrieves a candidate document by ID
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*CandidateDocument, error) {
	d, err := scanDocument(db.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM candidate_documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

// ListDocuments returns a candidate's documents, newest first
func (db *DB) ListDocuments(ctx context.Context, candidateID uuid.UUID) ([]CandidateDocument, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+documentColumns+` FROM candidate_documents
		 WHERE candidate_id = $1 ORDER BY uploaded_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]CandidateDocument, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// CreateDocument records a document for a candidate
func (db *DB) CreateDocument(ctx context.Context, candidateID uuid.UUID, in *DocumentInput) (*CandidateDocument, error) {
	d, err := scanDocument(db.q.QueryRow(ctx,
		`INSERT INTO candidate_documents (candidate_id, name, file_url, document_type)
		 VALUES ($1, $2, $3, $4::document_type)
		 RETURNING `+documentColumns,
		candidateID, in.Name, in.FileURL, in.DocumentType,
	))
	if err != nil {
		return nil, writeErr("create document", err)
	}
	return d, nil
}

// DeleteDocument deletes a candidate document
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := db.q.Exec(ctx, `DELETE FROM candidate_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
