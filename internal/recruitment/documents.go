package recruitment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
)

var documentTypes = []string{db.DocumentResume, db.DocumentCoverLetter, db.DocumentPortfolio, db.DocumentCertificate, db.DocumentOther}

// DocumentInput describes a document attached to a candidate. The file
// itself lives elsewhere; only its URL is kept.
type DocumentInput struct {
	Name         string
	FileURL      *string
	DocumentType string
}

// AddDocument attaches a document record to a candidate.
func (s *Service) AddDocument(ctx context.Context, candidateID uuid.UUID, in DocumentInput) (*db.CandidateDocument, error) {
	rec := &db.DocumentInput{
		Name:         strings.TrimSpace(in.Name),
		FileURL:      optional(in.FileURL),
		DocumentType: strings.ToUpper(strings.TrimSpace(in.DocumentType)),
	}
	if rec.Name == "" {
		return nil, ErrValidation.Withf("Document name is required")
	}
	if rec.DocumentType == "" {
		rec.DocumentType = db.DocumentOther
	}
	if !oneOf(rec.DocumentType, documentTypes) {
		return nil, ErrValidation.Withf("Invalid document type %q", in.DocumentType)
	}

	var created *db.CandidateDocument
	err := s.atomically(ctx,
		func(ctx context.Context, repo Repository) error {
			c, err := repo.GetCandidate(ctx, candidateID)
			if err != nil {
				return err
			}
			if c == nil {
				return ErrCandidateNotFound
			}
			return nil
		},
		func(ctx context.Context, repo Repository) (err error) {
			created, err = repo.CreateDocument(ctx, candidateID, rec)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListDocuments lists a candidate's documents, newest first.
func (s *Service) ListDocuments(ctx context.Context, candidateID uuid.UUID) ([]db.CandidateDocument, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, candidateID)
}

// DeleteDocument removes a document record.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return notFound(s.store.DeleteDocument(ctx, id), ErrDocumentNotFound)
}
