package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

// EvidenceStore implements the evidence contract on the shared
// embedded database.
type EvidenceStore struct {
	db *sql.DB
}

var _ ports.EvidenceRepository = (*EvidenceStore)(nil)

// Insert writes an evidence record. The stored media reference is kept
// opaque; resolving it to a URL happens at read time outside the store.
func (s *EvidenceStore) Insert(ctx context.Context, ev domain.Evidence) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("evidence_storage").
		Columns("id", "politician_id", "analysis_id",
			"external_media_ref", "media_type", "description", "created_at").
		Values(ev.ID, ev.PoliticianID, ev.AnalysisID,
			ev.ExternalMediaRef, ev.MediaType, ev.Description,
			ev.CreatedAt.Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build evidence insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert evidence: %w", err)
	}
	return nil
}

// ListByPolitician returns evidence in creation order.
func (s *EvidenceStore) ListByPolitician(ctx context.Context, politicianID string) ([]domain.Evidence, error) {
	query, args, err := sq.Select("id", "politician_id", "analysis_id",
		"external_media_ref", "media_type", "description", "created_at").
		From("evidence_storage").
		Where(sq.Eq{"politician_id": politicianID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build evidence list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Evidence, 0)
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("evidence rows: %w", err)
	}

	return results, nil
}

// CountByPolitician reports how many evidence records reference the
// official; used by the delete-rejection policy.
func (s *EvidenceStore) CountByPolitician(ctx context.Context, politicianID string) (int, error) {
	query, args, err := sq.Select("count(*)").
		From("evidence_storage").
		Where(sq.Eq{"politician_id": politicianID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build evidence count: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count evidence: %w", err)
	}
	return count, nil
}

func scanEvidence(rows *sql.Rows) (domain.Evidence, error) {
	var (
		ev        domain.Evidence
		createdAt string
	)
	if err := rows.Scan(&ev.ID, &ev.PoliticianID, &ev.AnalysisID,
		&ev.ExternalMediaRef, &ev.MediaType, &ev.Description, &createdAt); err != nil {
		return domain.Evidence{}, fmt.Errorf("scan evidence: %w", err)
	}

	var err error
	if ev.CreatedAt, err = parseStamp(createdAt); err != nil {
		return domain.Evidence{}, fmt.Errorf("scan evidence created_at: %w", err)
	}
	return ev, nil
}
