package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS politicians (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    party VARCHAR(50),
    office VARCHAR(100),
    region VARCHAR(100),
    external_directory_id VARCHAR(50),
    photo_url TEXT,
    bio TEXT,
    credibility_score REAL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS evidence_storage (
    id TEXT PRIMARY KEY,
    politician_id TEXT NOT NULL,
    analysis_id TEXT,
    external_media_ref TEXT NOT NULL,
    media_type TEXT,
    description TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY(politician_id) REFERENCES politicians(id)
);`

// SQLiteStore owns the embedded database holding politicians and
// evidence, exposing one repository view per entity.
type SQLiteStore struct {
	db          *sql.DB
	politicians *PoliticianStore
	evidence    *EvidenceStore
}

// Open creates the database file if needed and bootstraps the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers anyway; a single pooled connection also
	// keeps ":memory:" databases stable across calls and makes the
	// pragma below stick for the process lifetime.
	db.SetMaxOpenConns(1)

	// Foreign keys are off by default in SQLite; without this the
	// evidence ownership constraint is decorative.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &SQLiteStore{
		db:          db,
		politicians: &PoliticianStore{db: db},
		evidence:    &EvidenceStore{db: db},
	}, nil
}

// Politicians returns the registry repository view.
func (s *SQLiteStore) Politicians() *PoliticianStore {
	return s.politicians
}

// Evidence returns the evidence repository view.
func (s *SQLiteStore) Evidence() *EvidenceStore {
	return s.evidence
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// PoliticianStore implements the registry contract on the shared
// embedded database.
type PoliticianStore struct {
	db *sql.DB
}

var _ ports.PoliticianRepository = (*PoliticianStore)(nil)

// Insert writes a new politician record. Conflicting ids surface as
// *domain.DuplicateIDError without touching the existing row, so a lost
// duplicate race never corrupts the stored record.
func (s *PoliticianStore) Insert(ctx context.Context, p domain.Politician) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	query, args, err := sq.Insert("politicians").
		Columns("id", "name", "party", "office", "region",
			"external_directory_id", "photo_url", "bio",
			"credibility_score", "created_at", "updated_at").
		Values(p.ID, p.Name, p.Party, p.Office, p.Region,
			p.ExternalDirectoryID, p.PhotoURL, p.Bio,
			p.CredibilityScore, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339)).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert politician: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert politician: %w", err)
	}
	if affected == 0 {
		return &domain.DuplicateIDError{ID: p.ID}
	}

	return nil
}

// FindByID fetches a single record by its stable identifier.
func (s *PoliticianStore) FindByID(ctx context.Context, id string) (domain.Politician, bool, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

// FindByExactName fetches the first record with the given name, in
// insertion order.
func (s *PoliticianStore) FindByExactName(ctx context.Context, name string) (domain.Politician, bool, error) {
	return s.findOne(ctx, sq.Eq{"name": name})
}

// Search returns all records whose name, party, or region contains the
// substring (case-insensitive), in insertion order. An empty result is
// an empty slice, not an error.
func (s *PoliticianStore) Search(ctx context.Context, substring string) ([]domain.Politician, error) {
	pattern := "%" + strings.ToLower(substring) + "%"

	query, args, err := selectPoliticians().
		Where(sq.Or{
			sq.Expr("lower(name) LIKE ?", pattern),
			sq.Expr("lower(party) LIKE ?", pattern),
			sq.Expr("lower(region) LIKE ?", pattern),
		}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	return s.queryPoliticians(ctx, query, args)
}

func (s *PoliticianStore) queryPoliticians(ctx context.Context, query string, args []any) ([]domain.Politician, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search politicians: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Politician, 0)
	for rows.Next() {
		p, err := scanPolitician(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}

	return results, nil
}

// SearchByName returns all records whose name contains the substring
// (case-insensitive), in insertion order. The synchronizer's miss-path
// fallback uses this; party and region must not satisfy a name query.
func (s *PoliticianStore) SearchByName(ctx context.Context, substring string) ([]domain.Politician, error) {
	pattern := "%" + strings.ToLower(substring) + "%"

	query, args, err := selectPoliticians().
		Where(sq.Expr("lower(name) LIKE ?", pattern)).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build name search: %w", err)
	}

	return s.queryPoliticians(ctx, query, args)
}

// Exists reports whether a record with the exact name is present.
func (s *PoliticianStore) Exists(ctx context.Context, name string) (bool, error) {
	query, args, err := sq.Select("1").
		From("politicians").
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return true, nil
}

// Remove deletes an official. Deletion is rejected with
// *domain.HasDependentsError while evidence records still point at it.
func (s *PoliticianStore) Remove(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove: %w", err)
	}
	defer tx.Rollback()

	var dependents int
	countQuery, countArgs, err := sq.Select("count(*)").
		From("evidence_storage").
		Where(sq.Eq{"politician_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build dependent count: %w", err)
	}
	if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&dependents); err != nil {
		return fmt.Errorf("count dependents: %w", err)
	}
	if dependents > 0 {
		return &domain.HasDependentsError{PoliticianID: id, EvidenceCount: dependents}
	}

	delQuery, delArgs, err := sq.Delete("politicians").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := tx.ExecContext(ctx, delQuery, delArgs...)
	if err != nil {
		return fmt.Errorf("delete politician: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete politician: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove: %w", err)
	}
	return nil
}

func (s *PoliticianStore) findOne(ctx context.Context, cond sq.Eq) (domain.Politician, bool, error) {
	query, args, err := selectPoliticians().
		Where(cond).
		OrderBy("rowid").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Politician{}, false, fmt.Errorf("build lookup: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Politician{}, false, fmt.Errorf("lookup politician: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Politician{}, false, fmt.Errorf("lookup rows: %w", err)
		}
		return domain.Politician{}, false, nil
	}

	p, err := scanPolitician(rows)
	if err != nil {
		return domain.Politician{}, false, err
	}
	return p, true, nil
}

func selectPoliticians() sq.SelectBuilder {
	return sq.Select("id", "name", "party", "office", "region",
		"external_directory_id", "photo_url", "bio",
		"credibility_score", "created_at", "updated_at").
		From("politicians")
}

func scanPolitician(rows *sql.Rows) (domain.Politician, error) {
	var (
		p                    domain.Politician
		createdAt, updatedAt string
	)
	if err := rows.Scan(&p.ID, &p.Name, &p.Party, &p.Office, &p.Region,
		&p.ExternalDirectoryID, &p.PhotoURL, &p.Bio,
		&p.CredibilityScore, &createdAt, &updatedAt); err != nil {
		return domain.Politician{}, fmt.Errorf("scan politician: %w", err)
	}

	var err error
	if p.CreatedAt, err = parseStamp(createdAt); err != nil {
		return domain.Politician{}, fmt.Errorf("scan politician created_at: %w", err)
	}
	if p.UpdatedAt, err = parseStamp(updatedAt); err != nil {
		return domain.Politician{}, fmt.Errorf("scan politician updated_at: %w", err)
	}
	return p, nil
}

func parseStamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
