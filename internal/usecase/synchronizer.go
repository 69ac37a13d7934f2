package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"PromiseDetector/internal/directory"
	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

const (
	importedIDPrefix = "auto_"
	defaultOffice    = "Deputado Federal"
	importedBio      = "Imported automatically from the open-data directory."
)

// SynchronizerDeps wires the registry and the remote directory.
type SynchronizerDeps struct {
	Repository ports.PoliticianRepository
	Provider   directory.Provider
	Logger     *slog.Logger
}

// Synchronizer reconciles the local registry against the remote
// open-data directory on lookup miss.
type Synchronizer struct {
	repository ports.PoliticianRepository
	provider   directory.Provider
	logger     *slog.Logger
}

// NewSynchronizer constructs the lookup-or-import component.
func NewSynchronizer(deps SynchronizerDeps) *Synchronizer {
	return &Synchronizer{
		repository: deps.Repository,
		provider:   deps.Provider,
		logger:     deps.Logger,
	}
}

// Resolve returns the canonical record for the named official. A local
// hit is returned unchanged; the store is authoritative once populated.
// On miss the remote directory is consulted, the first candidate is
// imported (remote ranking is trusted), and the stored record returned.
// A duplicate-insert race with a concurrent resolve for the same name
// is benign: the record that won the race is re-fetched and returned.
func (s *Synchronizer) Resolve(ctx context.Context, name string) (domain.Politician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Politician{}, fmt.Errorf("name is required")
	}

	if p, ok, err := s.repository.FindByExactName(ctx, name); err != nil {
		return domain.Politician{}, fmt.Errorf("local exact lookup: %w", err)
	} else if ok {
		return p, nil
	}

	// Name-scoped on purpose: a query like "PL" must not resolve to the
	// first official of that party.
	matches, err := s.repository.SearchByName(ctx, name)
	if err != nil {
		return domain.Politician{}, fmt.Errorf("local substring lookup: %w", err)
	}
	if len(matches) > 0 {
		return matches[0], nil
	}

	if s.provider == nil {
		return domain.Politician{}, fmt.Errorf("no directory provider configured")
	}

	candidates, err := s.provider.SearchByName(ctx, name)
	if err != nil {
		return domain.Politician{}, fmt.Errorf("directory search %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return domain.Politician{}, fmt.Errorf("%q: %w", name, domain.ErrNotFound)
	}

	record, err := mapCandidate(candidates[0])
	if err != nil {
		return domain.Politician{}, err
	}

	if err := s.repository.Insert(ctx, record); err != nil {
		var dup *domain.DuplicateIDError
		if errors.As(err, &dup) {
			// Lost the race to a concurrent resolve; the stored record wins.
			stored, ok, ferr := s.repository.FindByID(ctx, record.ID)
			if ferr != nil {
				return domain.Politician{}, fmt.Errorf("re-fetch after conflict: %w", ferr)
			}
			if !ok {
				return domain.Politician{}, fmt.Errorf("record %s vanished after conflict", record.ID)
			}
			return stored, nil
		}
		return domain.Politician{}, fmt.Errorf("insert imported record: %w", err)
	}

	s.debug("imported official",
		"name", record.Name, "id", record.ID, "directory", s.provider.Name())

	return record, nil
}

func mapCandidate(cand directory.Candidate) (domain.Politician, error) {
	if strings.TrimSpace(cand.Name) == "" {
		return domain.Politician{}, &domain.MalformedUpstreamDataError{Field: "name"}
	}
	if strings.TrimSpace(cand.NativeID) == "" {
		return domain.Politician{}, &domain.MalformedUpstreamDataError{Field: "id"}
	}

	office := cand.Office
	if office == "" {
		office = defaultOffice
	}

	return domain.Politician{
		ID:                  importedIDPrefix + cand.NativeID,
		Name:                cand.Name,
		Party:               cand.Party,
		Office:              office,
		Region:              cand.Region,
		ExternalDirectoryID: cand.NativeID,
		PhotoURL:            cand.PhotoURL,
		Bio:                 importedBio,
		CredibilityScore:    domain.ImportedCredibilityBaseline,
	}, nil
}

func (s *Synchronizer) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
