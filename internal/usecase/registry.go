package usecase

import (
	"context"
	"fmt"
	"strings"

	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

// RegistryDeps wires the stores and identifier source of the curation
// service.
type RegistryDeps struct {
	Repository ports.PoliticianRepository
	Evidence   ports.EvidenceRepository
	IDs        ports.IDGenerator
}

// RegistryService curates the local registry directly: manual seeding,
// search, and removal. Curated entries start at the zero credibility
// baseline and earn score through audits.
type RegistryService struct {
	repository ports.PoliticianRepository
	evidence   ports.EvidenceRepository
	ids        ports.IDGenerator
}

// NewRegistryService constructs the curation component.
func NewRegistryService(deps RegistryDeps) *RegistryService {
	return &RegistryService{
		repository: deps.Repository,
		evidence:   deps.Evidence,
		ids:        deps.IDs,
	}
}

// Seed inserts a manually curated record. A missing id is generated;
// an occupied id fails with *domain.DuplicateIDError.
func (s *RegistryService) Seed(ctx context.Context, p domain.Politician) (domain.Politician, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Politician{}, fmt.Errorf("name is required")
	}
	if p.ID == "" {
		p.ID = s.ids.NewID()
	}

	if err := s.repository.Insert(ctx, p); err != nil {
		return domain.Politician{}, fmt.Errorf("seed politician: %w", err)
	}
	return p, nil
}

// Search runs the case-insensitive substring lookup across name, party,
// and region, in insertion order.
func (s *RegistryService) Search(ctx context.Context, substring string) ([]domain.Politician, error) {
	return s.repository.Search(ctx, substring)
}

// Remove deletes an official. The delete is rejected with
// *domain.HasDependentsError while evidence still references it; the
// store repeats the check transactionally, so a concurrent attach
// cannot slip past this one.
func (s *RegistryService) Remove(ctx context.Context, id string) error {
	if s.evidence != nil {
		dependents, err := s.evidence.CountByPolitician(ctx, id)
		if err != nil {
			return fmt.Errorf("count dependents: %w", err)
		}
		if dependents > 0 {
			return &domain.HasDependentsError{PoliticianID: id, EvidenceCount: dependents}
		}
	}
	return s.repository.Remove(ctx, id)
}
