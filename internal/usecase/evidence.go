package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

// EvidenceDeps wires the stores and identifier source of the evidence
// subsystem.
type EvidenceDeps struct {
	Politicians ports.PoliticianRepository
	Evidence    ports.EvidenceRepository
	IDs         ports.IDGenerator
}

// EvidenceService links externally stored media artifacts to officials
// and analyses. References stay opaque: resolving one to a fetchable
// link is the messaging platform's job at read time.
type EvidenceService struct {
	politicians ports.PoliticianRepository
	evidence    ports.EvidenceRepository
	ids         ports.IDGenerator
}

// NewEvidenceService constructs the attachment subsystem.
func NewEvidenceService(deps EvidenceDeps) *EvidenceService {
	return &EvidenceService{
		politicians: deps.Politicians,
		evidence:    deps.Evidence,
		ids:         deps.IDs,
	}
}

// Attach records a media reference against an official. The analysisID
// is optional; the politician must exist or the attachment fails with
// *domain.UnknownPoliticianError and nothing is written.
func (s *EvidenceService) Attach(ctx context.Context, politicianID, externalMediaRef, mediaType, description, analysisID string) (domain.Evidence, error) {
	if strings.TrimSpace(externalMediaRef) == "" {
		return domain.Evidence{}, fmt.Errorf("external media reference is required")
	}

	_, ok, err := s.politicians.FindByID(ctx, politicianID)
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("check politician: %w", err)
	}
	if !ok {
		return domain.Evidence{}, &domain.UnknownPoliticianError{PoliticianID: politicianID}
	}

	ev := domain.Evidence{
		ID:               s.ids.NewID(),
		PoliticianID:     politicianID,
		AnalysisID:       analysisID,
		ExternalMediaRef: externalMediaRef,
		MediaType:        mediaType,
		Description:      description,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.evidence.Insert(ctx, ev); err != nil {
		return domain.Evidence{}, fmt.Errorf("store evidence: %w", err)
	}

	return ev, nil
}

// ListByPolitician returns attached evidence in creation order.
func (s *EvidenceService) ListByPolitician(ctx context.Context, politicianID string) ([]domain.Evidence, error) {
	evidence, err := s.evidence.ListByPolitician(ctx, politicianID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return evidence, nil
}
