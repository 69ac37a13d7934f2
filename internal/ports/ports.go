package ports

import (
	"context"
	"time"

	"PromiseDetector/internal/domain"
)

// PoliticianRepository is the local registry of official records.
// Insert fails with *domain.DuplicateIDError when the id is taken;
// name uniqueness is the synchronizer's concern, not the store's.
type PoliticianRepository interface {
	Insert(ctx context.Context, p domain.Politician) error
	FindByID(ctx context.Context, id string) (domain.Politician, bool, error)
	FindByExactName(ctx context.Context, name string) (domain.Politician, bool, error)
	Search(ctx context.Context, substring string) ([]domain.Politician, error)
	SearchByName(ctx context.Context, substring string) ([]domain.Politician, error)
	Exists(ctx context.Context, name string) (bool, error)
	Remove(ctx context.Context, id string) error
}

// EvidenceRepository persists media references owned by politicians.
type EvidenceRepository interface {
	Insert(ctx context.Context, ev domain.Evidence) error
	ListByPolitician(ctx context.Context, politicianID string) ([]domain.Evidence, error)
	CountByPolitician(ctx context.Context, politicianID string) (int, error)
}

// VotingSource returns recent roll-call votes for an imported official,
// keyed by the directory's native identifier.
type VotingSource interface {
	FetchVotes(ctx context.Context, externalDirectoryID string) ([]domain.Vote, error)
}

// PromiseSource extracts candidate promise statements from a public page.
type PromiseSource interface {
	FetchStatements(ctx context.Context, pageURL string) ([]string, error)
}

// Notifier streams audit digests to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// MediaLinkResolver turns a stored opaque media reference into a
// fetchable URL. The registry itself never performs this resolution.
type MediaLinkResolver interface {
	FileLink(ctx context.Context, mediaRef string) (string, error)
}

// IDGenerator supplies opaque identifiers for locally created records.
type IDGenerator interface {
	NewID() string
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
