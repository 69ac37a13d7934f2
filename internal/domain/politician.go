package domain

import "time"

// Credibility baselines. Curated entries start at zero and earn score
// through audits; auto-imported entries start at the unverified midpoint.
const (
	SeededCredibilityBaseline   = 0.0
	ImportedCredibilityBaseline = 50.0
)

// Politician is the canonical local record of a public official.
type Politician struct {
	ID                  string
	Name                string
	Party               string
	Office              string
	Region              string
	ExternalDirectoryID string
	PhotoURL            string
	Bio                 string
	CredibilityScore    float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Imported reports whether the record was created by the synchronizer
// rather than curated by hand.
func (p Politician) Imported() bool {
	return p.ExternalDirectoryID != ""
}

// Evidence references an externally hosted media artifact backing an
// analysis. ExternalMediaRef stays opaque here; the messaging platform
// resolves it to a fetchable link at read time.
type Evidence struct {
	ID               string
	PoliticianID     string
	AnalysisID       string
	ExternalMediaRef string
	MediaType        string
	Description      string
	CreatedAt        time.Time
}
