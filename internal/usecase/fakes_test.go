package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"PromiseDetector/internal/directory"
	"PromiseDetector/internal/domain"
)

// fakeRepo is an in-memory PoliticianRepository with the same
// conflict-tolerant insert guarantee as the real store.
type fakeRepo struct {
	mu      sync.Mutex
	order   []string
	records map[string]domain.Politician
	inserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]domain.Politician{}}
}

func (r *fakeRepo) Insert(_ context.Context, p domain.Politician) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inserts++
	if _, ok := r.records[p.ID]; ok {
		return &domain.DuplicateIDError{ID: p.ID}
	}
	r.records[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (domain.Politician, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.records[id]
	return p, ok, nil
}

func (r *fakeRepo) FindByExactName(_ context.Context, name string) (domain.Politician, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if r.records[id].Name == name {
			return r.records[id], true, nil
		}
	}
	return domain.Politician{}, false, nil
}

func (r *fakeRepo) Search(_ context.Context, substring string) ([]domain.Politician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.Politician
	for _, id := range r.order {
		p := r.records[id]
		if containsFold(p.Name, substring) || containsFold(p.Party, substring) || containsFold(p.Region, substring) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (r *fakeRepo) SearchByName(_ context.Context, substring string) ([]domain.Politician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.Politician
	for _, id := range r.order {
		if containsFold(r.records[id].Name, substring) {
			results = append(results, r.records[id])
		}
	}
	return results, nil
}

func (r *fakeRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, ok, err := r.FindByExactName(ctx, name)
	return ok, err
}

func (r *fakeRepo) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, domain.ErrNotFound)
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// fakeEvidenceRepo is an in-memory EvidenceRepository.
type fakeEvidenceRepo struct {
	mu      sync.Mutex
	records []domain.Evidence
}

func (r *fakeEvidenceRepo) Insert(_ context.Context, ev domain.Evidence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, ev)
	return nil
}

func (r *fakeEvidenceRepo) ListByPolitician(_ context.Context, politicianID string) ([]domain.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.Evidence
	for _, ev := range r.records {
		if ev.PoliticianID == politicianID {
			results = append(results, ev)
		}
	}
	return results, nil
}

func (r *fakeEvidenceRepo) CountByPolitician(ctx context.Context, politicianID string) (int, error) {
	list, err := r.ListByPolitician(ctx, politicianID)
	return len(list), err
}

// fakeProvider returns canned candidates or a fixed error.
type fakeProvider struct {
	mu         sync.Mutex
	candidates []directory.Candidate
	err        error
	calls      int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) SearchByName(_ context.Context, _ string) ([]directory.Candidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.candidates, nil
}

// fakeVotes returns a canned voting history.
type fakeVotes struct {
	votes []domain.Vote
	err   error
}

func (v *fakeVotes) FetchVotes(_ context.Context, _ string) ([]domain.Vote, error) {
	return v.votes, v.err
}

// fakeNotifier captures published digests.
type fakeNotifier struct {
	mu      sync.Mutex
	digests []string
}

func (n *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.digests = append(n.digests, digest)
	return nil
}

// fakeScout returns canned statements.
type fakeScout struct {
	statements []string
}

func (s *fakeScout) FetchStatements(_ context.Context, _ string) ([]string, error) {
	return s.statements, nil
}

// seqIDs is a deterministic identifier source.
type seqIDs struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

func containsFold(haystack, needle string) bool {
	return needle != "" && strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
