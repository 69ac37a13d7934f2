package camara

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PromiseDetector/internal/directory"
	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

const defaultBaseURL = "https://dadosabertos.camara.leg.br/api/v2"

// Client talks to the federal chamber open-data API: representative
// search by name and recent plenary votes.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ directory.Provider = (*Client)(nil)
var _ ports.VotingSource = (*Client)(nil)

// NewClient wires an HTTP client; the timeout bounds every upstream
// call so a slow directory can never block a resolve indefinitely.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Name identifies the provider inside the registry.
func (c *Client) Name() string {
	return "camara"
}

// SearchByName queries the representative directory. Transport errors,
// timeouts, and non-success statuses surface as ErrUpstreamUnavailable
// so the caller can decide whether to retry.
func (c *Client) SearchByName(ctx context.Context, name string) ([]directory.Candidate, error) {
	endpoint := fmt.Sprintf("%s/deputados?nome=%s", c.baseURL, url.QueryEscape(name))

	var payload struct {
		Dados []struct {
			ID           int    `json:"id"`
			Nome         string `json:"nome"`
			SiglaPartido string `json:"siglaPartido"`
			SiglaUf      string `json:"siglaUf"`
			URLFoto      string `json:"urlFoto"`
		} `json:"dados"`
	}

	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	candidates := make([]directory.Candidate, 0, len(payload.Dados))
	for _, d := range payload.Dados {
		candidates = append(candidates, directory.Candidate{
			NativeID: strconv.Itoa(d.ID),
			Name:     d.Nome,
			Party:    d.SiglaPartido,
			Region:   d.SiglaUf,
			PhotoURL: d.URLFoto,
		})
	}

	return candidates, nil
}

// FetchVotes returns the recent roll calls of a representative, newest
// first, keyed by the directory's native identifier.
func (c *Client) FetchVotes(ctx context.Context, externalDirectoryID string) ([]domain.Vote, error) {
	endpoint := fmt.Sprintf("%s/deputados/%s/votacoes?ordem=DESC",
		c.baseURL, url.PathEscape(externalDirectoryID))

	var payload struct {
		Dados []struct {
			Data      string `json:"data"`
			Tema      string `json:"tema"`
			Voto      string `json:"voto"`
			Descricao string `json:"descricao"`
		} `json:"dados"`
	}

	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	votes := make([]domain.Vote, 0, len(payload.Dados))
	for _, d := range payload.Dados {
		date, err := time.Parse("2006-01-02", d.Data)
		if err != nil {
			// Reference data; an unparsable roll call is skipped, not fatal.
			continue
		}
		votes = append(votes, domain.Vote{
			Date:        date,
			Topic:       d.Tema,
			Choice:      choiceFromLabel(d.Voto),
			Description: d.Descricao,
		})
	}

	return votes, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PromiseDetector/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: directory returned %s", domain.ErrUpstreamUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.MalformedUpstreamDataError{Field: "body"}
	}

	return nil
}

func choiceFromLabel(label string) domain.VoteChoice {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "sim", "yes", "for":
		return domain.VoteFor
	case "não", "nao", "no", "against":
		return domain.VoteAgainst
	default:
		return domain.VoteAbstain
	}
}
