package scout

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PromiseDetector/internal/ports"
)

const minStatementLength = 20

// PageScout extracts promise-like statements from a public web page by
// scanning text blocks for configured commitment keywords.
type PageScout struct {
	client   *http.Client
	keywords []string
}

var _ ports.PromiseSource = (*PageScout)(nil)

// NewPageScout wires an HTTP client and keyword list.
func NewPageScout(client *http.Client, keywords []string) *PageScout {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &PageScout{client: client, keywords: keywords}
}

// FetchStatements downloads the page and returns matching statements in
// document order, deduplicated.
func (s *PageScout) FetchStatements(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "PromiseDetector/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var statements []string
	seen := map[string]struct{}{}

	doc.Find("p, blockquote, li").Each(func(i int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) < minStatementLength {
			return
		}
		if !s.matches(text) {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		statements = append(statements, text)
	})

	return statements, nil
}

func (s *PageScout) matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range s.keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
