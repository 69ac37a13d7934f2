package scout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<html><body>
<p>Vou garantir que o orçamento da educação seja dobrado até 2027.</p>
<p>Breve nota.</p>
<blockquote>Prometo duplicar os investimentos em creches municipais.</blockquote>
<li>Comprometo-me a manter os repasses do Fundeb integralmente.</li>
<p>Vou garantir que o orçamento da educação seja dobrado até 2027.</p>
<p>Nada relacionado a compromissos aparece neste parágrafo longo.</p>
</body></html>`

func TestFetchStatements(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	scout := NewPageScout(server.Client(), []string{"vou", "prometo", "comprometo"})

	statements, err := scout.FetchStatements(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := []string{
		"Vou garantir que o orçamento da educação seja dobrado até 2027.",
		"Prometo duplicar os investimentos em creches municipais.",
		"Comprometo-me a manter os repasses do Fundeb integralmente.",
	}
	if len(statements) != len(want) {
		t.Fatalf("expected %d statements, got %d: %v", len(want), len(statements), statements)
	}
	for i := range want {
		if statements[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], statements[i])
		}
	}
}

func TestFetchStatementsCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>Vou   investir\n\n em   saneamento básico.</p>"))
	}))
	defer server.Close()

	scout := NewPageScout(server.Client(), []string{"vou"})

	statements, err := scout.FetchStatements(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(statements) != 1 || statements[0] != "Vou investir em saneamento básico." {
		t.Fatalf("unexpected statements: %v", statements)
	}
}

func TestFetchStatementsPageError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scout := NewPageScout(server.Client(), []string{"vou"})

	if _, err := scout.FetchStatements(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error on non-200 page")
	}
}
