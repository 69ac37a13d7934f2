package inspect

import (
	"context"
	"reflect"
	"testing"

	"PromiseDetector/pkg/logger"
)

func TestInspectTableRejectsInvalidName(t *testing.T) {
	t.Parallel()

	inspector := &Inspector{log: logger.New("inspect")}

	for _, table := range []string{"users; DROP TABLE users", `pol"iticians`, "a b", ""} {
		if _, err := inspector.inspectTable(context.Background(), table); err == nil {
			t.Fatalf("expected rejection of table name %q", table)
		}
	}
}

func TestInspectTableAcceptsPlainIdentifier(t *testing.T) {
	t.Parallel()

	for _, table := range []string{"users", "evidence_storage", "_private"} {
		if !identifierPattern.MatchString(table) {
			t.Fatalf("expected %q to be accepted", table)
		}
	}
}

func TestFlagPlaceholders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		serialized string
		want       []string
	}{
		{
			"fixture record",
			`[{"name":"Candidato Teste","email":"user@example.com"}]`,
			[]string{"test", "example", "candidato", "user@"},
		},
		{
			"real looking record",
			`[{"name":"Nikolas Ferreira","party":"PL","region":"MG"}]`,
			nil,
		},
		{
			"case insensitive",
			`[{"note":"MOCK data from the FOO environment"}]`,
			[]string{"mock", "foo"},
		},
	}

	for _, tc := range cases {
		got := FlagPlaceholders(tc.serialized)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	if got := normalizeValue([]byte("raw")); got != "raw" {
		t.Fatalf("expected byte slices to become strings, got %v", got)
	}
	if got := normalizeValue(int64(7)); got != int64(7) {
		t.Fatalf("expected non-byte values untouched, got %v", got)
	}
}
