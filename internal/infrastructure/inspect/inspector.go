package inspect

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"PromiseDetector/pkg/logger"
)

const sampleLimit = 10

// Table names come from configuration and end up in the FROM clause;
// anything beyond a plain identifier is refused.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// placeholderTokens flag records that look like fixtures rather than
// captured production data.
var placeholderTokens = []string{"test", "mock", "example", "candidato", "user@", "foo", "bar"}

// TableReport summarizes one inspected table.
type TableReport struct {
	Count      int            `json:"count"`
	Suspected  bool           `json:"suspectedPlaceholder"`
	Indicators []string       `json:"indicators,omitempty"`
	Sample     map[string]any `json:"sample,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Inspector performs a read-only bulk dump of the remote relational
// backend for offline auditing. It is a diagnostic utility, not part of
// the registry's runtime contract.
type Inspector struct {
	db  *sql.DB
	log *log.Logger
}

// Open connects to the backend via its DSN.
func Open(dsn string) (*Inspector, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open inspection backend: %w", err)
	}
	return &Inspector{db: db, log: logger.New("inspect")}, nil
}

// Close releases the backend connection.
func (i *Inspector) Close() error {
	return i.db.Close()
}

// Report dumps each table: row count of the sampled window, the first
// record, and placeholder heuristics. Per-table failures are recorded
// in the report instead of aborting the dump.
func (i *Inspector) Report(ctx context.Context, tables []string) map[string]TableReport {
	report := make(map[string]TableReport, len(tables))

	for _, table := range tables {
		entry, err := i.inspectTable(ctx, table)
		if err != nil {
			i.log.Printf("table %s: %v", table, err)
			report[table] = TableReport{Error: err.Error()}
			continue
		}
		i.log.Printf("table %s: %d rows sampled, placeholder=%v", table, entry.Count, entry.Suspected)
		report[table] = entry
	}

	return report
}

func (i *Inspector) inspectTable(ctx context.Context, table string) (TableReport, error) {
	if !identifierPattern.MatchString(table) {
		return TableReport{}, fmt.Errorf("invalid table name %q", table)
	}

	query, args, err := sq.Select("*").
		From(table).
		Limit(sampleLimit).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return TableReport{}, fmt.Errorf("build sample query: %w", err)
	}

	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return TableReport{}, fmt.Errorf("sample table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return TableReport{}, fmt.Errorf("read columns: %w", err)
	}

	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for idx := range values {
			ptrs[idx] = &values[idx]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return TableReport{}, fmt.Errorf("scan row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for idx, col := range columns {
			record[col] = normalizeValue(values[idx])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return TableReport{}, fmt.Errorf("sample rows: %w", err)
	}

	entry := TableReport{Count: len(records)}
	if len(records) == 0 {
		return entry, nil
	}

	serialized, err := json.Marshal(records)
	if err != nil {
		return TableReport{}, fmt.Errorf("serialize sample: %w", err)
	}

	entry.Indicators = FlagPlaceholders(string(serialized))
	entry.Suspected = len(entry.Indicators) > 0
	entry.Sample = records[0]
	return entry, nil
}

// FlagPlaceholders returns the generic tokens found in the serialized
// sample, lowercased substring match.
func FlagPlaceholders(serialized string) []string {
	lowered := strings.ToLower(serialized)

	var found []string
	for _, token := range placeholderTokens {
		if strings.Contains(lowered, token) {
			found = append(found, token)
		}
	}
	return found
}

func normalizeValue(value any) any {
	if raw, ok := value.([]byte); ok {
		return string(raw)
	}
	return value
}
