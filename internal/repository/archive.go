package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
)

// DefaultVerdictTable is the archive table name.
const DefaultVerdictTable = "briefing_verdicts"

const verdictColumns = "generated_at, name, score, label, reasons"

// ClickHouseArchive stores verdict rows in ClickHouse.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates the archive over an open pool.
func NewClickHouseArchive(db *sql.DB, table string) *ClickHouseArchive {
	if table == "" {
		table = DefaultVerdictTable
	}
	return &ClickHouseArchive{db: db, table: table}
}

var _ drepo.Archive = (*ClickHouseArchive)(nil)

// Init creates the verdict table when missing.
func (a *ClickHouseArchive) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	generated_at DateTime64(3, 'UTC'),
	name LowCardinality(String),
	score Float64,
	label String,
	reasons Array(String)
) ENGINE = MergeTree
PARTITION BY toYYYYMM(generated_at)
ORDER BY (name, generated_at)`, a.table)
	if _, err := a.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create %s: %w", a.table, err)
	}
	return nil
}

// StoreBatch inserts records with multi-row VALUES.
func (a *ClickHouseArchive) StoreBatch(ctx context.Context, records []models.VerdictRecord) error {
	if len(records) == 0 {
		return nil
	}
	const chunkSize = 500
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, r := range records[start:end] {
			if r.Name == "" {
				continue
			}
			reasons := r.Reasons
			if reasons == nil {
				reasons = []string{}
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, r.GeneratedAt.UTC(), r.Name, r.Score, r.Label, reasons)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", a.table, verdictColumns, strings.Join(values, ","))
		if _, err := a.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert verdicts: %w", err)
		}
	}
	return nil
}

// Query returns the newest records first. An empty name matches every evaluator.
func (a *ClickHouseArchive) Query(ctx context.Context, name string, from, to time.Time, limit int) ([]models.VerdictRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	where := []string{"generated_at >= ?", "generated_at <= ?"}
	args := []interface{}{from.UTC(), to.UTC()}
	if name != "" {
		where = append(where, "name = ?")
		args = append(args, name)
	}
	args = append(args, limit)

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY generated_at DESC LIMIT ?",
		verdictColumns, a.table, strings.Join(where, " AND "))
	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	out := make([]models.VerdictRecord, 0, limit)
	for rows.Next() {
		var r models.VerdictRecord
		if err := rows.Scan(&r.GeneratedAt, &r.Name, &r.Score, &r.Label, &r.Reasons); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return out, nil
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *ClickHouseArchive) Close() error {
	return a.db.Close()
}

// ArchiveSink writes every briefing's verdicts to an archive.
type ArchiveSink struct {
	archive drepo.Archive
}

func NewArchiveSink(archive drepo.Archive) *ArchiveSink {
	return &ArchiveSink{archive: archive}
}

func (s *ArchiveSink) Name() string { return "clickhouse" }

func (s *ArchiveSink) Save(ctx context.Context, b *models.Briefing) error {
	return s.archive.StoreBatch(ctx, b.Records())
}
