package output

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
)

// DuckDBExporter writes classification and interval results into a DuckDB
// database so they can be queried downstream without re-running the
// pipeline.
type DuckDBExporter struct {
	db   *sql.DB
	path string
}

// OpenDuckDB opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func OpenDuckDB(path string) (*DuckDBExporter, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	e := &DuckDBExporter{db: db, path: path}
	if err := e.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return e, nil
}

// Close closes the database connection.
func (e *DuckDBExporter) Close() error {
	return e.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (e *DuckDBExporter) DB() *sql.DB {
	return e.db
}

// ensureSchema creates tables if they don't exist.
func (e *DuckDBExporter) ensureSchema() error {
	if _, err := e.db.Exec(`CREATE TABLE IF NOT EXISTS gene_classifications (
		sample VARCHAR,
		gene VARCHAR,
		chrom VARCHAR,
		start BIGINT,
		end_ BIGINT,
		strand VARCHAR,
		score_a DOUBLE,
		score_b DOUBLE,
		score_ab DOUBLE,
		score_nab DOUBLE,
		score_axb DOUBLE,
		max_ratio DOUBLE,
		primary_class VARCHAR,
		confidence VARCHAR,
		positioned BOOLEAN
	)`); err != nil {
		return err
	}

	_, err := e.db.Exec(`CREATE TABLE IF NOT EXISTS gene_intervals (
		sample VARCHAR,
		tier VARCHAR,
		chrom VARCHAR,
		start BIGINT,
		end_ BIGINT,
		primary_class VARCHAR,
		center DOUBLE,
		length BIGINT
	)`)
	return err
}

// WriteClassifications batch-inserts classified genes using the Appender
// API.
func (e *DuckDBExporter) WriteClassifications(sample string, genes []*classify.Gene) error {
	if len(genes) == 0 {
		return nil
	}

	appender, cleanup, err := e.newAppender("gene_classifications")
	if err != nil {
		return err
	}
	defer cleanup()

	for _, g := range genes {
		if err := appender.AppendRow(
			sample, g.Name, g.Chrom, g.Start, g.End, g.Strand,
			g.Scores.A, g.Scores.B, g.Scores.AB, g.Scores.NAB, g.Scores.AXB,
			g.MaxRatio, g.Primary, g.Confidence, g.Positioned,
		); err != nil {
			return fmt.Errorf("append classification: %w", err)
		}
	}

	return appender.Flush()
}

// WriteIntervals batch-inserts one tier's partition intervals.
func (e *DuckDBExporter) WriteIntervals(sample, tier string, ivs []interval.Interval) error {
	if len(ivs) == 0 {
		return nil
	}

	appender, cleanup, err := e.newAppender("gene_intervals")
	if err != nil {
		return err
	}
	defer cleanup()

	for _, iv := range ivs {
		if err := appender.AppendRow(
			sample, tier, iv.Chrom, iv.Start, iv.End, iv.Class, iv.Center, iv.Length,
		); err != nil {
			return fmt.Errorf("append interval: %w", err)
		}
	}

	return appender.Flush()
}

// newAppender creates a DuckDB appender for the given table along with a
// cleanup function closing the appender and its connection.
func (e *DuckDBExporter) newAppender(table string) (*goduckdb.Appender, func(), error) {
	conn, err := e.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}

	cleanup := func() {
		appender.Close()
		conn.Close()
	}
	return appender, cleanup, nil
}
