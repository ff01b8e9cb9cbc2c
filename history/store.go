// Package history persists raw fetched bars in SQLite so analyses can
// be re-run offline. Computed indicator columns are never stored; they
// are rebuilt per request.
package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// Schema creates the fetch log and the bar rows. A NULL close marks a
// missing observation, mirroring the NaN convention in memory.
const Schema = `
CREATE TABLE IF NOT EXISTS fetches (
	id         TEXT PRIMARY KEY,
	symbol     TEXT NOT NULL,
	period     TEXT NOT NULL,
	interval   TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bars (
	fetch_id TEXT NOT NULL REFERENCES fetches(id),
	ts       INTEGER NOT NULL,
	open     REAL NOT NULL,
	high     REAL NOT NULL,
	low      REAL NOT NULL,
	close    REAL,
	volume   REAL NOT NULL,
	PRIMARY KEY (fetch_id, ts)
);

CREATE INDEX IF NOT EXISTS idx_fetches_symbol ON fetches(symbol, fetched_at);
`

// ErrNotFound is returned when no stored fetch exists for a symbol.
var ErrNotFound = errors.New("no stored bars")

// FetchRecord describes one stored fetch.
type FetchRecord struct {
	ID        string
	Symbol    string
	Period    string
	Interval  string
	FetchedAt time.Time
}

// Store is a SQLite-backed bar archive.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// newID returns a ULID string. ULIDs sort by generation time, which
// keeps the fetch log naturally chronological in index order.
func newID() string {
	return ulid.Make().String()
}

// SaveFetch records one fetch and its bars, returning the fetch id.
func (s *Store) SaveFetch(ctx context.Context, symbol, period, interval string, bars []market.Bar) (string, error) {
	if len(bars) == 0 {
		return "", market.ErrEmptyInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := newID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO fetches (id, symbol, period, interval, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, symbol, period, interval, time.Now().UTC().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert fetch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bars (fetch_id, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare bar insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			id, b.Time.UTC().Unix(), b.Open, b.High, b.Low, nullableClose(b.Close), b.Volume,
		); err != nil {
			return "", fmt.Errorf("insert bar at %s: %w", b.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Bars loads the bars of the most recent fetch for symbol, ordered by
// timestamp, along with the fetch record they belong to.
func (s *Store) Bars(ctx context.Context, symbol string) ([]market.Bar, FetchRecord, error) {
	var rec FetchRecord
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, symbol, period, interval, fetched_at
		FROM fetches WHERE symbol = ?
		ORDER BY fetched_at DESC, id DESC LIMIT 1`, symbol,
	).Scan(&rec.ID, &rec.Symbol, &rec.Period, &rec.Interval, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, FetchRecord{}, fmt.Errorf("%w for %s", ErrNotFound, symbol)
	}
	if err != nil {
		return nil, FetchRecord{}, fmt.Errorf("load fetch record: %w", err)
	}
	rec.FetchedAt = time.Unix(fetchedAt, 0).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, open, high, low, close, volume
		FROM bars WHERE fetch_id = ? ORDER BY ts ASC`, rec.ID)
	if err != nil {
		return nil, FetchRecord{}, fmt.Errorf("load bars: %w", err)
	}
	defer rows.Close()

	var bars []market.Bar
	for rows.Next() {
		var ts int64
		var b market.Bar
		var closeV sql.NullFloat64
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &closeV, &b.Volume); err != nil {
			return nil, FetchRecord{}, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		if closeV.Valid {
			b.Close = closeV.Float64
		} else {
			b.Close = math.NaN()
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, FetchRecord{}, fmt.Errorf("iterate bars: %w", err)
	}

	return bars, rec, nil
}

// Fetches lists the stored fetch records for symbol, newest first.
func (s *Store) Fetches(ctx context.Context, symbol string) ([]FetchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, symbol, period, interval, fetched_at
		FROM fetches WHERE symbol = ?
		ORDER BY fetched_at DESC, id DESC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("list fetches: %w", err)
	}
	defer rows.Close()

	var recs []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var fetchedAt int64
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.Period, &rec.Interval, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan fetch record: %w", err)
		}
		rec.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// nullableClose maps NaN to SQL NULL.
func nullableClose(v float64) driver.Value {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
