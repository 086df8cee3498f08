// Package store keeps an append-only SQLite log of encoded sensor records.
//
// Vectors are stored in their serial text form so rows can be compared
// directly with console captures; channel readings are a little-endian uint16
// BLOB. The log is write-once: there is no similarity search.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/Amansingh-afk/edgehdc/hdc"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    seq     INTEGER PRIMARY KEY AUTOINCREMENT,
    at      INTEGER NOT NULL,
    vals    BLOB,
    vector  TEXT NOT NULL
);
`

// ErrNotFound is returned by Get for an unknown sequence number.
var ErrNotFound = errors.New("store: record not found")

// Record is one encoded sample set.
type Record struct {
	Seq    int64 // assigned by Append
	At     time.Time
	Values []uint16 // filtered channel readings, in channel order
	Vector hdc.Vector
}

// Store is a SQLite-backed record log. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the log at dsn, e.g. "file:vectors.db" or
// "file::memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", dsn)
	}
	// SQLite serialises writers anyway; one connection also keeps an
	// in-memory database alive for the lifetime of the Store.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "store: create schema")
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Append writes r and returns its sequence number. A zero r.At is stamped
// with the current time.
func (s *Store) Append(ctx context.Context, r Record) (int64, error) {
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records(at, vals, vector) VALUES(?, ?, ?)`,
		at.UnixNano(), encodeValues(r.Values), r.Vector.String())
	if err != nil {
		return 0, errors.Wrap(err, "store: append")
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "store: append")
	}
	return seq, nil
}

// Get returns the record with the given sequence number.
func (s *Store) Get(ctx context.Context, seq int64) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, at, vals, vector FROM records WHERE seq = ?`, seq)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, errors.Wrapf(ErrNotFound, "seq %d", seq)
	}
	return r, err
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, at, vals, vector FROM records ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(err, "store: recent")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "store: recent")
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "store: count")
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r    Record
		at   int64
		vals []byte
		text string
	)
	if err := sc.Scan(&r.Seq, &at, &vals, &text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, errors.Wrap(err, "store: scan")
	}
	r.At = time.Unix(0, at)
	values, err := decodeValues(vals)
	if err != nil {
		return Record{}, errors.Wrapf(err, "store: record %d", r.Seq)
	}
	r.Values = values
	if err := r.Vector.UnmarshalText([]byte(text)); err != nil {
		return Record{}, errors.Wrapf(err, "store: record %d", r.Seq)
	}
	return r, nil
}

func encodeValues(vals []uint16) []byte {
	if len(vals) == 0 {
		return nil
	}
	b := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func decodeValues(b []byte) ([]uint16, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%2 != 0 {
		return nil, errors.Errorf("invalid values blob length %d", len(b))
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}
