// Package store is the persistence layer. Rows are scanned into typed
// records at this boundary; nothing above it sees raw rows.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a missing row and a row the caller does not
// own. Handlers surface the two identically so existence never leaks.
var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// dateFmt is the wire and storage format for calendar dates.
const dateFmt = "2006-01-02"
