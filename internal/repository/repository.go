// Package repository is the typed gateway to the Postgres store. It maps
// rows to storage-shape records and domain shapes and carries no business
// rules beyond that mapping.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"backend/internal/domain"
)

// ErrNotFound aliases the domain sentinel so callers can match either name.
var ErrNotFound = domain.ErrNotFound

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
