package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"backend/internal/domain"
)

func (r *Repository) ListGoods(ctx context.Context) ([]domain.Goods, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM goods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query goods: %w", err)
	}
	defer rows.Close()

	goods := []domain.Goods{}
	for rows.Next() {
		var g domain.Goods
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan goods row: %w", err)
		}
		goods = append(goods, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read goods rows: %w", err)
	}
	return goods, nil
}

// FindGoodsByName matches the stored name exactly, including case.
func (r *Repository) FindGoodsByName(ctx context.Context, name string) (domain.Goods, error) {
	var g domain.Goods
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM goods WHERE name = $1`, name).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Goods{}, ErrNotFound
	}
	if err != nil {
		return domain.Goods{}, fmt.Errorf("query goods by name: %w", err)
	}
	return g, nil
}

func (r *Repository) InsertGoods(ctx context.Context, name string) (domain.Goods, error) {
	g := domain.Goods{ID: uuid.New(), Name: name}
	_, err := r.pool.Exec(ctx, `INSERT INTO goods (id, name) VALUES ($1, $2)`, g.ID, g.Name)
	if err != nil {
		return domain.Goods{}, fmt.Errorf("insert goods: %w", err)
	}
	return g, nil
}
