package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solomonczyk/autoservice/internal/entity"
)

type shopRepository struct {
	db *sql.DB
}

func NewShopRepository(db *sql.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*entity.Shop, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(work_start, ''), COALESCE(work_end, '') FROM shops WHERE id = $1`

	var s entity.Shop
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Address, &s.WorkStart, &s.WorkEnd)
	if err == sql.ErrNoRows {
		return nil, entity.ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return &s, nil
}

func (r *shopRepository) GetAll(ctx context.Context) ([]*entity.Shop, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(work_start, ''), COALESCE(work_end, '') FROM shops ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	var shops []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.WorkStart, &s.WorkEnd); err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shops: %w", err)
	}
	return shops, nil
}
