package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solomonczyk/autoservice/internal/entity"
)

type serviceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (name, duration_minutes, base_price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		service.Name,
		service.DurationMinutes,
		service.BasePrice,
	).Scan(&service.ID)

	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	query := `SELECT id, name, duration_minutes, base_price FROM services WHERE id = $1`

	var s entity.Service
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.BasePrice)
	if err == sql.ErrNoRows {
		return nil, entity.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &s, nil
}

func (r *serviceRepository) GetAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT id, name, duration_minutes, base_price FROM services ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.BasePrice); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}
	return services, nil
}

// Delete удаляет услугу, если на неё не ссылается ни одна запись
func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var refs int
	query := `SELECT COUNT(*) FROM appointments WHERE service_id = $1`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&refs); err != nil {
		return fmt.Errorf("failed to count service references: %w", err)
	}
	if refs > 0 {
		return entity.ErrServiceInUse
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrServiceNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
