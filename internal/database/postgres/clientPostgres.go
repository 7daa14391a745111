package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/solomonczyk/autoservice/internal/entity"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (telegram_id, phone, full_name, vehicle_info)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		client.TelegramID,
		client.Phone,
		client.FullName,
		client.VehicleInfo,
	).Scan(&client.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return entity.ErrClientExists
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	query := `SELECT id, telegram_id, phone, full_name, COALESCE(vehicle_info, '') FROM clients WHERE id = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, id))
}

func (r *clientRepository) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	query := `SELECT id, telegram_id, phone, full_name, COALESCE(vehicle_info, '') FROM clients WHERE phone = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, phone))
}

func (r *clientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.Client, error) {
	query := `SELECT id, telegram_id, phone, full_name, COALESCE(vehicle_info, '') FROM clients WHERE telegram_id = $1`
	return r.scanClient(r.db.QueryRowContext(ctx, query, telegramID))
}

func (r *clientRepository) UpdateTelegramID(ctx context.Context, clientID, telegramID int64) error {
	query := `UPDATE clients SET telegram_id = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, telegramID, clientID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return entity.ErrTelegramTaken
		}
		return fmt.Errorf("failed to update telegram id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) GetAll(ctx context.Context) ([]*entity.Client, error) {
	query := `SELECT id, telegram_id, phone, full_name, COALESCE(vehicle_info, '') FROM clients ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.TelegramID, &c.Phone, &c.FullName, &c.VehicleInfo); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) scanClient(row *sql.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.TelegramID, &c.Phone, &c.FullName, &c.VehicleInfo)
	if err == sql.ErrNoRows {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}
