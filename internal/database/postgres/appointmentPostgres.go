package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solomonczyk/autoservice/internal/entity"
)

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `id, shop_id, client_id, service_id, start_time, end_time, status, created_at`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*entity.Appointment, error) {
	var a entity.Appointment
	var status string
	err := row.Scan(
		&a.ID,
		&a.ShopID,
		&a.ClientID,
		&a.ServiceID,
		&a.StartTime,
		&a.EndTime,
		&status,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = entity.AppointmentStatus(status)
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	query := `
		INSERT INTO appointments (shop_id, client_id, service_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		appointment.ShopID,
		appointment.ClientID,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.EndTime,
		string(appointment.Status),
	).Scan(&appointment.ID, &appointment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appointment, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET service_id = $1, start_time = $2, end_time = $3, status = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.EndTime,
		string(appointment.Status),
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrAppointmentNotFound
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrAppointmentNotFound
	}
	return nil
}

func (r *appointmentRepository) ListByShop(ctx context.Context, shopID int64, from, to time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE shop_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	rows, err := r.db.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments by shop: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *appointmentRepository) ListByClient(ctx context.Context, clientID int64) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE client_id = $1
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments by client: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *appointmentRepository) ListOverlapping(ctx context.Context, shopID int64, from, to time.Time, excludeID int64) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE shop_id = $1
		  AND start_time >= $2 AND start_time < $3
		  AND status NOT IN ('cancelled', 'waitlist')
		  AND ($4 = 0 OR id <> $4)
		ORDER BY start_time
	`

	rows, err := r.db.QueryContext(ctx, query, shopID, from, to, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *appointmentRepository) ListReminders(ctx context.Context, from, to time.Time) ([]*entity.AppointmentReminder, error) {
	query := `
		SELECT a.id, a.start_time, a.shop_id, s.name, c.full_name, c.telegram_id
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN services s ON s.id = a.service_id
		WHERE a.status = 'confirmed'
		  AND a.start_time >= $1 AND a.start_time < $2
		  AND c.telegram_id IS NOT NULL
		ORDER BY a.start_time
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*entity.AppointmentReminder
	for rows.Next() {
		var rem entity.AppointmentReminder
		var start entity.LocalTime
		err := rows.Scan(
			&rem.AppointmentID,
			&start,
			&rem.ShopID,
			&rem.ServiceName,
			&rem.ClientName,
			&rem.TelegramID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		rem.StartTime = start.Time
		reminders = append(reminders, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}

func collectAppointments(rows *sql.Rows) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appointments, nil
}
