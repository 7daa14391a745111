package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/solomonczyk/autoservice/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS shops (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(500),
			work_start VARCHAR(5) DEFAULT '09:00',
			work_end VARCHAR(5) DEFAULT '18:00'
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			shop_id INTEGER NOT NULL REFERENCES shops(id)
		)`,

		`CREATE TABLE IF NOT EXISTS clients (
			id SERIAL PRIMARY KEY,
			telegram_id BIGINT UNIQUE,
			phone VARCHAR(20) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			vehicle_info VARCHAR(500)
		)`,

		`CREATE TABLE IF NOT EXISTS services (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			duration_minutes INTEGER NOT NULL,
			base_price DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS appointments (
			id SERIAL PRIMARY KEY,
			shop_id INTEGER NOT NULL REFERENCES shops(id),
			client_id INTEGER NOT NULL REFERENCES clients(id),
			service_id INTEGER NOT NULL REFERENCES services(id),
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_appointments_shop_id ON appointments(shop_id)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_start_time ON appointments(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_shop_start ON appointments(shop_id, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_phone ON clients(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_telegram_id ON clients(telegram_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
