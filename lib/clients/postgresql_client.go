package clients

import (
	"database/sql"
	"fmt"
	"time"

	"obrabot/lib/config"
	"obrabot/lib/constants"

	_ "github.com/lib/pq"
)

const (
	connectAttempts = 3
	connectDelay    = 2 * time.Second
)

// NewPostgresClient opens the shared PostgreSQL connection pool.
// The initial ping is retried a fixed number of times with a fixed delay,
// so the bot survives a database that is still starting up.
func NewPostgresClient(cfg config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open(constants.DriverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	var pingErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pingErr = db.Ping()
		if pingErr == nil {
			return db, nil
		}
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to ping database after %d attempts: %w", connectAttempts, pingErr)
}
