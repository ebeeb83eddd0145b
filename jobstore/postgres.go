package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresStore is a Store backed by a Postgres table, opened through
// sqlx with a tuned connection pool.
type PostgresStore struct {
	db *sqlx.DB
}

// ConnectPostgres opens connectionString and applies the pool limits
// appropriate for a scheduler's modest connection footprint.
func ConnectPostgres(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("jobstore: connect postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS cron_jobs (
	id TEXT PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	expression TEXT NOT NULL,
	command TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cron_job_logs (
	id BIGSERIAL PRIMARY KEY,
	job_name TEXT NOT NULL,
	level TEXT NOT NULL,
	message TEXT NOT NULL,
	logged_at TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the job and log tables if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *PostgresStore) Has(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM cron_jobs WHERE name = $1)`, name)
	return exists, err
}

func (s *PostgresStore) Get(ctx context.Context, name string) (Job, error) {
	var job Job
	err := s.db.GetContext(ctx, &job,
		`SELECT id, name, expression, command, created_at, updated_at FROM cron_jobs WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

func (s *PostgresStore) Add(ctx context.Context, job Job) error {
	if job.ID == "" {
		job.ID = newJobID()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cron_jobs (id, name, expression, command, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		job.ID, job.Name, job.Expression, job.Command, job.CreatedAt, job.UpdatedAt)
	if pqErr, ok := err.(interface{ SQLState() string }); ok && pqErr.SQLState() == "23505" {
		return ErrExists
	}
	return err
}

func (s *PostgresStore) Update(ctx context.Context, job Job) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cron_jobs SET expression = $2, command = $3, updated_at = $4 WHERE name = $1`,
		job.Name, job.Expression, job.Command, job.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cron_jobs WHERE name = $1`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := s.db.SelectContext(ctx, &jobs,
		`SELECT id, name, expression, command, created_at, updated_at FROM cron_jobs ORDER BY name`)
	return jobs, err
}

func (s *PostgresStore) Log(ctx context.Context, job Job, message string, level Level) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cron_job_logs (job_name, level, message, logged_at) VALUES ($1, $2, $3, $4)`,
		job.Name, string(level), message, time.Now())
	return err
}
