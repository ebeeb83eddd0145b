// Package jobstore is the persistence adapter for the job registry
// that sits in front of the cronexpr engine: add/get/update/delete/has/
// all, plus structured log writes. The engine itself never imports
// this package.
package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a Store.Log entry.
type Level string

const (
	LevelSuccess  Level = "success"
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// ErrNotFound is returned by Get/Update/Delete when no job is
// registered under the given name.
var ErrNotFound = errors.New("jobstore: job not found")

// ErrExists is returned by Add when a job with the same name already
// exists.
var ErrExists = errors.New("jobstore: job already exists")

// Job is a named schedule: a cron expression plus either a shell
// command or a registered callable name to dispatch when due.
type Job struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Expression string    `db:"expression"`
	Command    string    `db:"command"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// newJobID mints the identity assigned to a Job at Add time when the
// caller leaves ID blank.
func newJobID() string {
	return uuid.New().String()
}

// Store is the six-method contract spec.md §6 describes for the
// surrounding job registry: has/get/add/update/delete/all, plus
// structured log writes.
type Store interface {
	Has(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (Job, error)
	Add(ctx context.Context, job Job) error
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, name string) error
	All(ctx context.Context) ([]Job, error)
	Log(ctx context.Context, job Job, message string, level Level) error
}
