// Package repository persists vendors, schedules and activity logs in sqlite
// and converts between db rows and domain types.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/truckscope/pkg/db"
)

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// Repositories contains all repository instances
type Repositories struct {
	Vendor   *VendorRepository
	Schedule *ScheduleRepository
	Activity *ActivityRepository
	Setting  *SettingRepository
	DB       *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg db.Config) (*Repositories, error) {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open repositories: %w", err)
	}

	return &Repositories{
		Vendor:   NewVendorRepository(conn),
		Schedule: NewScheduleRepository(conn),
		Activity: NewActivityRepository(conn),
		Setting:  NewSettingRepository(conn),
		DB:       conn,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// notFound converts missing rows result to ErrNotFound
func notFound(res interface{ RowsAffected() (int64, error) }, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
