package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/truckscope/pkg/db"
	"github.com/umputun/truckscope/pkg/domain"
)

// ScheduleRepository handles schedule-related database operations
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(conn *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: conn}
}

// upsert keeps one row per identity key, stored row is replaced only by a more confident one
const upsertScheduleQuery = `
	INSERT INTO schedules (vendor_id, date, start_time, end_time, location, source, confidence, created_at, updated_at)
	VALUES (:vendor_id, :date, :start_time, :end_time, :location, :source, :confidence, :created_at, :updated_at)
	ON CONFLICT(vendor_id, date, location) DO UPDATE SET
		start_time = excluded.start_time,
		end_time = excluded.end_time,
		source = excluded.source,
		confidence = excluded.confidence,
		updated_at = excluded.updated_at
	WHERE excluded.confidence > schedules.confidence
`

// SaveSchedules stores schedules in a single transaction. Existing schedules with the same
// identity key are replaced only when the new confidence is higher, so stored confidence never drops.
func (r *ScheduleRepository) SaveSchedules(ctx context.Context, schedules []domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*db.Schedule, len(schedules))
	for i := range schedules {
		rows[i] = toScheduleRow(&schedules[i], now)
	}

	return db.WithLockRetry(ctx, func() error {
		return db.InTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			for _, row := range rows {
				if _, err := tx.NamedExecContext(ctx, upsertScheduleQuery, row); err != nil {
					return fmt.Errorf("save schedule %s/%s: %w", row.VendorID, row.Date, err)
				}
			}
			return nil
		})
	})
}

// GetSchedules returns vendor schedules with date in [from, to], both YYYY-MM-DD and inclusive.
// Empty vendorID matches all vendors, empty bound leaves that side open.
func (r *ScheduleRepository) GetSchedules(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error) {
	query := "SELECT * FROM schedules WHERE 1=1"
	var args []any
	if vendorID != "" {
		query += " AND vendor_id = ?"
		args = append(args, vendorID)
	}
	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date, start_time, location"

	var rows []db.Schedule
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get schedules: %w", err)
	}
	res := make([]domain.Schedule, len(rows))
	for i := range rows {
		res[i] = toDomainSchedule(&rows[i])
	}
	return res, nil
}

// DeleteSchedulesBefore removes schedules dated before the given YYYY-MM-DD date
func (r *ScheduleRepository) DeleteSchedulesBefore(ctx context.Context, date string) (int64, error) {
	var deleted int64
	err := db.WithLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE date < ?", date)
		if err != nil {
			return fmt.Errorf("delete old schedules: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

func toScheduleRow(s *domain.Schedule, now time.Time) *db.Schedule {
	row := &db.Schedule{
		VendorID:   s.VendorID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Location:   s.Location,
		Source:     s.Source,
		Confidence: s.Confidence,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	return row
}

func toDomainSchedule(row *db.Schedule) domain.Schedule {
	return domain.Schedule{
		VendorID:   row.VendorID,
		Date:       row.Date,
		StartTime:  row.StartTime,
		EndTime:    row.EndTime,
		Location:   row.Location,
		Source:     row.Source,
		Confidence: row.Confidence,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
