package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/truckscope/pkg/db"
	"github.com/umputun/truckscope/pkg/domain"
)

// ActivityRepository handles activity log operations. Entries are never updated, only added and deleted.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(conn *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: conn}
}

const insertActivityQuery = `
	INSERT INTO activity_logs (id, vendor_id, timestamp, source, confidence_score, action, metadata)
	VALUES (:id, :vendor_id, :timestamp, :source, :confidence_score, :action, :metadata)
`

// CreateActivity stores a single entry, id and timestamp are filled if empty
func (r *ActivityRepository) CreateActivity(ctx context.Context, a *domain.ActivityLog) error {
	return r.CreateActivities(ctx, []*domain.ActivityLog{a})
}

// CreateActivities stores entries in a single transaction
func (r *ActivityRepository) CreateActivities(ctx context.Context, logs []*domain.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	rows := make([]*db.ActivityLog, len(logs))
	for i, a := range logs {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Timestamp.IsZero() {
			a.Timestamp = time.Now().UTC()
		}
		row, err := toActivityRow(a)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	return db.WithLockRetry(ctx, func() error {
		return db.InTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			for _, row := range rows {
				if _, err := tx.NamedExecContext(ctx, insertActivityQuery, row); err != nil {
					return fmt.Errorf("create activity %s: %w", row.ID, err)
				}
			}
			return nil
		})
	})
}

// GetActivity retrieves an entry by id
func (r *ActivityRepository) GetActivity(ctx context.Context, id string) (*domain.ActivityLog, error) {
	var row db.ActivityLog
	err := r.db.GetContext(ctx, &row, "SELECT * FROM activity_logs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return toDomainActivity(&row)
}

// ListActivities returns entries matching the filter, newest first
func (r *ActivityRepository) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	query := "SELECT * FROM activity_logs WHERE 1=1"
	var args []any
	if f.VendorID != "" {
		query += " AND vendor_id = ?"
		args = append(args, f.VendorID)
	}
	if f.Action != "" {
		query += " AND action = ?"
		args = append(args, string(f.Action))
	}
	if f.Source != "" {
		query += " AND source = ?"
		args = append(args, f.Source)
	}
	query += " ORDER BY timestamp DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	var rows []db.ActivityLog
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	res := make([]domain.ActivityLog, 0, len(rows))
	for i := range rows {
		a, err := toDomainActivity(&rows[i])
		if err != nil {
			return nil, err
		}
		res = append(res, *a)
	}
	return res, nil
}

// DeleteActivity removes an entry by id
func (r *ActivityRepository) DeleteActivity(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM activity_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return notFound(res, "activity", id)
}

// DeleteActivitiesBefore removes entries older than ts
func (r *ActivityRepository) DeleteActivitiesBefore(ctx context.Context, ts time.Time) (int64, error) {
	var deleted int64
	err := db.WithLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM activity_logs WHERE timestamp < ?", ts.UTC())
		if err != nil {
			return fmt.Errorf("delete old activities: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

func toActivityRow(a *domain.ActivityLog) (*db.ActivityLog, error) {
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal activity metadata: %w", err)
	}
	return &db.ActivityLog{
		ID:              a.ID,
		VendorID:        a.VendorID,
		Timestamp:       a.Timestamp.UTC(),
		Source:          a.Source,
		ConfidenceScore: a.ConfidenceScore,
		Action:          string(a.Action),
		Metadata:        string(meta),
	}, nil
}

func toDomainActivity(row *db.ActivityLog) (*domain.ActivityLog, error) {
	res := &domain.ActivityLog{
		ID:              row.ID,
		VendorID:        row.VendorID,
		Timestamp:       row.Timestamp,
		Source:          row.Source,
		ConfidenceScore: row.ConfidenceScore,
		Action:          domain.Action(row.Action),
	}
	if err := json.Unmarshal([]byte(row.Metadata), &res.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata of activity %s: %w", row.ID, err)
	}
	return res, nil
}
