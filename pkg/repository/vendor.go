package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/truckscope/pkg/db"
	"github.com/umputun/truckscope/pkg/domain"
)

// VendorRepository handles vendor-related database operations
type VendorRepository struct {
	db *sqlx.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(conn *sqlx.DB) *VendorRepository {
	return &VendorRepository{db: conn}
}

// CreateVendor inserts a new vendor, id is generated if empty
func (r *VendorRepository) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	query := `
		INSERT INTO vendors (id, name, type, address, social_handle, search_terms, hashtags, platforms,
			enabled, created_at, updated_at)
		VALUES (:id, :name, :type, :address, :social_handle, :search_terms, :hashtags, :platforms,
			:enabled, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, toVendorRow(v)); err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

// UpsertVendor inserts the vendor or replaces the stored one with the same id, creation time is kept
func (r *VendorRepository) UpsertVendor(ctx context.Context, v *domain.Vendor) error {
	if v.ID == "" {
		return errors.New("upsert vendor: empty id")
	}
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	query := `
		INSERT INTO vendors (id, name, type, address, social_handle, search_terms, hashtags, platforms,
			enabled, created_at, updated_at)
		VALUES (:id, :name, :type, :address, :social_handle, :search_terms, :hashtags, :platforms,
			:enabled, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			address = excluded.address,
			social_handle = excluded.social_handle,
			search_terms = excluded.search_terms,
			hashtags = excluded.hashtags,
			platforms = excluded.platforms,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`
	row := toVendorRow(v)
	return db.WithLockRetry(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("upsert vendor: %w", err)
		}
		return nil
	})
}

// GetVendor retrieves a vendor by id
func (r *VendorRepository) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	var row db.Vendor
	err := r.db.GetContext(ctx, &row, "SELECT * FROM vendors WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return toDomainVendor(&row), nil
}

// GetVendors retrieves vendors sorted by name
func (r *VendorRepository) GetVendors(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
	query := "SELECT * FROM vendors"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY name, id"

	var rows []db.Vendor
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get vendors: %w", err)
	}
	res := make([]domain.Vendor, len(rows))
	for i := range rows {
		res[i] = *toDomainVendor(&rows[i])
	}
	return res, nil
}

// SetVendorEnabled enables or disables vendor tracking
func (r *VendorRepository) SetVendorEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE vendors SET enabled = ?, updated_at = ? WHERE id = ?",
		enabled, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update vendor status: %w", err)
	}
	return notFound(res, "vendor", id)
}

// DeleteVendor removes a vendor, its schedules and activity logs are kept
func (r *VendorRepository) DeleteVendor(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return notFound(res, "vendor", id)
}

func toVendorRow(v *domain.Vendor) *db.Vendor {
	platforms := make(db.StringList, 0, len(v.Platforms))
	for _, p := range v.Platforms {
		platforms = append(platforms, string(p))
	}
	return &db.Vendor{
		ID:           v.ID,
		Name:         v.Name,
		Type:         v.Type,
		Address:      v.Address,
		SocialHandle: v.SocialHandle,
		SearchTerms:  v.SearchTerms,
		Hashtags:     v.Hashtags,
		Platforms:    platforms,
		Enabled:      v.Enabled,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toDomainVendor(row *db.Vendor) *domain.Vendor {
	var platforms []domain.Platform
	for _, p := range row.Platforms {
		if pl, err := domain.ParsePlatform(p); err == nil {
			platforms = append(platforms, pl)
		}
	}
	return &domain.Vendor{
		ID:           row.ID,
		Name:         row.Name,
		Type:         row.Type,
		Address:      row.Address,
		SocialHandle: row.SocialHandle,
		SearchTerms:  row.SearchTerms,
		Hashtags:     row.Hashtags,
		Platforms:    platforms,
		Enabled:      row.Enabled,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
