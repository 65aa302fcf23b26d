// Package service provides unified access to repositories for the scheduler and the http server
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/reconcile"
	"github.com/umputun/truckscope/pkg/repository"
)

// Store wraps vendor, schedule, activity and setting repositories
type Store struct {
	vendorRepo   *repository.VendorRepository
	scheduleRepo *repository.ScheduleRepository
	activityRepo *repository.ActivityRepository
	settingRepo  *repository.SettingRepository
}

// NewStore creates a store on top of repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		vendorRepo:   repos.Vendor,
		scheduleRepo: repos.Schedule,
		activityRepo: repos.Activity,
		settingRepo:  repos.Setting,
	}
}

// vendor methods

func (s *Store) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.vendorRepo.GetVendor(ctx, id)
}

func (s *Store) GetVendors(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
	return s.vendorRepo.GetVendors(ctx, enabledOnly)
}

func (s *Store) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	return s.vendorRepo.CreateVendor(ctx, v)
}

// SeedVendors upserts vendors from configuration
func (s *Store) SeedVendors(ctx context.Context, vendors []domain.Vendor) error {
	for i := range vendors {
		if err := s.vendorRepo.UpsertVendor(ctx, &vendors[i]); err != nil {
			return fmt.Errorf("seed vendor %s: %w", vendors[i].ID, err)
		}
	}
	return nil
}

// schedule methods

// GetSchedules returns stored schedules, dates are YYYY-MM-DD and empty bounds are open
func (s *Store) GetSchedules(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error) {
	return s.scheduleRepo.GetSchedules(ctx, vendorID, from, to)
}

// SaveCrawl persists reconciled schedules and the activity entries produced for them.
// Schedules go first, an activity entry never references a schedule that failed to store.
func (s *Store) SaveCrawl(ctx context.Context, schedules []domain.Schedule, logs []domain.ActivityLog) error {
	if err := s.scheduleRepo.SaveSchedules(ctx, schedules); err != nil {
		return fmt.Errorf("save schedules: %w", err)
	}
	ptrs := make([]*domain.ActivityLog, len(logs))
	for i := range logs {
		ptrs[i] = &logs[i]
	}
	if err := s.activityRepo.CreateActivities(ctx, ptrs); err != nil {
		return fmt.Errorf("save activity logs: %w", err)
	}
	return nil
}

// activity methods

func (s *Store) CreateActivity(ctx context.Context, a *domain.ActivityLog) error {
	return s.activityRepo.CreateActivity(ctx, a)
}

func (s *Store) GetActivity(ctx context.Context, id string) (*domain.ActivityLog, error) {
	return s.activityRepo.GetActivity(ctx, id)
}

func (s *Store) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	return s.activityRepo.ListActivities(ctx, f)
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	return s.activityRepo.DeleteActivity(ctx, id)
}

// Analytics aggregates all activity entries of the vendor
func (s *Store) Analytics(ctx context.Context, vendorID string) (reconcile.Analytics, error) {
	logs, err := s.activityRepo.ListActivities(ctx, domain.ActivityFilter{VendorID: vendorID})
	if err != nil {
		return reconcile.Analytics{}, err
	}
	return reconcile.Analyze(logs), nil
}

// Cleanup drops schedules dated before scheduleDate (YYYY-MM-DD) and activity entries older than activityTime
func (s *Store) Cleanup(ctx context.Context, scheduleDate string, activityTime time.Time) (schedules, activities int64, err error) {
	if schedules, err = s.scheduleRepo.DeleteSchedulesBefore(ctx, scheduleDate); err != nil {
		return 0, 0, err
	}
	if activities, err = s.activityRepo.DeleteActivitiesBefore(ctx, activityTime); err != nil {
		return schedules, 0, err
	}
	return schedules, activities, nil
}

// setting methods

// MinConfidence returns the stored acceptance threshold, found is false if it was never changed at runtime
func (s *Store) MinConfidence(ctx context.Context) (value float64, found bool, err error) {
	raw, found, err := s.settingRepo.GetSetting(ctx, repository.SettingMinConfidence)
	if err != nil || !found {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse stored min confidence %q: %w", raw, err)
	}
	return v, true, nil
}

// SetMinConfidence stores the acceptance threshold
func (s *Store) SetMinConfidence(ctx context.Context, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("min confidence %v: %w", v, domain.ErrInvalidConfidence)
	}
	return s.settingRepo.SetSetting(ctx, repository.SettingMinConfidence, strconv.FormatFloat(v, 'f', -1, 64))
}
