package repository

import (
	"fmt"
	"strings"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Repository stores step samples to the local file system (sqlite) before they are uploaded to Supabase, and serves
// date range queries over them.
type Repository struct {
	db *gorm.DB
}

func New(path string) (*Repository, error) {

	// the data platform and explorer share the database, so wait on locks rather than failing straight away
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Migrate the schema
	err = db.AutoMigrate(&StoredStepSample{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// Close releases the underlying database connections.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *Repository) AddSample(sample telemetry.StepSample) error {
	stored := newStoredStepSample(sample)
	result := r.db.Create(&stored)
	return result.Error
}

func (r *Repository) DeleteSamples(samples []StoredStepSample) error {
	if len(samples) == 0 {
		return nil
	}
	result := r.db.Where("id IN ?", ids(samples)).Delete(&StoredStepSample{})
	return result.Error
}

// GetSamples returns up to `limit` samples. Fresh samples have never had an upload attempted, the others have failed
// at least one upload.
func (r *Repository) GetSamples(limit int, fresh bool) ([]StoredStepSample, error) {
	var samples []StoredStepSample

	query := r.db.Limit(limit).Order("upload_attempt_count asc, time desc")
	if fresh {
		query = query.Where("upload_attempt_count = ?", 0)
	} else {
		query = query.Where("upload_attempt_count > ?", 0)
	}
	result := query.Find(&samples)
	if result.Error != nil {
		return nil, result.Error
	}
	return samples, nil
}

// SamplesInRange returns the samples whose time is within the range, inclusive of the start and exclusive of the end,
// ordered by time. Samples that have already been uploaded and deleted are not included.
func (r *Repository) SamplesInRange(dateRange timeutils.DateRange) ([]telemetry.StepSample, error) {
	var stored []StoredStepSample

	result := r.db.
		Where("time >= ? AND time < ?", dateRange.Start.UTC(), dateRange.End.UTC()).
		Order("time asc").
		Find(&stored)
	if result.Error != nil {
		return nil, fmt.Errorf("query samples in range %s: %w", dateRange, result.Error)
	}
	return Samples(stored), nil
}

func (r *Repository) IncrementUploadAttemptCount(samples []StoredStepSample) error {
	if len(samples) == 0 {
		return nil
	}
	result := r.db.Model(&StoredStepSample{}).
		Where("id IN ?", ids(samples)).
		UpdateColumn("upload_attempt_count", gorm.Expr("upload_attempt_count + ?", 1))
	return result.Error
}
