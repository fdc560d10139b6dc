package dataplatform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/briancroom/StepCounterIntervalExplorer/repository"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
)

// uploadChunkLimit defines how many samples we can upload in one supabase HTTP request
const uploadChunkLimit = 100

// Uploader sends samples to the remote data platform.
type Uploader interface {
	UploadSamples(samples []telemetry.StepSample) error
}

// DataPlatform handles the streaming of step samples to Supabase.
// Put new samples onto the `Samples` channel, they will be bufferred on disk in a SQLite database before being uploaded.
type DataPlatform struct {
	Samples chan telemetry.StepSample

	uploader   Uploader
	repository *repository.Repository
	logger     *slog.Logger
}

func New(uploader Uploader, repository *repository.Repository) *DataPlatform {
	return &DataPlatform{
		Samples:    make(chan telemetry.StepSample, 25), // a small buffer to allow SQLite to catch up in case the disk is slow
		uploader:   uploader,
		repository: repository,
		logger:     slog.Default(),
	}
}

// Run loops forever waiting for samples, storing them as they arrive and uploading every `uploadInterval`.
func (d *DataPlatform) Run(ctx context.Context, uploadInterval time.Duration) {

	uploadTicker := time.NewTicker(uploadInterval)
	defer uploadTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case sample := <-d.Samples:
			err := d.repository.AddSample(sample)
			if err != nil {
				d.logger.Error("Failed to persist step sample", "error", err)
				continue
			}
			d.logger.Debug("Stored step sample", "steps", sample.Steps)

		case <-uploadTicker.C:
			d.attemptUpload()
		}
	}
}

// attemptUpload attempts to upload the buffered samples from the repository into Supabase.
func (d *DataPlatform) attemptUpload() {

	// first attempt to upload any new samples that have not been seen before, then any old samples that have already
	// failed an upload at least once
	for _, fresh := range []bool{true, false} {
		samples, err := d.repository.GetSamples(uploadChunkLimit, fresh)
		if err != nil {
			d.logger.Error("Failed to query step samples", "fresh", fresh, "error", err)
			continue
		}
		if len(samples) == 0 {
			continue
		}
		err = d.handleSamples(samples)
		if err != nil {
			d.logger.Error("Failed to handle step samples", "fresh", fresh, "error", err)
		}
	}
}

// handleSamples attempts to upload the given samples. If successfull, it deletes the samples from the database, if
// unsuccessful, it increments the 'upload attempt count' column and leaves the samples in the database for another time.
func (d *DataPlatform) handleSamples(samples []repository.StoredStepSample) error {

	uploadErr := d.uploader.UploadSamples(repository.Samples(samples))
	if uploadErr != nil {
		uploadErr := fmt.Errorf("upload failed: %w", uploadErr)
		errInc := d.repository.IncrementUploadAttemptCount(samples)
		if errInc != nil {
			return fmt.Errorf("%w: increment upload attempt count: %w", uploadErr, errInc)
		}
		return uploadErr
	}

	deleteErr := d.repository.DeleteSamples(samples)
	if deleteErr != nil {
		return fmt.Errorf("delete %d step samples: %w", len(samples), deleteErr)
	}

	d.logger.Info("Uploaded step samples", "count", len(samples))

	return nil
}
