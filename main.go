package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/briancroom/StepCounterIntervalExplorer/config"
	dataplatform "github.com/briancroom/StepCounterIntervalExplorer/data_platform"
	"github.com/briancroom/StepCounterIntervalExplorer/explorer"
	"github.com/briancroom/StepCounterIntervalExplorer/pedometer"
	"github.com/briancroom/StepCounterIntervalExplorer/repository"
	"github.com/briancroom/StepCounterIntervalExplorer/supabase"
	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
)

func main() {

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	configFilePath := flag.String("config", "config.yaml", "path to the yaml configuration file")
	flag.Parse()

	slog.Info("Starting step counter interval explorer...", "config", *configFilePath)

	cfg, err := config.Read(*configFilePath)
	if err != nil {
		slog.Error("Failed to read config", "error", err)
		return
	}
	location, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to load time location", "error", err)
		return
	}
	granularity, err := explorer.ParseGranularity(cfg.Explorer.Granularity)
	if err != nil {
		slog.Error("Failed to parse granularity", "error", err)
		return
	}

	supabaseKey, ok := os.LookupEnv("SUPABASE_KEY")
	if !ok {
		slog.Error("SUPABASE_KEY environment variable must be set")
		return
	}
	supabaseUserKey := os.Getenv("SUPABASE_USER_KEY")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := repository.New(cfg.DataPlatform.BufferPath)
	if err != nil {
		slog.Error("Failed to create repository", "error", err)
		return
	}
	defer repo.Close()

	supaClient, err := supabase.New(cfg.DataPlatform.Supabase.Url, supabaseKey, supabaseUserKey, cfg.DataPlatform.Supabase.Schema)
	if err != nil {
		slog.Error("Failed to create supabase client", "error", err)
		return
	}

	dataPlatform := dataplatform.New(supaClient, repo)
	go dataPlatform.Run(ctx, time.Duration(cfg.DataPlatform.UploadIntervalSecs)*time.Second)

	// samples from the pedometer go straight to the data platform
	pedo := pedometer.NewMock(dataPlatform.Samples, cfg.Pedometer.ID, cfg.Pedometer.StepsPerMinute)
	go pedo.Run(ctx, time.Duration(cfg.Pedometer.PollIntervalSecs)*time.Second)

	// samples leave the local buffer once uploaded, so the explorer reads from both
	explr := explorer.New(explorer.NewMergedSource(repo, supaClient), location, cfg.Explorer.Intervals)
	go runReports(ctx, explr, location, granularity, time.Duration(cfg.Explorer.ReportIntervalSecs)*time.Second)

	// wait for a ctrl-c interrupt before exiting
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	<-signalChan

	// cancel any open go-routines and give them up to 100ms to gracefully shutdown
	cancel()
	time.Sleep(time.Millisecond * 100)

	slog.Info("Exiting")
}

// runReports logs a summary of today's steps every `period` until the context is cancelled.
func runReports(ctx context.Context, explr *explorer.Explorer, location *time.Location, granularity explorer.Granularity, period time.Duration) {
	reportTicker := time.NewTicker(period)
	defer reportTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-reportTicker.C:
			today := timeutils.Today(t, location)
			summary, err := explr.Summarise(today, granularity)
			if err != nil {
				slog.Error("Failed to summarise today", "error", err)
				continue
			}
			slog.Info("Steps today", "range", today, "steps", summary.TotalSteps, "distance_meters", summary.TotalDistanceMeters, "buckets", len(summary.Buckets))

			for _, name := range explr.IntervalNames() {
				steps, err := explr.IntervalSteps(name, today)
				if err != nil {
					slog.Error("Failed to total interval steps", "interval", name, "error", err)
					continue
				}
				slog.Info("Steps in interval today", "interval", name, "steps", steps)
			}
		}
	}
}
