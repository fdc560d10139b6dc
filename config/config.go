package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briancroom/StepCounterIntervalExplorer/explorer"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type PedometerConfig struct {
	ID               uuid.UUID `yaml:"id"`
	PollIntervalSecs int       `yaml:"pollIntervalSecs"`
	StepsPerMinute   float64   `yaml:"stepsPerMinute"` // the cadence of the mock pedometer
}

type SupabaseConfig struct {
	Url string `yaml:"url"`
	// keys are specified via env vars
	Schema string `yaml:"schema"`
}

type DataPlatformConfig struct {
	UploadIntervalSecs int            `yaml:"uploadIntervalSecs"`
	BufferPath         string         `yaml:"bufferPath"` // path of the SQLite database that samples are stored in
	Supabase           SupabaseConfig `yaml:"supabase"`
}

type ExplorerConfig struct {
	ReportIntervalSecs int                      `yaml:"reportIntervalSecs"`
	Granularity        string                   `yaml:"granularity"`
	Intervals          []explorer.NamedInterval `yaml:"intervals"`
}

type Config struct {
	Timezone     string             `yaml:"timezone"`
	Pedometer    PedometerConfig    `yaml:"pedometer"`
	DataPlatform DataPlatformConfig `yaml:"dataPlatform"`
	Explorer     ExplorerConfig     `yaml:"explorer"`
}

func Read(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(content, &config)
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

// Validate returns an error describing the first problem found with the configuration.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Pedometer.ID == uuid.Nil {
		return errors.New("pedometer id is required")
	}
	if c.Pedometer.PollIntervalSecs <= 0 {
		return errors.New("pedometer poll interval must be positive")
	}
	if c.DataPlatform.UploadIntervalSecs <= 0 {
		return errors.New("data platform upload interval must be positive")
	}
	if c.DataPlatform.BufferPath == "" {
		return errors.New("data platform buffer path is required")
	}
	if c.Explorer.ReportIntervalSecs <= 0 {
		return errors.New("explorer report interval must be positive")
	}
	if _, err := explorer.ParseGranularity(c.Explorer.Granularity); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, interval := range c.Explorer.Intervals {
		if interval.Name == "" {
			return errors.New("interval name is required")
		}
		if seen[interval.Name] {
			return fmt.Errorf("duplicate interval name '%s'", interval.Name)
		}
		seen[interval.Name] = true
		if err := interval.Validate(); err != nil {
			return fmt.Errorf("interval '%s': %w", interval.Name, err)
		}
	}
	return nil
}

// Location returns the timezone that days and clock times are interpreted in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}
