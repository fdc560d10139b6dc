package supabase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	timeutils "github.com/briancroom/StepCounterIntervalExplorer/time_utils"
	"github.com/briancroom/StepCounterIntervalExplorer/telemetry"
	supa "github.com/nedpals/supabase-go"
)

const (
	supabaseRequestTimeout = time.Second * 10
	// downloadPageSize is kept below the default PostgREST max-rows so that a full page means there may be more
	downloadPageSize = 1000
)

// Client provides an interface onto the Supabase platform.
// It hides the underlying open source supabase library and adds reconnection and timeout logic.
// It is safe for use by multiple goroutines.
type Client struct {
	url      string
	anonKey  string
	userKey  string
	schema   string
	timeout  time.Duration
	pageSize int

	mu              sync.Mutex
	subClient       *supa.Client // the raw client of the underlying supabase library we are using
	shouldReconnect bool         // when true, the subClient is 'dirty' and will be re-created next time a read or write call is made
	logger          *slog.Logger
}

func New(url, anonKey, userKey, schema string) (*Client, error) {
	if url == "" {
		return nil, errors.New("supabase url is required")
	}

	client := &Client{
		url:             url,
		anonKey:         anonKey,
		userKey:         userKey,
		schema:          schema,
		timeout:         supabaseRequestTimeout,
		pageSize:        downloadPageSize,
		shouldReconnect: true, // the connection is made lazily on the first request to read or write
		logger:          slog.Default().With("host", url),
	}

	return client, nil
}

// UploadSamples upserts the given samples into the step samples table. Samples that already exist (e.g. from an
// earlier attempt that timed out on our side but committed on the server) are merged rather than rejected.
func (c *Client) UploadSamples(samples []telemetry.StepSample) error {
	subClient := c.connection()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err := subClient.DB.From(SUPABASE_STEP_SAMPLE_TABLE_NAME).
		Upsert(convertSamplesForSupabase(samples)).
		ExecuteWithContext(ctx, nil)
	return c.checkRequest(ctx, err)
}

// DownloadSamples returns the samples held in Supabase with a time inside the given range, inclusive of the start and
// exclusive of the end. Results are fetched a page at a time.
func (c *Client) DownloadSamples(dateRange timeutils.DateRange) ([]telemetry.StepSample, error) {
	var samples []telemetry.StepSample

	for offset := 0; ; offset += c.pageSize {
		page, err := c.downloadPage(dateRange, offset)
		if err != nil {
			return nil, fmt.Errorf("download samples in range %s: %w", dateRange, err)
		}
		samples = append(samples, convertSamplesFromSupabase(page)...)
		if len(page) < c.pageSize {
			return samples, nil
		}
	}
}

// SamplesInRange allows the client to be used as a sample source for the explorer.
func (c *Client) SamplesInRange(dateRange timeutils.DateRange) ([]telemetry.StepSample, error) {
	return c.DownloadSamples(dateRange)
}

func (c *Client) downloadPage(dateRange timeutils.DateRange, offset int) ([]supabaseStepSample, error) {
	subClient := c.connection()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var page []supabaseStepSample
	err := subClient.DB.From(SUPABASE_STEP_SAMPLE_TABLE_NAME).
		Select("*").
		LimitWithOffset(c.pageSize, offset).
		Gte("time", dateRange.Start.UTC().Format(time.RFC3339Nano)).
		Lt("time", dateRange.End.UTC().Format(time.RFC3339Nano)).
		ExecuteWithContext(ctx, &page)
	if err := c.checkRequest(ctx, err); err != nil {
		return nil, err
	}
	return page, nil
}

// checkRequest marks the client for reconnection if the request failed, and reports timeouts clearly.
func (c *Client) checkRequest(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	c.setShouldReconnect()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s: %w", c.timeout, ctx.Err())
	}
	return err
}

// connection returns the underlying library client, creating it first if necessary.
func (c *Client) connection() *supa.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shouldReconnect {
		c.createSubClient()
		c.shouldReconnect = false
		c.logger.Info("Created supabase client")
	}
	return c.subClient
}

// createSubClient creates the open-source supabase library client with sensible defaults. Must be called with the
// mutex held.
func (c *Client) createSubClient() {

	subClient := supa.CreateClient(c.url, c.anonKey)

	// The supabase client library doesn't have a fully featured interface, here we specify options directly by
	// adding headers to the postgrest requests.
	// Use the appropriate schema:
	if c.schema != "" {
		subClient.DB.AddHeader("Accept-Profile", c.schema)
		subClient.DB.AddHeader("Content-Profile", c.schema)
	}

	// Use a user JWT:
	if c.userKey != "" {
		subClient.DB.AddHeader("Authorization", fmt.Sprintf("Bearer %s", c.userKey))
	}

	c.subClient = subClient
}

// setShouldReconnect is called when there has been an error with a request that should trigger a re-connect.
func (c *Client) setShouldReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shouldReconnect = true
}

func (c *Client) needsReconnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shouldReconnect
}
