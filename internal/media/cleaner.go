package media

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// AssetDeleter removes a stored asset addressed by its public URL.
type AssetDeleter interface {
	Delete(ctx context.Context, url string) error
}

// CleanerConfig controls the concurrency characteristics of the cleaner.
type CleanerConfig struct {
	QueueSize int
	Workers   int
}

// Cleaner deletes replaced or orphaned media assets in the background.
// Cleanup is best-effort: failures are logged and never surface to the
// operation that replaced the asset.
type Cleaner struct {
	deleter AssetDeleter
	logger  *slog.Logger

	jobs   chan cleanupJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

type cleanupJob struct {
	url string
}

var errCleanerClosed = errors.New("media cleaner closed")

// NewCleaner constructs a background worker pool that deletes assets.
func NewCleaner(deleter AssetDeleter, cfg CleanerConfig, logger *slog.Logger) *Cleaner {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Cleaner{
		deleter: deleter,
		logger:  logger,
		jobs:    make(chan cleanupJob, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	c.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go c.worker()
	}

	return c
}

// Enqueue schedules deletion of the asset at the provided URL. Empty URLs
// are ignored.
func (c *Cleaner) Enqueue(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return errCleanerClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return errCleanerClosed
	case c.jobs <- cleanupJob{url: url}:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs.
func (c *Cleaner) Shutdown(ctx context.Context) error {
	c.once.Do(func() {
		c.cancel()
		close(c.jobs)
	})

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *Cleaner) worker() {
	defer c.wg.Done()

	for job := range c.jobs {
		c.handleJob(job)
	}
}

func (c *Cleaner) handleJob(job cleanupJob) {
	if c.deleter == nil {
		c.logger.Error("media cleaner missing deleter")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.deleter.Delete(ctx, job.url); err != nil {
		c.logger.Error("media cleanup failed", "url", job.url, "error", err)
	}
}
