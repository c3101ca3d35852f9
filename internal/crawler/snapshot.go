package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/headline-harvester/internal/logger"
	"github.com/samvad-hq/headline-harvester/internal/storage"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
)

const maxSnapshotWorkers = 4

// SnapshotResult is the outcome of snapshotting one provider.
type SnapshotResult struct {
	ProviderID string
	Key        string
	Bytes      int
	Err        error
}

// Snapshotter downloads newspaper homepages and stores them as raw snapshots.
type Snapshotter struct {
	source  PageSource
	store   ObjectStore
	layout  Layout
	workers int
	log     logger.Logger
	now     func() time.Time
}

// NewSnapshotter creates a Snapshotter. workers below one means one worker.
func NewSnapshotter(source PageSource, store ObjectStore, layout Layout, workers int, log logger.Logger) *Snapshotter {
	if source == nil {
		source = providers.NewPageFetcher(nil)
	}
	return &Snapshotter{
		source:  source,
		store:   store,
		layout:  layout,
		workers: max(workers, 1),
		log:     logger.Ensure(log),
		now:     time.Now,
	}
}

// Run snapshots every enabled provider. A failing provider does not stop the
// others; the returned error joins every failure.
func (s *Snapshotter) Run(ctx context.Context, provs []providers.Provider) ([]SnapshotResult, error) {
	enabled := make([]providers.Provider, 0, len(provs))
	for _, p := range provs {
		if p.EnabledValue() {
			enabled = append(enabled, p)
		}
	}

	out := make([]SnapshotResult, len(enabled))
	if len(enabled) == 0 {
		return out, nil
	}

	day := s.now()
	workerCount := min(len(enabled), s.workers, maxSnapshotWorkers)

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := 0; workerID < workerCount; workerID++ {
		wg.Add(1)
		go s.worker(ctx, enabled, day, jobCh, out, &wg, workerID)
	}

	for idx := range enabled {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	var errs []error
	for i := range out {
		if out[i].ProviderID == "" {
			out[i] = SnapshotResult{ProviderID: enabled[i].ID, Err: ctx.Err()}
		}
		if out[i].Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", out[i].ProviderID, out[i].Err))
		}
	}
	return out, errors.Join(errs...)
}

func (s *Snapshotter) worker(
	ctx context.Context,
	provs []providers.Provider,
	day time.Time,
	jobCh <-chan int,
	out []SnapshotResult,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		cfg := provs[idx]
		res := SnapshotResult{ProviderID: cfg.ID}
		if err := ctx.Err(); err != nil {
			res.Err = err
			out[idx] = res
			continue
		}

		res.Key, res.Bytes, res.Err = s.snapshot(ctx, cfg, day, workerID)
		if res.Err != nil {
			s.log.ErrorObj("homepage snapshot failed", "snapshot_error", map[string]any{
				"worker_id":   workerID,
				"provider_id": cfg.ID,
				"url":         cfg.SourceURL,
				"error":       res.Err.Error(),
			})
		}
		out[idx] = res
	}
}

func (s *Snapshotter) snapshot(ctx context.Context, cfg providers.Provider, day time.Time, workerID int) (string, int, error) {
	s.log.DebugObj("downloading homepage", "snapshot_start", map[string]any{
		"worker_id":   workerID,
		"provider_id": cfg.ID,
		"url":         cfg.SourceURL,
	})

	body, err := s.source.Fetch(ctx, cfg)
	if err != nil {
		return "", 0, err
	}

	key := s.layout.RawKey(cfg.ID, day)
	if err := s.store.Put(ctx, key, body, storage.ContentTypeHTML); err != nil {
		return "", 0, fmt.Errorf("upload snapshot: %w", err)
	}

	s.log.InfoObj("homepage snapshot stored", "snapshot_done", map[string]any{
		"worker_id":   workerID,
		"provider_id": cfg.ID,
		"key":         key,
		"bytes":       len(body),
	})
	return key, len(body), nil
}
