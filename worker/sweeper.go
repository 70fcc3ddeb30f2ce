package worker

import (
	"context"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"aukra/storage"
)

const (
	BatchSize      = 100
	WorkerPoolSize = 4
)

// ImageRefs reports the image URLs still in use.
type ImageRefs interface {
	ImageURLs(ctx context.Context) ([]string, error)
}

// ObjectStore is the part of the storage client the sweeper needs.
type ObjectStore interface {
	List(ctx context.Context, bucket, prefix string) ([]storage.Object, error)
	Remove(ctx context.Context, bucket string, paths []string) error
	ObjectPath(bucket, publicURL string) (string, bool)
}

// Sweeper removes stored menu images no dish or restaurant field points at
// anymore. Objects younger than Grace are kept so an upload whose dish has
// not been saved yet survives.
type Sweeper struct {
	Refs    ImageRefs
	Objects ObjectStore
	Bucket  string
	Grace   time.Duration

	now func() time.Time
}

func NewSweeper(refs ImageRefs, objects ObjectStore, bucket string, grace time.Duration) *Sweeper {
	return &Sweeper{Refs: refs, Objects: objects, Bucket: bucket, Grace: grace, now: time.Now}
}

// StartImageSweeper runs Sweep every interval until ctx is done.
func StartImageSweeper(ctx context.Context, s *Sweeper, interval time.Duration) {
	zap.S().Infow("starting image sweeper",
		"interval", interval, "grace", s.Grace, "batch", BatchSize, "concurrency", WorkerPoolSize)
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.Sweep(ctx)
				if err != nil {
					zap.S().Warnw("image sweep incomplete", "removed", removed, "error", err)
					continue
				}
				if removed > 0 {
					zap.S().Infow("image sweep done", "removed", removed)
				}
			}
		}
	}()
}

// Sweep removes orphaned images once and returns how many were removed.
// Failed batches are logged and reported together; the rest still run.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	urls, err := s.Refs.ImageURLs(ctx)
	if err != nil {
		return 0, err
	}
	inUse := make(map[string]bool, len(urls))
	for _, u := range urls {
		if p, ok := s.Objects.ObjectPath(s.Bucket, u); ok {
			inUse[p] = true
		}
	}

	objects, err := s.Objects.List(ctx, s.Bucket, storage.ImageFolder)
	if err != nil {
		return 0, err
	}
	cutoff := s.clock().Add(-s.Grace)
	var orphans []string
	for _, o := range objects {
		// Folder placeholders have no id.
		if o.ID == "" || o.CreatedAt.IsZero() || o.CreatedAt.After(cutoff) {
			continue
		}
		p := path.Join(storage.ImageFolder, o.Name)
		if !inUse[p] {
			orphans = append(orphans, p)
		}
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		errs      error
		removed   atomic.Int64
		semaphore = make(chan struct{}, WorkerPoolSize)
	)
	for start := 0; start < len(orphans); start += BatchSize {
		batch := orphans[start:min(start+BatchSize, len(orphans))]

		wg.Add(1)
		semaphore <- struct{}{}

		go func(batch []string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := s.Objects.Remove(ctx, s.Bucket, batch); err != nil {
				zap.S().Warnw("failed to remove orphaned images", "count", len(batch), "error", err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return
			}
			removed.Add(int64(len(batch)))
		}(batch)
	}
	wg.Wait()

	return int(removed.Load()), errs
}

func (s *Sweeper) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
