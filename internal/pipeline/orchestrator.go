package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"hls-fetcher/internal/progress"
)

// Fetcher fetches one remote resource to a local path. Implementations
// are expected to be idempotent per destination path.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Orchestrator drives a Fetcher over an ordered task list, one fetch at
// a time, and reports completions through a shared progress counter.
type Orchestrator struct {
	fetcher Fetcher
	counter *progress.Counter
	log     *slog.Logger
}

// NewOrchestrator returns an Orchestrator writing completions to counter.
func NewOrchestrator(f Fetcher, counter *progress.Counter, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{fetcher: f, counter: counter, log: log}
}

// Run fetches every task in list order into its working-directory
// destination. Fetches are strictly sequential. The first failure aborts
// the run with the offending task identified; it is neither retried nor
// skipped, and already-fetched segment files are left in place so a
// re-run can resume.
func (o *Orchestrator) Run(ctx context.Context, tasks []Task, layout Layout) error {
	for _, t := range tasks {
		dest := layout.SegmentPath(t)
		if dir := filepath.Dir(dest); dir != layout.WorkDir(t.Kind) {
			// Segment names may carry sub-paths.
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create segment directory %s: %w", dir, err)
			}
		}

		if err := o.fetcher.Fetch(ctx, t.URL, dest); err != nil {
			return fmt.Errorf("fetch %s segment %s: %w", t.Kind, t.Name, err)
		}

		o.counter.Add(1)
		o.log.Debug("segment fetched",
			slog.String("kind", string(t.Kind)),
			slog.String("name", t.Name),
		)
	}
	return nil
}
