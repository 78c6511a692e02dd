package runner

import (
	"context"
	"sync"

	"stegtriage/pkg/models"
	"stegtriage/pkg/pipeline"
)

// Config holds settings for the batch runner.
type Config struct {
	Workers int
	OutDir  string
}

// Runner fans file analysis over a bounded worker pool.
type Runner struct {
	cfg  Config
	pipe *pipeline.Pipeline
}

// New creates a Runner.
func New(cfg Config, pipe *pipeline.Pipeline) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{cfg: cfg, pipe: pipe}
}

// Run analyzes every file and merges the records into verdict buckets.
// Cancellation is cooperative: files already handed to a worker finish,
// no new files are started.
func (r *Runner) Run(ctx context.Context, files []string) *models.BatchResult {
	batch := &models.BatchResult{}
	mu := &sync.Mutex{}

	jobs := make(chan string)
	wg := sync.WaitGroup{}
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				rec := r.pipe.AnalyzeFile(ctx, path, r.cfg.OutDir)
				mu.Lock()
				batch.Add(rec)
				mu.Unlock()
			}
		}()
	}

	go func() {
		for _, f := range files {
			if ctx.Err() != nil {
				break
			}
			jobs <- f
		}
		close(jobs)
	}()

	wg.Wait()
	return batch
}
