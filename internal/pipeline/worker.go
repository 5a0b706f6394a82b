package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/metrics"
	"github.com/andresuchdata/outlet-insight/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Worker processes files for a specific pipeline
type Worker struct {
	pipeline Pipeline
	config   Config
	metrics  *metrics.Registry
	log      zerolog.Logger
}

// NewWorker creates a new pipeline worker. reg may be nil.
func NewWorker(p Pipeline, config Config, reg *metrics.Registry) *Worker {
	return &Worker{
		pipeline: p,
		config:   config,
		metrics:  reg,
		log:      log.With().Str("pipeline", p.Name()).Logger(),
	}
}

// ProcessBatch runs the pipeline over every source concurrently. A failing
// file is recorded in its FileResult and never stops the others; only
// cancellation of ctx aborts the batch.
func (w *Worker) ProcessBatch(ctx context.Context, sources []Source) (*Batch, error) {
	batch := &Batch{
		RunID:     uuid.NewString(),
		Pipeline:  w.pipeline.Name(),
		StartedAt: time.Now(),
	}
	w.log.Info().Str("run_id", batch.RunID).Int("files", len(sources)).Msg("starting batch")

	workerCount := w.config.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}

	ids := fileIdentities(sources)
	results := make([]FileResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = w.ProcessFile(gctx, ids[i], src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s aborted: %w", batch.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %s aborted: %w", batch.RunID, err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	batch.Files = results
	batch.CompletedAt = time.Now()

	w.log.Info().
		Str("run_id", batch.RunID).
		Int("files", len(results)).
		Int("failed", len(batch.Failed())).
		Dur("duration", batch.CompletedAt.Sub(batch.StartedAt)).
		Msg("batch completed")

	return batch, nil
}

// ProcessFile transforms a single source and records the outcome.
func (w *Worker) ProcessFile(ctx context.Context, id string, src Source) FileResult {
	start := time.Now()
	res := FileResult{File: id, Source: src.Name}
	flog := logger.WithFile(id).With().Str("pipeline", w.pipeline.Name()).Logger()

	out, err := w.pipeline.Transform(ctx, src)
	res.Duration = time.Since(start)
	if err != nil {
		res.Status = FileStatusFailed
		res.Err = err
		w.metrics.ObserveFailure(ErrorKind(err), res.Duration)
		flog.Warn().Err(err).Str("kind", ErrorKind(err)).Msg("file failed")
		return res
	}

	res.Status = FileStatusCompleted
	res.Output = out
	w.metrics.ObserveSuccess(res.Duration)
	for _, t := range out.Tables() {
		w.metrics.ObserveRows(t.TableName(), t.Len())
	}
	flog.Debug().Dur("duration", res.Duration).Msg("file completed")
	return res
}

// fileIdentities keys each source by name, suffixing repeats with #2, #3...
func fileIdentities(sources []Source) []string {
	ids := make([]string, len(sources))
	seen := make(map[string]int, len(sources))
	for i, s := range sources {
		seen[s.Name]++
		if n := seen[s.Name]; n > 1 {
			ids[i] = fmt.Sprintf("%s#%d", s.Name, n)
			continue
		}
		ids[i] = s.Name
	}
	return ids
}
