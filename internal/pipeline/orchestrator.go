package pipeline

import (
	"context"
	"fmt"
)

// Orchestrator loads a batch of files, runs them through a Worker and
// exports whatever completed.
type Orchestrator struct {
	worker   *Worker
	exporter *Exporter
}

// NewOrchestrator creates a new Orchestrator. exporter may be nil.
func NewOrchestrator(worker *Worker, exporter *Exporter) *Orchestrator {
	return &Orchestrator{worker: worker, exporter: exporter}
}

// Run loads the sources and processes them. Per-file failures are reported
// in the returned batch, not as an error.
func (o *Orchestrator) Run(ctx context.Context, loader Loader) (*Batch, error) {
	sources, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	batch, err := o.worker.ProcessBatch(ctx, sources)
	if err != nil {
		return nil, err
	}

	if o.exporter != nil {
		if err := o.exporter.ExportBatch(ctx, batch); err != nil {
			return batch, fmt.Errorf("failed to export batch %s: %w", batch.RunID, err)
		}
	}
	return batch, nil
}
