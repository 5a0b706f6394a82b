package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/outlet-insight/internal/cache"
	"github.com/andresuchdata/outlet-insight/internal/domain"
	"github.com/andresuchdata/outlet-insight/internal/metrics"
	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AnalysisService runs uploaded workbooks through the inventory pipeline,
// memoising results in the result cache.
type AnalysisService struct {
	pipeline *inventory.Pipeline
	worker   *pipeline.Worker
}

// NewAnalysisService wires the pipeline. A nil cache disables caching and
// reg may be nil.
func NewAnalysisService(cacheImpl cache.ResultCache, reg *metrics.Registry, workers int) *AnalysisService {
	p := inventory.NewPipeline()
	cp := &cachedPipeline{inner: p, cache: cacheImpl, metrics: reg}
	if cacheImpl == nil {
		cp.cache = cache.NewNoopResultCache()
		cp.disabled = true
	}

	cfg := pipeline.DefaultConfig(p.Name())
	cfg.WorkerCount = workers
	cfg.OutputDir = ""

	return &AnalysisService{
		pipeline: p,
		worker:   pipeline.NewWorker(cp, cfg, reg),
	}
}

// Worker exposes the batch worker for orchestrated runs.
func (s *AnalysisService) Worker() *pipeline.Worker {
	return s.worker
}

// Validate checks the sheet names of a workbook. Domain failures are
// reported in the returned report; only unexpected errors are returned.
func (s *AnalysisService) Validate(ctx context.Context, src pipeline.Source) (*domain.ValidationReport, error) {
	report := &domain.ValidationReport{File: src.Name, Valid: true}

	err := s.pipeline.Validate(ctx, src)
	if err == nil {
		return report, nil
	}

	kind := pipeline.ErrorKind(err)
	if kind == pipeline.KindInternal {
		return nil, err
	}

	report.Valid = false
	report.Error = err.Error()
	report.Kind = kind
	var mt *inventory.MissingTablesError
	if errors.As(err, &mt) {
		report.Missing = mt.Missing
	}
	return report, nil
}

// Analyze processes a single workbook.
func (s *AnalysisService) Analyze(ctx context.Context, src pipeline.Source) (*domain.Analysis, error) {
	runID := uuid.NewString()
	fr := s.worker.ProcessFile(ctx, src.Name, src)
	if fr.Err != nil {
		return nil, fr.Err
	}

	res, ok := fr.Output.(*inventory.Result)
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", fr.Output)
	}
	return domain.NewAnalysis(runID, src.Name, res), nil
}

// Compare processes several workbooks concurrently. A failing file becomes
// an error row; the others are still reported.
func (s *AnalysisService) Compare(ctx context.Context, sources []pipeline.Source) (*domain.Comparison, error) {
	batch, err := s.worker.ProcessBatch(ctx, sources)
	if err != nil {
		return nil, err
	}
	return NewComparison(batch), nil
}

// NewComparison turns a batch into comparison rows in batch order.
func NewComparison(batch *pipeline.Batch) *domain.Comparison {
	cmp := &domain.Comparison{RunID: batch.RunID, Files: make([]domain.ComparisonRow, 0, len(batch.Files))}
	for _, f := range batch.Files {
		row := domain.ComparisonRow{File: f.File, Status: string(f.Status)}
		if f.Err != nil {
			row.Error = f.Err.Error()
			row.Kind = pipeline.ErrorKind(f.Err)
		} else if res, ok := f.Output.(*inventory.Result); ok {
			m := res.Metrics
			view := domain.NewDashboardView(m)
			row.Metrics = &m
			row.Dashboard = &view
		}
		cmp.Files = append(cmp.Files, row)
	}
	return cmp
}

// cachedPipeline consults the result cache before processing. Cache errors
// are logged and never fail a file.
type cachedPipeline struct {
	inner    *inventory.Pipeline
	cache    cache.ResultCache
	metrics  *metrics.Registry
	disabled bool
}

func (c *cachedPipeline) Name() string { return c.inner.Name() }

func (c *cachedPipeline) Validate(ctx context.Context, src pipeline.Source) error {
	return c.inner.Validate(ctx, src)
}

func (c *cachedPipeline) Transform(ctx context.Context, src pipeline.Source) (pipeline.Output, error) {
	if !c.disabled {
		res, ok, err := c.cache.Get(ctx, src.Data)
		if err != nil {
			log.Warn().Err(err).Str("file", src.Name).Msg("analysis: cache get failed")
		}
		c.metrics.ObserveCache(ok)
		if ok {
			return res, nil
		}
	}

	res, err := c.inner.Analyze(ctx, src)
	if err != nil {
		return nil, err
	}

	if !c.disabled {
		if err := c.cache.Set(ctx, src.Data, res); err != nil {
			log.Warn().Err(err).Str("file", src.Name).Msg("analysis: cache set failed")
		}
	}
	return res, nil
}
