package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/cache"
	"github.com/andresuchdata/outlet-insight/internal/config"
	"github.com/andresuchdata/outlet-insight/internal/domain"
	"github.com/andresuchdata/outlet-insight/internal/drive"
	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
	"github.com/andresuchdata/outlet-insight/internal/service"
	"github.com/andresuchdata/outlet-insight/internal/storage"
	"github.com/andresuchdata/outlet-insight/internal/workbook"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newService(workers int) *service.AnalysisService {
	cfg := config.Load()

	var rc cache.ResultCache
	if cfg.Cache.Enabled {
		c, err := cache.NewResultCache(cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("result cache unavailable, continuing without it")
		} else {
			rc = c
		}
	}
	return service.NewAnalysisService(rc, nil, workers)
}

func loadFiles(c *cli.Context, minArgs int) ([]pipeline.Source, error) {
	if c.NArg() < minArgs {
		return nil, cli.Exit(fmt.Sprintf("%s: expected %s", c.Command.Name, c.Command.ArgsUsage), 2)
	}
	return pipeline.FileLoader{Paths: c.Args().Slice()}.Load(c.Context)
}

func runValidate(c *cli.Context) error {
	sources, err := loadFiles(c, 1)
	if err != nil {
		return err
	}

	svc := newService(1)
	out := c.App.Writer
	invalid := 0
	for _, src := range sources {
		report, err := svc.Validate(c.Context, src)
		if err != nil {
			return fmt.Errorf("validate %s: %w", src.Name, err)
		}
		if report.Valid {
			fmt.Fprintf(out, "%s: ok\n", report.File)
			continue
		}
		invalid++
		fmt.Fprintf(out, "%s: %s (%s)\n", report.File, report.Error, report.Kind)
	}

	if invalid > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d workbooks are invalid", invalid, len(sources)), 1)
	}
	return nil
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("analyze: expected exactly one FILE", 2)
	}
	sources, err := loadFiles(c, 1)
	if err != nil {
		return err
	}

	analysis, err := newService(1).Analyze(c.Context, sources[0])
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v (%s)", sources[0].Name, err, pipeline.ErrorKind(err)), 1)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, analysis)
	}
	return printDashboard(c.App.Writer, analysis.File, analysis.Dashboard)
}

func runExport(c *cli.Context) error {
	sources, err := loadFiles(c, 1)
	if err != nil {
		return err
	}

	exporter, err := newExporter(c)
	if err != nil {
		return err
	}

	orch := pipeline.NewOrchestrator(newService(c.Int("workers")).Worker(), exporter)
	batch, err := orch.Run(c.Context, staticLoader(sources))
	if err != nil {
		return err
	}
	return reportBatch(c.App.Writer, batch)
}

func runCompare(c *cli.Context) error {
	sources, err := loadFiles(c, 1)
	if err != nil {
		return err
	}

	cmp, err := newService(c.Int("workers")).Compare(c.Context, sources)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		if err := writeJSON(c.App.Writer, cmp); err != nil {
			return err
		}
	} else if err := printComparison(c.App.Writer, cmp); err != nil {
		return err
	}

	if n := cmp.Failed(); n > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d workbooks failed", n, len(cmp.Files)), 1)
	}
	return nil
}

func runRemote(c *cli.Context) error {
	cfg := config.Load()

	var loader pipeline.Loader
	switch from := strings.ToLower(c.String("from")); from {
	case "storage":
		store, err := newStorage(cfg.Storage)
		if err != nil {
			return err
		}
		prefix := c.String("prefix")
		if prefix == "" {
			prefix = cfg.Storage.InputPrefix
		}
		loader = storage.Loader{Store: store, Prefix: prefix}
	case "drive":
		folder := c.String("folder")
		if folder == "" {
			return cli.Exit("remote: --folder or DRIVE_FOLDER_ID is required for drive", 2)
		}
		svc, err := newDrive(c.Context, cfg.Drive)
		if err != nil {
			return err
		}
		loader = drive.Loader{Files: svc, FolderID: folder}
	default:
		return cli.Exit(fmt.Sprintf("remote: unknown source %q, want storage or drive", from), 2)
	}

	exporter, err := newExporter(c)
	if err != nil {
		return err
	}

	orch := pipeline.NewOrchestrator(newService(c.Int("workers")).Worker(), exporter)
	batch, err := orch.Run(c.Context, loader)
	if err != nil {
		return err
	}
	return reportBatch(c.App.Writer, batch)
}

func runCacheClear(c *cli.Context) error {
	cfg := config.Load()
	if !cfg.Cache.Enabled {
		return cli.Exit("result cache is disabled (CACHE_ENABLED)", 2)
	}

	rc, err := cache.NewResultCache(cfg.Cache)
	if err != nil {
		return err
	}
	n, err := rc.Clear(c.Context)
	if err != nil {
		return err
	}
	log.Info().Int("removed", n).Msg("result cache cleared")
	fmt.Fprintf(c.App.Writer, "removed %d cached results\n", n)
	return nil
}

func runSheet(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("sheet: expected FILE SHEET", 2)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer f.Close()

	wb, err := workbook.Open(f)
	if err != nil {
		return err
	}
	defer wb.Close()

	return wb.WriteSheetCSV(c.Args().Get(1), c.App.Writer)
}

func runTemplate(c *cli.Context) error {
	data, err := inventory.Template()
	if err != nil {
		return err
	}
	path := c.String("out")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}

// newExporter writes to --out and, with --upload, to the configured bucket.
func newExporter(c *cli.Context) (*pipeline.Exporter, error) {
	cfg := config.Load()

	var uploader pipeline.Uploader
	if c.Bool("upload") {
		store, err := newStorage(cfg.Storage)
		if err != nil {
			return nil, err
		}
		uploader = store
	}
	return pipeline.NewExporter(c.String("out"), uploader, cfg.Storage.ExportPrefix), nil
}

func newStorage(cfg config.StorageConfig) (*storage.S3Client, error) {
	if !cfg.Enabled() {
		return nil, cli.Exit("object storage is not configured (STORAGE_ENDPOINT, STORAGE_BUCKET)", 2)
	}
	return storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		UseSSL:    cfg.UseSSL,
	})
}

func newDrive(ctx context.Context, cfg config.DriveConfig) (*drive.Service, error) {
	switch {
	case cfg.CredentialsJSON != "":
		return drive.NewService(ctx, cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		return drive.NewServiceFromFile(ctx, cfg.CredentialsFile)
	default:
		return nil, cli.Exit("drive credentials are not configured (DRIVE_CREDENTIALS_FILE or DRIVE_CREDENTIALS_JSON)", 2)
	}
}

type staticLoader []pipeline.Source

func (s staticLoader) Load(context.Context) ([]pipeline.Source, error) { return s, nil }

func reportBatch(w io.Writer, batch *pipeline.Batch) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tDETAIL")
	for _, f := range batch.Files {
		detail := f.Duration.Round(time.Millisecond).String()
		if f.Err != nil {
			detail = fmt.Sprintf("%s: %v", pipeline.ErrorKind(f.Err), f.Err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.File, f.Status, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failed := batch.Failed(); len(failed) > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d workbooks failed", len(failed), len(batch.Files)), 1)
	}
	return nil
}

func printDashboard(w io.Writer, file string, view domain.DashboardView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", file)
	for _, s := range []domain.Section{view.Sales, view.Prices, view.Inventory, view.Performance} {
		fmt.Fprintf(tw, "\n%s\n", s.Title)
		for _, card := range s.Cards {
			fmt.Fprintf(tw, "  %s\t%s", card.Label, card.Value)
			if card.Detail != "" {
				fmt.Fprintf(tw, "\t%s", card.Detail)
			}
			fmt.Fprintln(tw)
		}
	}

	fmt.Fprintf(tw, "\nUnsold Items\n")
	if len(view.UnsoldItems) == 0 {
		fmt.Fprintln(tw, "  none")
	}
	for _, item := range view.UnsoldItems {
		fmt.Fprintf(tw, "  %s\n", item)
	}
	return tw.Flush()
}

func printComparison(w io.Writer, cmp *domain.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSALES (OUTLET)\tUNITS SOLD\tSELL-THROUGH\tTURNOVER\tBEST SELLER")
	for _, row := range cmp.Files {
		if row.Error != "" {
			fmt.Fprintf(tw, "%s\t%s: %s\t\t\t\t\n", row.File, row.Kind, row.Error)
			continue
		}
		m := row.Metrics
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.File,
			inventory.FormatCurrency(m.TotalSalesOutlet),
			inventory.FormatNumber(m.TotalUnitsSold),
			inventory.FormatPercentage(m.SellThroughRate),
			inventory.FormatRatio(m.InventoryTurnover),
			m.BestSeller.Description,
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
