package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Uploader stores an exported file remotely.
type Uploader interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
}

// Exporter writes every table of completed files as CSV, to a local
// directory, to object storage, or both.
type Exporter struct {
	outputDir string
	uploader  Uploader
	prefix    string
}

// NewExporter creates an exporter. An empty outputDir skips local files and
// a nil uploader skips remote ones.
func NewExporter(outputDir string, uploader Uploader, prefix string) *Exporter {
	return &Exporter{outputDir: outputDir, uploader: uploader, prefix: prefix}
}

// ExportBatch exports every completed file of the batch. CSV names that
// would collide, ignoring case, get a numeric suffix in batch order.
func (e *Exporter) ExportBatch(ctx context.Context, batch *Batch) error {
	used := make(map[string]bool)
	for _, f := range batch.Files {
		if f.Status != FileStatusCompleted {
			continue
		}
		if _, err := e.exportFile(ctx, batch.RunID, f, used); err != nil {
			return err
		}
	}
	return nil
}

// ExportFile writes the tables of one file and returns the local paths or
// object keys written.
func (e *Exporter) ExportFile(ctx context.Context, runID string, f FileResult) ([]string, error) {
	return e.exportFile(ctx, runID, f, make(map[string]bool))
}

func (e *Exporter) exportFile(ctx context.Context, runID string, f FileResult, used map[string]bool) ([]string, error) {
	if f.Output == nil {
		return nil, nil
	}

	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var written []string
	for _, t := range f.Output.Tables() {
		var buf bytes.Buffer
		if err := t.WriteCSV(&buf); err != nil {
			return written, fmt.Errorf("failed to render %s table of %s: %w", t.TableName(), f.File, err)
		}
		name := uniqueName(ExportFileName(f.File, t.TableName()), used)

		if e.outputDir != "" {
			p := filepath.Join(e.outputDir, name)
			if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
				return written, fmt.Errorf("failed writing %s: %w", p, err)
			}
			written = append(written, p)
		}

		if e.uploader != nil {
			key := path.Join(e.prefix, runID, name)
			if err := e.uploader.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
				return written, fmt.Errorf("failed uploading %s: %w", key, err)
			}
			written = append(written, key)
		}

		log.Info().Str("file", f.File).Str("table", t.TableName()).Int("rows", t.Len()).Msg("exported table")
	}
	return written, nil
}

// ExportFileName derives the CSV name of a table, e.g. "store_a.xlsx" and
// "inventory" give "store_a_inventory_data.csv".
func ExportFileName(file, table string) string {
	name, dup := splitIdentity(file)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if dup != "" {
		stem += "_" + dup
	}
	stem = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(stem)
	return fmt.Sprintf("%s_%s_data.csv", stem, table)
}

// splitIdentity separates the "#n" suffix fileIdentities adds. A '#' that
// is not followed by digits only is part of the name.
func splitIdentity(file string) (string, string) {
	i := strings.LastIndex(file, "#")
	if i < 0 || i == len(file)-1 {
		return file, ""
	}
	dup := file[i+1:]
	if strings.Trim(dup, "0123456789") != "" {
		return file, ""
	}
	return file[:i], dup
}

// uniqueName records name in used and returns it, or the first free
// "<stem>_<n>.csv" when another file already took it.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	stem := strings.TrimSuffix(name, ".csv")
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s_%d.csv", stem, n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
