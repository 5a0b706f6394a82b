package pipeline

import (
	"context"
	"errors"
	"io"
	"time"
)

// Source is one input file loaded fully into memory.
type Source struct {
	Name string
	Data []byte
}

// Table is one exportable table of a pipeline output.
type Table interface {
	TableName() string
	Len() int
	WriteCSV(w io.Writer) error
}

// Output is what a pipeline produces for a single file.
type Output interface {
	Tables() []Table
}

// Pipeline defines the interface that all workbook pipelines must implement
type Pipeline interface {
	// Name returns the unique identifier for this pipeline
	Name() string

	// Validate checks the file structure without transforming it
	Validate(ctx context.Context, src Source) error

	// Transform processes a single input file and returns its output
	Transform(ctx context.Context, src Source) (Output, error)
}

// Loader yields the input files of a batch.
type Loader interface {
	Load(ctx context.Context) ([]Source, error)
}

// Config holds configuration for a pipeline run
type Config struct {
	Name        string
	WorkerCount int    // Number of concurrent workers
	OutputDir   string // Directory for exported CSVs; empty disables local export
}

// DefaultConfig returns sensible defaults
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		WorkerCount: 4,
		OutputDir:   "data/output/" + name,
	}
}

// FileStatus represents the outcome of a single file
type FileStatus string

const (
	FileStatusCompleted FileStatus = "completed"
	FileStatusFailed    FileStatus = "failed"
)

// FileResult is the outcome of one file of a batch.
type FileResult struct {
	File     string // identity within the batch, unique
	Source   string // name as supplied
	Status   FileStatus
	Output   Output
	Err      error
	Duration time.Duration
}

// Batch is the result of running a pipeline over several files. Files are
// sorted by identity so the same inputs always produce the same order.
type Batch struct {
	RunID       string
	Pipeline    string
	StartedAt   time.Time
	CompletedAt time.Time
	Files       []FileResult
}

// Failed returns the files that did not complete.
func (b *Batch) Failed() []FileResult {
	var out []FileResult
	for _, f := range b.Files {
		if f.Status == FileStatusFailed {
			out = append(out, f)
		}
	}
	return out
}

// KindInternal is reported for errors that carry no kind of their own.
const KindInternal = "internal"

// ErrorKind returns the stable kind of an error for metrics labels and API
// responses. Errors declare their kind through a Kind() string method.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}
