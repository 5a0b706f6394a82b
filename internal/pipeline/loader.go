package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileLoader loads local files.
type FileLoader struct {
	Paths []string
}

// Load reads every path. Sources are named by base name.
func (l FileLoader) Load(ctx context.Context) ([]Source, error) {
	sources := make([]Source, 0, len(l.Paths))
	for _, p := range l.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot stat input file %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("input path %s is a directory, expected file", p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		sources = append(sources, Source{Name: filepath.Base(p), Data: data})
	}
	return sources, nil
}
