package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/rs/zerolog/log"
)

// FileSource lists and downloads Drive files. *Service implements it.
type FileSource interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	DownloadFile(ctx context.Context, f *File, w io.Writer) error
}

// Loader pulls every workbook of a Drive folder into memory.
type Loader struct {
	Files    FileSource
	FolderID string
}

// Load implements pipeline.Loader. XLSX uploads and native Google Sheets
// are loaded; everything else in the folder is skipped.
func (l Loader) Load(ctx context.Context) ([]pipeline.Source, error) {
	files, err := l.Files.ListFiles(ctx, l.FolderID)
	if err != nil {
		return nil, err
	}

	var picked []*File
	for _, f := range files {
		if IsWorkbook(f) {
			picked = append(picked, f)
		}
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Name < picked[j].Name })

	sources := make([]pipeline.Source, 0, len(picked))
	for _, f := range picked {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var buf bytes.Buffer
		if err := l.Files.DownloadFile(ctx, f, &buf); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		sources = append(sources, pipeline.Source{Name: workbookName(f), Data: buf.Bytes()})
	}

	log.Info().Str("folder", l.FolderID).Int("workbooks", len(sources)).Msg("loaded workbooks from drive")
	return sources, nil
}

// IsWorkbook reports whether a Drive file can be read as XLSX.
func IsWorkbook(f *File) bool {
	switch f.MimeType {
	case mimeGoogleSheet, mimeXLSX:
		return true
	case mimeFolder:
		return false
	}
	return strings.EqualFold(filepath.Ext(f.Name), ".xlsx")
}

func workbookName(f *File) string {
	if f.MimeType == mimeGoogleSheet && !strings.EqualFold(filepath.Ext(f.Name), ".xlsx") {
		return f.Name + ".xlsx"
	}
	return f.Name
}
