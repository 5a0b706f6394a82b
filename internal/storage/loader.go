package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/rs/zerolog/log"
)

// Loader reads every .xlsx object under a prefix as a batch source.
type Loader struct {
	Store  ObjectStorage
	Prefix string
}

// Load implements pipeline.Loader. Sources are named by object base name
// and returned in key order.
func (l Loader) Load(ctx context.Context) ([]pipeline.Source, error) {
	objects, err := l.Store.ListObjects(ctx, l.Prefix)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		if IsWorkbookKey(o.Key) {
			keys = append(keys, o.Key)
		}
	}
	sort.Strings(keys)

	sources := make([]pipeline.Source, 0, len(keys))
	for _, key := range keys {
		data, err := l.Store.GetObject(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
		}
		sources = append(sources, pipeline.Source{Name: path.Base(key), Data: data})
	}

	log.Info().Str("prefix", l.Prefix).Int("workbooks", len(sources)).Msg("loaded workbooks from storage")
	return sources, nil
}

// IsWorkbookKey reports whether an object key names an XLSX file. Office
// lock files ("~$book.xlsx") are skipped.
func IsWorkbookKey(key string) bool {
	base := path.Base(key)
	return strings.EqualFold(path.Ext(base), ".xlsx") && !strings.HasPrefix(base, "~$")
}
