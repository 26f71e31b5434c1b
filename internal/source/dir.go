package source

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/fsutil"
	"github.com/specialistvlad/prodgraph/internal/records"
)

// Dir loads every record document found under a directory, or a single
// document file. JSON and YAML documents are recognized by their stem
// (resource, groups, tasks); other names are skipped.
type Dir struct {
	Path string
}

// Load implements Loader.
func (d Dir) Load(ctx context.Context) (*records.Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading records from directory.", "path", d.Path)

	files, err := fsutil.FindFilesByExtension(d.Path, Extensions...)
	if err != nil {
		return nil, fmt.Errorf("finding record files in %s: %w", d.Path, err)
	}

	set := &records.Set{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isRecordDocument(path) {
			logger.Debug("Skipping file that is not a record document.", "path", path)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := decodeDocument(path, data, set); err != nil {
			return nil, err
		}
		logger.Debug("Record file loaded.", "path", path)
	}

	logger.Info("Records loaded.", "path", d.Path, "files", len(files), "resources", len(set.Resources), "groups", len(set.Groups), "tasks", len(set.Tasks))
	return set, nil
}
