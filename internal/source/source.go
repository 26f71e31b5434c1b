// Package source loads record sets from the places production data is kept:
// a local directory, an S3 bucket or a Postgres database.
package source

import (
	"context"

	"github.com/specialistvlad/prodgraph/internal/records"
)

// Loader reads one complete record set.
type Loader interface {
	Load(ctx context.Context) (*records.Set, error)
}

// Extensions lists the document extensions loaders look for.
var Extensions = []string{".json", ".yaml", ".yml", ".hcl"}

// isRecordDocument reports whether name identifies a record document. JSON and
// YAML documents are recognized by their stem; HCL documents carry their kind
// in the block type.
func isRecordDocument(name string) bool {
	format, ok := records.FormatFromName(name)
	if !ok {
		return false
	}
	if format == records.FormatHCL {
		return true
	}
	_, ok = records.KindFromName(name)
	return ok
}

func decodeDocument(name string, data []byte, set *records.Set) error {
	format, _ := records.FormatFromName(name)
	kind, _ := records.KindFromName(name)
	return records.Decode(kind, format, name, data, set)
}
