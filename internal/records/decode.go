package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/prodgraph/internal/model"
	"gopkg.in/yaml.v3"
)

// Kind names one of the three record collections.
type Kind string

const (
	KindResources Kind = "resource"
	KindGroups    Kind = "groups"
	KindTasks     Kind = "tasks"
)

// Kinds lists the collections in the order they are consumed.
var Kinds = []Kind{KindResources, KindGroups, KindTasks}

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFromName infers the format from a file or object name.
func FormatFromName(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".hcl":
		return FormatHCL, true
	default:
		return "", false
	}
}

// KindFromName infers the collection from a file or object name by its stem.
// HCL documents may hold every kind of block, so their stem is not checked by
// the decoder.
func KindFromName(name string) (Kind, bool) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, k := range Kinds {
		if strings.EqualFold(stem, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Decode parses one document and appends its records to set. name is only used
// in error messages and by the HCL parser for diagnostics. JSON and YAML
// documents hold a top-level list of records of the given kind; fields the
// record types do not know are ignored.
func Decode(kind Kind, format Format, name string, data []byte, set *Set) error {
	switch format {
	case FormatJSON:
		return decodeList(kind, name, set, func(v any) error {
			return json.Unmarshal(data, v)
		})
	case FormatYAML:
		return decodeList(kind, name, set, func(v any) error {
			return yaml.Unmarshal(data, v)
		})
	case FormatHCL:
		return decodeHCL(name, data, set)
	default:
		return fmt.Errorf("unsupported record format %q for %s", format, name)
	}
}

func decodeList(kind Kind, name string, set *Set, decode func(v any) error) error {
	var err error
	switch kind {
	case KindResources:
		var items []Resource
		if err = decode(&items); err == nil {
			set.Resources = append(set.Resources, items...)
		}
	case KindGroups:
		var items []Group
		if err = decode(&items); err == nil {
			set.Groups = append(set.Groups, items...)
		}
	case KindTasks:
		var items []Task
		if err = decode(&items); err == nil {
			set.Tasks = append(set.Tasks, items...)
		}
	default:
		return fmt.Errorf("unknown record kind %q for %s", kind, name)
	}
	if err != nil {
		if errors.Is(err, model.ErrConfig) {
			return fmt.Errorf("decode %s records from %s: %w", kind, name, err)
		}
		return fmt.Errorf("%w: decode %s records from %s: %w", model.ErrConfig, kind, name, err)
	}
	return nil
}
