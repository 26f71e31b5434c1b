package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of an exported payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be 'json' or 'yaml'", s)
	}
}

// Export is an Engine that writes the plan as a Payload document instead of
// solving it.
type Export struct {
	w      io.Writer
	format Format
}

// NewExport returns an engine writing to w.
func NewExport(w io.Writer, format Format) *Export {
	return &Export{w: w, format: format}
}

// Schedule implements Engine.
func (e *Export) Schedule(ctx context.Context, resources map[int]*model.Resource, tasks []*model.Task) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	payload, err := NewPayload(resources, tasks)
	if err != nil {
		return nil, fmt.Errorf("building payload: %w", err)
	}

	switch e.format {
	case FormatYAML:
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("encoding yaml payload: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml payload: %w", err)
		}
	case FormatJSON, "":
		enc := json.NewEncoder(e.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("encoding json payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", e.format)
	}

	res := &Result{
		Resources: len(payload.Resources),
		Groups:    len(payload.Groups),
		Tasks:     len(payload.Tasks),
		Levels:    maxLevel(payload),
	}
	logger.Debug("Export: Payload written.", "format", string(e.format), "task_count", res.Tasks)
	return res, nil
}
