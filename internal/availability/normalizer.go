// Package availability converts raw resource schedules into usable time
// windows relative to a reference instant.
package availability

import (
	"context"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/records"
)

// TimestampLayout is the layout of every schedule timestamp in the records,
// e.g. `2024-05-01 06:00:00+0200`.
const TimestampLayout = "2006-01-02 15:04:05-0700"

// DefaultCacheSize bounds the parsed-timestamp cache. Shift calendars repeat
// the same boundaries across resources, so a small cache absorbs most parses.
const DefaultCacheSize = 4096

// Normalizer turns resource records into model resources.
type Normalizer struct {
	reference time.Time
	parsed    *lru.Cache[string, time.Time]
}

// New creates a normalizer whose windows are expressed in minutes from
// reference.
func New(reference time.Time) (*Normalizer, error) {
	cache, err := lru.New[string, time.Time](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init timestamp cache: %w", err)
	}
	return &Normalizer{reference: reference, parsed: cache}, nil
}

// Reference returns the instant window offsets are measured from.
func (n *Normalizer) Reference() time.Time {
	return n.reference
}

// Normalize converts one resource record. Absent entries contribute nothing;
// the remaining entries produce one window each, in input order, without any
// merging of overlaps.
func (n *Normalizer) Normalize(rec records.Resource) (*model.Resource, error) {
	id, err := rec.ID.Require("resource_id")
	if err != nil {
		return nil, err
	}

	windows := make([]model.Window, 0, len(rec.Availability))
	for i, entry := range rec.Availability {
		if entry.IsAbsent {
			continue
		}
		w, err := n.window(entry)
		if err != nil {
			return nil, fmt.Errorf("resource %d, availability entry %d: %w", id, i, err)
		}
		windows = append(windows, w)
	}
	return &model.Resource{ID: id, Windows: windows}, nil
}

// NormalizeAll converts every resource record and keys the result by id. A
// later record with the same id replaces an earlier one.
func (n *Normalizer) NormalizeAll(ctx context.Context, recs []records.Resource) (map[int]*model.Resource, error) {
	logger := ctxlog.FromContext(ctx)
	out := make(map[int]*model.Resource, len(recs))
	for _, rec := range recs {
		r, err := n.Normalize(rec)
		if err != nil {
			return nil, err
		}
		if _, exists := out[r.ID]; exists {
			logger.Warn("Duplicate resource record found, it will be overwritten.", "resource_id", r.ID)
		}
		out[r.ID] = r
		logger.Debug("Normalized resource availability.", "resource_id", r.ID, "window_count", len(r.Windows))
	}
	return out, nil
}

func (n *Normalizer) window(entry records.Availability) (model.Window, error) {
	start, err := n.minutes(entry.Start)
	if err != nil {
		return model.Window{}, fmt.Errorf("start_datetime: %w", err)
	}
	end, err := n.minutes(entry.End)
	if err != nil {
		return model.Window{}, fmt.Errorf("end_datetime: %w", err)
	}

	if entry.Capacity != nil && *entry.Capacity != 0 {
		capacity := *entry.Capacity
		if capacity < 0 || capacity > 1 || math.IsNaN(capacity) {
			return model.Window{}, fmt.Errorf("%w: capacity_percent must be within [0, 1], got %v", model.ErrConfig, capacity)
		}
		end = AdjustCapacity(start, end, capacity)
	}
	return model.Window{Start: start, End: end}, nil
}

// AdjustCapacity shrinks a window to the share of it a resource can use,
// keeping its start: `start + (end-start)*capacity`, truncated to a minute.
func AdjustCapacity(start, end int, capacity float64) int {
	return int(float64(start) + float64(end-start)*capacity)
}

// minutes returns the whole minutes between the reference instant and the
// timestamp, floored.
func (n *Normalizer) minutes(raw string) (int, error) {
	t, ok := n.parsed.Get(raw)
	if !ok {
		var err error
		t, err = time.Parse(TimestampLayout, raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", model.ErrConfig, err)
		}
		n.parsed.Add(raw, t)
	}
	return int(math.Floor(t.Sub(n.reference).Minutes())), nil
}
