package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclRoot decodes every block kind from any HCL document, so a single file may
// describe a whole plan:
//
//	resource "1" {
//	  availability {
//	    start_datetime   = "2024-05-01 06:00:00+0200"
//	    end_datetime     = "2024-05-01 14:00:00+0200"
//	    capacity_percent = 0.5
//	  }
//	}
//
//	group "10" {
//	  resource_ids = [1]
//	}
//
//	task "T1" {
//	  duration         = 60
//	  quantity         = 10
//	  micro_batch_size = 3
//	  resource_groups  = [10]
//	  resource_count   = "all"
//	  predecessors     = ["T0"]
//	}
type hclRoot struct {
	Resources []*hclResource `hcl:"resource,block"`
	Groups    []*hclGroup    `hcl:"group,block"`
	Tasks     []*hclTask     `hcl:"task,block"`
	Remain    hcl.Body       `hcl:",remain"`
}

type hclResource struct {
	ID           string             `hcl:"id,label"`
	Availability []*hclAvailability `hcl:"availability,block"`
}

type hclAvailability struct {
	Start    string   `hcl:"start_datetime"`
	End      string   `hcl:"end_datetime"`
	Capacity *float64 `hcl:"capacity_percent,optional"`
	IsAbsent bool     `hcl:"is_absent,optional"`
}

type hclGroup struct {
	ID          string `hcl:"id,label"`
	ResourceIDs []int  `hcl:"resource_ids,optional"`
}

type hclTask struct {
	ID                    string         `hcl:"id,label"`
	Duration              int            `hcl:"duration"`
	Priority              int            `hcl:"priority,optional"`
	Quantity              int            `hcl:"quantity"`
	MicroBatchSize        *int           `hcl:"micro_batch_size,optional"`
	ResourceGroups        []int          `hcl:"resource_groups,optional"`
	Predecessors          []string       `hcl:"predecessors,optional"`
	ResourceCount         hcl.Expression `hcl:"resource_count,optional"`
	ParentCollection      *string        `hcl:"parent_collection,optional"`
	PredecessorCollection *string        `hcl:"predecessor_collection,optional"`
}

func decodeHCL(name string, data []byte, set *Set) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return fmt.Errorf("%w: failed to parse HCL file %s: %w", model.ErrConfig, name, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("%w: failed to decode HCL file %s: %w", model.ErrConfig, name, diags)
	}

	for _, r := range root.Resources {
		id, err := labelInt("resource", r.ID)
		if err != nil {
			return err
		}
		rec := Resource{ID: id}
		for _, a := range r.Availability {
			rec.Availability = append(rec.Availability, Availability{
				Start:    a.Start,
				End:      a.End,
				Capacity: a.Capacity,
				IsAbsent: a.IsAbsent,
			})
		}
		set.Resources = append(set.Resources, rec)
	}

	for _, g := range root.Groups {
		id, err := labelInt("group", g.ID)
		if err != nil {
			return err
		}
		rec := Group{ID: id}
		for _, rid := range g.ResourceIDs {
			rec.ResourceIDs = append(rec.ResourceIDs, IntOf(rid))
		}
		set.Groups = append(set.Groups, rec)
	}

	for _, t := range root.Tasks {
		count, err := countFromExpr(t.ResourceCount)
		if err != nil {
			return fmt.Errorf("task %q in %s: %w", t.ID, name, err)
		}
		rec := Task{
			ID:            Ref(t.ID),
			Duration:      IntOf(t.Duration),
			Priority:      IntOf(t.Priority),
			Quantity:      IntOf(t.Quantity),
			ResourceCount: count,
		}
		if t.MicroBatchSize != nil {
			rec.MicroBatchSize = IntOf(*t.MicroBatchSize)
		}
		for _, gid := range t.ResourceGroups {
			rec.ResourceGroupIDs = append(rec.ResourceGroupIDs, IntOf(gid))
		}
		for _, p := range t.Predecessors {
			rec.Predecessors = append(rec.Predecessors, Ref(p))
		}
		if t.ParentCollection != nil {
			rec.ParentCollection = Ref(*t.ParentCollection)
		}
		if t.PredecessorCollection != nil {
			rec.PredecessorCollection = Ref(*t.PredecessorCollection)
		}
		set.Tasks = append(set.Tasks, rec)
	}
	return nil
}

func labelInt(block, label string) (Int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return Int{}, fmt.Errorf("%w: %s label %q is not an integer id", model.ErrConfig, block, label)
	}
	return IntOf(v), nil
}

// countFromExpr evaluates resource_count statically. It accepts a number, a
// numeric string, or "all".
func countFromExpr(expr hcl.Expression) (Count, error) {
	if expr == nil {
		return Count{}, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return Count{}, fmt.Errorf("%w: resource_count: %w", model.ErrConfig, diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return Count{}, nil
	}
	if val.Type() == cty.String && strings.EqualFold(strings.TrimSpace(val.AsString()), "all") {
		return Count{All: true}, nil
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return Count{}, fmt.Errorf("%w: resource_count: %w", model.ErrConfig, err)
	}
	var n int
	if err := gocty.FromCtyValue(num, &n); err != nil {
		return Count{}, fmt.Errorf("%w: resource_count: %w", model.ErrConfig, err)
	}
	return Count{Int: IntOf(n)}, nil
}
