package records

import (
	"testing"

	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSONTasks(t *testing.T) {
	doc := `[
		{
			"taskno": "T1",
			"duration": "30",
			"priority": 2,
			"quantity": 10.0,
			"micro_batch_size": 3,
			"resource_group_id": [1, "2"],
			"predecessors": ["T0", 7],
			"resource_count": 0,
			"parent_item_collection_id": "P1",
			"predecessor_item_collection_id": null,
			"nocodb_row": 4
		}
	]`

	var set Set
	require.NoError(t, Decode(KindTasks, FormatJSON, "tasks.json", []byte(doc), &set))
	require.Len(t, set.Tasks, 1)

	task := set.Tasks[0]
	assert.Equal(t, Ref("T1"), task.ID)
	assert.Equal(t, IntOf(30), task.Duration)
	assert.Equal(t, IntOf(10), task.Quantity)
	assert.Equal(t, IntOf(3), task.MicroBatchSize)
	assert.Equal(t, []Int{IntOf(1), IntOf(2)}, task.ResourceGroupIDs)
	assert.Equal(t, []Ref{"T0", "7"}, task.Predecessors)
	assert.Equal(t, Ref("P1"), task.ParentCollection)
	assert.Equal(t, Ref(""), task.PredecessorCollection)

	count, err := task.ResourceCount.Resolve()
	require.NoError(t, err)
	assert.True(t, count.IsAll())
}

func TestDecode_JSONRejectsNonInteger(t *testing.T) {
	doc := `[{"taskno": "T1", "duration": 2.5, "quantity": 1, "resource_count": 1}]`

	var set Set
	err := Decode(KindTasks, FormatJSON, "tasks.json", []byte(doc), &set)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestDecode_YAMLResourcesAndGroups(t *testing.T) {
	resources := `
- resource_id: 1
  availability:
    - start_datetime: "2024-05-01 06:00:00+0000"
      end_datetime: "2024-05-01 07:00:00+0000"
      capacity_percent: 0.5
      is_absent: false
    - start_datetime: "2024-05-02 06:00:00+0000"
      end_datetime: "2024-05-02 07:00:00+0000"
      is_absent: true
`
	groups := `
- resource_group_id: "10"
  resource_id: [1, 2]
`
	var set Set
	require.NoError(t, Decode(KindResources, FormatYAML, "resource.yaml", []byte(resources), &set))
	require.NoError(t, Decode(KindGroups, FormatYAML, "groups.yaml", []byte(groups), &set))

	require.Len(t, set.Resources, 1)
	assert.Equal(t, IntOf(1), set.Resources[0].ID)
	require.Len(t, set.Resources[0].Availability, 2)
	require.NotNil(t, set.Resources[0].Availability[0].Capacity)
	assert.InDelta(t, 0.5, *set.Resources[0].Availability[0].Capacity, 1e-9)
	assert.Nil(t, set.Resources[0].Availability[1].Capacity)
	assert.True(t, set.Resources[0].Availability[1].IsAbsent)

	require.Len(t, set.Groups, 1)
	assert.Equal(t, IntOf(10), set.Groups[0].ID)
	assert.Equal(t, []Int{IntOf(1), IntOf(2)}, set.Groups[0].ResourceIDs)
}

func TestDecode_HCL(t *testing.T) {
	doc := `
resource "1" {
  availability {
    start_datetime = "2024-05-01 06:00:00+0000"
    end_datetime   = "2024-05-01 07:00:00+0000"
  }
}

group "10" {
  resource_ids = [1]
}

task "A" {
  duration         = 60
  quantity         = 10
  micro_batch_size = 3
  resource_groups  = [10]
  resource_count   = "all"
  parent_collection = "P1"
}

task "B" {
  duration       = 15
  quantity       = 1
  resource_count = 2
  predecessors   = ["A"]
}
`
	var set Set
	require.NoError(t, Decode(KindTasks, FormatHCL, "plan.hcl", []byte(doc), &set))

	require.Len(t, set.Resources, 1)
	require.Len(t, set.Groups, 1)
	require.Len(t, set.Tasks, 2)

	a := set.Tasks[0]
	assert.Equal(t, Ref("A"), a.ID)
	assert.Equal(t, IntOf(3), a.MicroBatchSize)
	assert.Equal(t, Ref("P1"), a.ParentCollection)
	assert.True(t, a.ResourceCount.All)

	b := set.Tasks[1]
	assert.False(t, b.MicroBatchSize.Valid)
	assert.Equal(t, []Ref{"A"}, b.Predecessors)
	count, err := b.ResourceCount.Resolve()
	require.NoError(t, err)
	n, ok := count.N()
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestDecode_HCLMissingResourceCountIsRequired(t *testing.T) {
	doc := `
task "A" {
  duration = 1
  quantity = 1
}
`
	var set Set
	require.NoError(t, Decode(KindTasks, FormatHCL, "plan.hcl", []byte(doc), &set))
	_, err := set.Tasks[0].ResourceCount.Resolve()
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestDecode_HCLBadLabel(t *testing.T) {
	var set Set
	err := Decode(KindResources, FormatHCL, "plan.hcl", []byte(`resource "press" {}`), &set)
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestFormatAndKindFromName(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		format   Format
		formatOK bool
		kind     Kind
		kindOK   bool
	}{
		{name: "json tasks", file: "data/tasks.json", format: FormatJSON, formatOK: true, kind: KindTasks, kindOK: true},
		{name: "yml resources", file: "resource.yml", format: FormatYAML, formatOK: true, kind: KindResources, kindOK: true},
		{name: "hcl plan", file: "plan.hcl", format: FormatHCL, formatOK: true},
		{name: "unknown", file: "notes.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format, ok := FormatFromName(tc.file)
			assert.Equal(t, tc.formatOK, ok)
			assert.Equal(t, tc.format, format)

			kind, ok := KindFromName(tc.file)
			assert.Equal(t, tc.kindOK, ok)
			assert.Equal(t, tc.kind, kind)
		})
	}
}
