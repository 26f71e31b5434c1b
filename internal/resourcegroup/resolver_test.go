package resourcegroup

import (
	"context"
	"testing"

	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r1 := &model.Resource{ID: 1}
	r2 := &model.Resource{ID: 2}
	resources := map[int]*model.Resource{1: r1, 2: r2}

	recs := []records.Group{
		{ID: records.IntOf(10), ResourceIDs: []records.Int{records.IntOf(2), records.IntOf(1)}},
		{ID: records.IntOf(20), ResourceIDs: []records.Int{records.IntOf(1), records.IntOf(99)}},
		{ID: records.IntOf(30)},
	}

	groups, err := Resolve(context.Background(), recs, resources)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, []int{2, 1}, groups[10].ResourceIDs())
	assert.Equal(t, []int{1}, groups[20].ResourceIDs(), "unknown resource ids are skipped")
	assert.Empty(t, groups[30].Resources)

	// Groups share resource pointers.
	assert.Same(t, r1, groups[10].Resources[1])
	assert.Same(t, r1, groups[20].Resources[0])
}

func TestResolve_MissingID(t *testing.T) {
	_, err := Resolve(context.Background(), []records.Group{{}}, nil)
	assert.ErrorIs(t, err, model.ErrConfig)
}
