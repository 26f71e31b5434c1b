// Package resourcegroup expands resource-group records into groups of
// normalized resources.
package resourcegroup

import (
	"context"

	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/records"
)

// Resolve builds one group per record, keyed by group id. Member ids without a
// matching resource are skipped, so a group holds whatever subset exists.
func Resolve(ctx context.Context, recs []records.Group, resources map[int]*model.Resource) (map[int]*model.ResourceGroup, error) {
	logger := ctxlog.FromContext(ctx)
	groups := make(map[int]*model.ResourceGroup, len(recs))

	for _, rec := range recs {
		id, err := rec.ID.Require("resource_group_id")
		if err != nil {
			return nil, err
		}
		groupLogger := logger.With("resource_group_id", id)

		group := &model.ResourceGroup{ID: id}
		for _, member := range rec.ResourceIDs {
			if !member.Valid {
				continue
			}
			r, ok := resources[member.Value]
			if !ok {
				groupLogger.Debug("Group member does not match a known resource, skipping.", "resource_id", member.Value)
				continue
			}
			group.Resources = append(group.Resources, r)
		}

		if _, exists := groups[id]; exists {
			groupLogger.Warn("Duplicate resource group found, it will be overwritten.")
		}
		groups[id] = group
		groupLogger.Debug("Resolved resource group.", "member_count", len(group.Resources))
	}
	return groups, nil
}
