//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zpa

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/segmentgroup"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const segmentGroupsDescription = `Manages ZPA segment groups.

Segment groups bundle application segments so access policy rules can
target the bundle instead of individual segments.

Actions:
* read      - fetch one group by id
* read_all  - list every group
* create    - create a group (name required)
* update    - update a group (id and name required)
* delete    - delete a group by id

Write actions require the server to permit writes for this tool.`

type segmentGroupsArgs struct {
	Action      string `json:"action"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

func (h *handlers) segmentGroups(ctx context.Context, _ *mcp.CallToolRequest, args *segmentGroupsArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zpa_segment_groups action=%q id=%q", call, args.Action, args.ID)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == "" {
			return nil, nil, errors.New("read requires an id")
		}
		group, err := h.api.GetSegmentGroup(ctx, args.ID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(group)
		return result, nil, err

	case "read_all":
		groups, err := h.api.ListSegmentGroups(ctx)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(groups)
		return result, nil, err

	case "create":
		if !h.opts.WriteEnabled("zpa_segment_groups") {
			return nil, nil, errors.New("zpa_segment_groups is read-only on this server")
		}
		if args.Name == "" {
			return nil, nil, errors.New("create requires a name")
		}
		created, err := h.api.CreateSegmentGroup(ctx, buildGroup(args))
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] created segment group %q (id=%s)", call, created.Name, created.ID)
		result, err := tools.JSONResult(created)
		return result, nil, err

	case "update":
		if !h.opts.WriteEnabled("zpa_segment_groups") {
			return nil, nil, errors.New("zpa_segment_groups is read-only on this server")
		}
		if args.ID == "" || args.Name == "" {
			return nil, nil, errors.New("update requires an id and a name")
		}
		group := buildGroup(args)
		group.ID = args.ID
		if err := h.api.UpdateSegmentGroup(ctx, args.ID, group); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] updated segment group id=%s", call, args.ID)
		return tools.TextResult("updated"), nil, nil

	case "delete":
		if !h.opts.WriteEnabled("zpa_segment_groups") {
			return nil, nil, errors.New("zpa_segment_groups is read-only on this server")
		}
		if args.ID == "" {
			return nil, nil, errors.New("delete requires an id")
		}
		if err := h.api.DeleteSegmentGroup(ctx, args.ID); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] deleted segment group id=%s", call, args.ID)
		return tools.TextResult("deleted"), nil, nil

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read, read_all, create, update or delete", args.Action)
	}
}

func buildGroup(args *segmentGroupsArgs) *segmentgroup.SegmentGroup {
	enabled := true
	if args.Enabled != nil {
		enabled = *args.Enabled
	}
	return &segmentgroup.SegmentGroup{
		Name:        args.Name,
		Description: args.Description,
		Enabled:     enabled,
	}
}
