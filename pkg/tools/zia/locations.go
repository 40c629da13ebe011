//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zia

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const locationsDescription = `Reads ZIA locations.

Locations identify the networks whose traffic is forwarded to the Zscaler
service. This tool is read-only.

Actions:
* read      - fetch one location by id
* read_all  - list every location`

type locationsArgs struct {
	Action string `json:"action"`
	ID     int    `json:"id,omitempty"`
}

func (h *handlers) locations(ctx context.Context, _ *mcp.CallToolRequest, args *locationsArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zia_locations action=%q id=%d", call, args.Action, args.ID)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == 0 {
			return nil, nil, errors.New("read requires an id")
		}
		location, err := h.api.GetLocation(ctx, args.ID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(location)
		return result, nil, err

	case "read_all":
		locations, err := h.api.ListLocations(ctx)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(locations)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read or read_all", args.Action)
	}
}
