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

const activationDescription = `Checks or triggers ZIA configuration activation.

ZIA changes are staged until an activation commits them. Use status first;
activate is a write action and commits every pending change in the tenant.

Actions:
* status    - report whether changes are pending activation
* activate  - commit all pending configuration changes`

type activationArgs struct {
	Action string `json:"action"`
}

func (h *handlers) activation(ctx context.Context, _ *mcp.CallToolRequest, args *activationArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zia_activation action=%q", call, args.Action)

	switch strings.ToLower(args.Action) {
	case "status":
		status, err := h.api.ActivationStatus(ctx)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(status)
		return result, nil, err

	case "activate":
		if !h.opts.WriteEnabled("zia_activation") {
			return nil, nil, errors.New("zia_activation is read-only on this server")
		}
		status, err := h.api.Activate(ctx)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] activation requested, status=%s", call, status.Status)
		result, err := tools.JSONResult(status)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected status or activate", args.Action)
	}
}
