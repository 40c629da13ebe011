//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zia

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/rule_labels"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const ruleLabelsDescription = `Manages ZIA rule labels.

Rule labels are logical groupings attached to ZIA policy rules so that
related rules can be tracked together.

Actions:
* read      - fetch one label by id
* read_all  - list every label
* create    - create a label (name required, description optional)
* update    - update a label (id and name required)
* delete    - delete a label by id

Write actions require the server to permit writes for this tool.`

type ruleLabelsArgs struct {
	Action      string `json:"action"`
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func (h *handlers) ruleLabels(ctx context.Context, _ *mcp.CallToolRequest, args *ruleLabelsArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zia_rule_labels action=%q id=%d", call, args.Action, args.ID)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == 0 {
			return nil, nil, errors.New("read requires an id")
		}
		label, err := h.api.GetRuleLabel(ctx, args.ID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(label)
		return result, nil, err

	case "read_all":
		labels, err := h.api.ListRuleLabels(ctx)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(labels)
		return result, nil, err

	case "create":
		if !h.opts.WriteEnabled("zia_rule_labels") {
			return nil, nil, errors.New("zia_rule_labels is read-only on this server")
		}
		if args.Name == "" {
			return nil, nil, errors.New("create requires a name")
		}
		created, err := h.api.CreateRuleLabel(ctx, &rule_labels.RuleLabels{
			Name:        args.Name,
			Description: args.Description,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] created rule label %q (id=%d)", call, created.Name, created.ID)
		result, err := tools.JSONResult(created)
		return result, nil, err

	case "update":
		if !h.opts.WriteEnabled("zia_rule_labels") {
			return nil, nil, errors.New("zia_rule_labels is read-only on this server")
		}
		if args.ID == 0 || args.Name == "" {
			return nil, nil, errors.New("update requires an id and a name")
		}
		updated, err := h.api.UpdateRuleLabel(ctx, args.ID, &rule_labels.RuleLabels{
			ID:          args.ID,
			Name:        args.Name,
			Description: args.Description,
		})
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(updated)
		return result, nil, err

	case "delete":
		if !h.opts.WriteEnabled("zia_rule_labels") {
			return nil, nil, errors.New("zia_rule_labels is read-only on this server")
		}
		if args.ID == 0 {
			return nil, nil, errors.New("delete requires an id")
		}
		if err := h.api.DeleteRuleLabel(ctx, args.ID); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] deleted rule label id=%d", call, args.ID)
		return tools.TextResult("deleted"), nil, nil

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read, read_all, create, update or delete", args.Action)
	}
}
