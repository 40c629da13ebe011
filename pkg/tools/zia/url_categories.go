//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zia

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/urlcategories"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const urlCategoriesDescription = `Reads ZIA URL categories.

Covers both the predefined categories and any custom categories defined in
the tenant. This tool is read-only.

Actions:
* read      - fetch one category by its id (e.g. "CUSTOM_01", "SOCIAL_NETWORKING")
* read_all  - list every category; set custom_only to true to list only
              custom categories`

type urlCategoriesArgs struct {
	Action     string `json:"action"`
	ID         string `json:"id,omitempty"`
	CustomOnly bool   `json:"custom_only,omitempty"`
}

func (h *handlers) urlCategories(ctx context.Context, _ *mcp.CallToolRequest, args *urlCategoriesArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zia_url_categories action=%q id=%q custom_only=%t", call, args.Action, args.ID, args.CustomOnly)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == "" {
			return nil, nil, errors.New("read requires an id")
		}
		category, err := h.api.GetURLCategory(ctx, args.ID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(category)
		return result, nil, err

	case "read_all":
		categories, err := h.api.ListURLCategories(ctx)
		if err != nil {
			return nil, nil, err
		}
		if args.CustomOnly {
			custom := make([]urlcategories.URLCategory, 0, len(categories))
			for _, c := range categories {
				if c.CustomCategory {
					custom = append(custom, c)
				}
			}
			categories = custom
		}
		result, err := tools.JSONResult(categories)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read or read_all", args.Action)
	}
}
