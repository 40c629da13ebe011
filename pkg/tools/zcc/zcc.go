//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package zcc registers the Zscaler Client Connector tools: device
// inventory plus a gated force-remove action for decommissioning enrolled
// devices.
package zcc

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zcc/services/devices"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zcc/services/remove_devices"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

var logger = logging.GetLogger("tools.zcc")

// API is the slice of the ZCC surface the handlers consume.
type API interface {
	ListDevices(ctx context.Context, username, osType string) ([]devices.GetDevices, error)
	ForceRemoveDevices(ctx context.Context, udids []string, osType int) (*remove_devices.RemoveDevicesResponse, error)
}

type sdkAPI struct {
	client *client.Client
}

func (a *sdkAPI) service() (*zscaler.Service, error) {
	return a.client.ZCCService()
}

func (a *sdkAPI) ListDevices(ctx context.Context, username, osType string) ([]devices.GetDevices, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	return devices.GetAll(ctx, service, username, osType)
}

func (a *sdkAPI) ForceRemoveDevices(ctx context.Context, udids []string, osType int) (*remove_devices.RemoveDevicesResponse, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	return remove_devices.ForceRemoveDevices(ctx, service, remove_devices.RemoveDevicesRequest{
		Udids:  udids,
		OsType: osType,
	}, 0)
}

type handlers struct {
	api  API
	opts tools.Options
}

// Install registers the ZCC tools with the server, subject to opts.
func Install(s *mcp.Server, c *client.Client, opts tools.Options) {
	InstallWithAPI(s, &sdkAPI{client: c}, opts)
}

// InstallWithAPI is Install with a caller-supplied API, used by tests.
func InstallWithAPI(s *mcp.Server, api API, opts tools.Options) {
	h := &handlers{api: api, opts: opts}

	if opts.Enabled("zcc_devices") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zcc_devices",
			Description: devicesDescription,
		}, h.devices)
	}
}

const devicesDescription = `Manages Zscaler Client Connector enrolled devices.

Actions:
* read_all      - list enrolled devices, optionally filtered by username
                  and/or os_type (ios, android, windows, macos, linux)
* force_remove  - unenroll devices by udid; this wipes the device's Zscaler
                  registration and is a write action

Write actions require the server to permit writes for this tool.`

type devicesArgs struct {
	Action   string   `json:"action"`
	Username string   `json:"username,omitempty"`
	OSType   string   `json:"os_type,omitempty"`
	UDIDs    []string `json:"udids,omitempty"`
}

// osTypes maps the friendly names accepted at the tool boundary onto the
// numeric codes the ZCC API uses.
var osTypes = map[string]int{
	"ios":     1,
	"android": 2,
	"windows": 3,
	"macos":   4,
	"linux":   5,
}

func (h *handlers) devices(ctx context.Context, _ *mcp.CallToolRequest, args *devicesArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zcc_devices action=%q username=%q os_type=%q", call, args.Action, args.Username, args.OSType)

	osType := strings.ToLower(args.OSType)
	if osType != "" {
		if _, ok := osTypes[osType]; !ok {
			return nil, nil, errors.Errorf("unknown os_type %q: expected ios, android, windows, macos or linux", args.OSType)
		}
	}

	switch strings.ToLower(args.Action) {
	case "read_all":
		list, err := h.api.ListDevices(ctx, args.Username, osType)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(list)
		return result, nil, err

	case "force_remove":
		if !h.opts.WriteEnabled("zcc_devices") {
			return nil, nil, errors.New("zcc_devices is read-only on this server")
		}
		if len(args.UDIDs) == 0 {
			return nil, nil, errors.New("force_remove requires at least one udid")
		}
		removed, err := h.api.ForceRemoveDevices(ctx, args.UDIDs, osTypes[osType])
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] force-removed %d device(s)", call, len(args.UDIDs))
		result, err := tools.JSONResult(removed)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read_all or force_remove", args.Action)
	}
}
