//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package zdx registers the Zscaler Digital Experience tools. ZDX is a
// monitoring product, so every tool here is read-only; scores and metrics
// default to the trailing two hours when no window is given.
package zdx

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zdx/services/reports/applications"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zdx/services/common"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zdx/services/reports/devices"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

var logger = logging.GetLogger("tools.zdx")

// API is the slice of the ZDX surface the handlers consume.
type API interface {
	GetApp(ctx context.Context, appID string, filters common.GetFromToFilters) (*applications.Apps, error)
	ListApps(ctx context.Context, filters common.GetFromToFilters) ([]applications.Apps, error)
	GetDevice(ctx context.Context, deviceID int, filters common.GetFromToFilters) (*devices.DeviceDetail, error)
	ListDevices(ctx context.Context, filters devices.GetDevicesFilters) ([]devices.DeviceDetail, error)
}

type sdkAPI struct {
	client *client.Client
}

func (a *sdkAPI) service() (*zscaler.Service, error) {
	return a.client.ZDXService()
}

func (a *sdkAPI) GetApp(ctx context.Context, appID string, filters common.GetFromToFilters) (*applications.Apps, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	app, _, err := applications.GetApp(ctx, service, appID, filters)
	return app, err
}

func (a *sdkAPI) ListApps(ctx context.Context, filters common.GetFromToFilters) ([]applications.Apps, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	apps, _, err := applications.GetAllApps(ctx, service, filters)
	return apps, err
}

func (a *sdkAPI) GetDevice(ctx context.Context, deviceID int, filters common.GetFromToFilters) (*devices.DeviceDetail, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	device, _, err := devices.GetDevice(ctx, service, strconv.Itoa(deviceID))
	return device, err
}

func (a *sdkAPI) ListDevices(ctx context.Context, filters devices.GetDevicesFilters) ([]devices.DeviceDetail, error) {
	service, err := a.service()
	if err != nil {
		return nil, err
	}
	list, _, err := devices.GetAllDevices(ctx, service, filters)
	return list, err
}

type handlers struct {
	api API
}

// Install registers the ZDX tools with the server, subject to opts.
func Install(s *mcp.Server, c *client.Client, opts tools.Options) {
	InstallWithAPI(s, &sdkAPI{client: c}, opts)
}

// InstallWithAPI is Install with a caller-supplied API, used by tests.
func InstallWithAPI(s *mcp.Server, api API, opts tools.Options) {
	h := &handlers{api: api}

	if opts.Enabled("zdx_applications") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zdx_applications",
			Description: applicationsDescription,
		}, h.applications)
	}

	if opts.Enabled("zdx_devices") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zdx_devices",
			Description: devicesDescription,
		}, h.devices)
	}
}

const applicationsDescription = `Reads ZDX application experience scores.

Actions:
* read      - fetch one application by id, with its current ZDX score
* read_all  - list every monitored application

since_hours bounds the score window (default 2, max 336).`

type applicationsArgs struct {
	Action     string `json:"action"`
	ID         string `json:"id,omitempty"`
	SinceHours int    `json:"since_hours,omitempty"`
}

const devicesDescription = `Reads ZDX device inventory and health.

Actions:
* read      - fetch one device by its numeric id
* read_all  - list devices, optionally filtered by user emails

since_hours bounds the reporting window (default 2, max 336).`

type devicesArgs struct {
	Action     string   `json:"action"`
	ID         int      `json:"id,omitempty"`
	Emails     []string `json:"emails,omitempty"`
	SinceHours int      `json:"since_hours,omitempty"`
}

// window converts a since_hours argument into the epoch-seconds filter the
// ZDX API expects.
func window(sinceHours int) (common.GetFromToFilters, error) {
	if sinceHours < 0 || sinceHours > 336 {
		return common.GetFromToFilters{}, errors.Errorf("since_hours must be between 0 and 336, got %d", sinceHours)
	}
	if sinceHours == 0 {
		sinceHours = 2
	}
	now := time.Now()
	return common.GetFromToFilters{
		From: int(now.Add(-time.Duration(sinceHours) * time.Hour).Unix()),
		To:   int(now.Unix()),
	}, nil
}

func (h *handlers) applications(ctx context.Context, _ *mcp.CallToolRequest, args *applicationsArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zdx_applications action=%q id=%q since_hours=%d", call, args.Action, args.ID, args.SinceHours)

	filters, err := window(args.SinceHours)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == "" {
			return nil, nil, errors.New("read requires an id")
		}
		app, err := h.api.GetApp(ctx, args.ID, filters)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(app)
		return result, nil, err

	case "read_all":
		apps, err := h.api.ListApps(ctx, filters)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(apps)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read or read_all", args.Action)
	}
}

func (h *handlers) devices(ctx context.Context, _ *mcp.CallToolRequest, args *devicesArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zdx_devices action=%q id=%d since_hours=%d", call, args.Action, args.ID, args.SinceHours)

	filters, err := window(args.SinceHours)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == 0 {
			return nil, nil, errors.New("read requires an id")
		}
		device, err := h.api.GetDevice(ctx, args.ID, filters)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(device)
		return result, nil, err

	case "read_all":
		list, err := h.api.ListDevices(ctx, devices.GetDevicesFilters{
			GetFromToFilters: filters,
			Emails:           args.Emails,
		})
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(list)
		return result, nil, err

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read or read_all", args.Action)
	}
}
