//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zpa

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/applicationsegment"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/common"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const applicationSegmentsDescription = `Manages ZPA application segments.

An application segment defines the applications (by domain or IP) reachable
through ZPA, along with the TCP/UDP port ranges they listen on.

Actions:
* read      - fetch one segment by id
* read_all  - list every segment
* create    - create a segment (name, domain_names and segment_group_id
              required; tcp_ports/udp_ports are flat ["from","to",...] lists)
* update    - update a segment (id and name required)
* delete    - delete a segment by id

Write actions require the server to permit writes for this tool.`

type applicationSegmentsArgs struct {
	Action         string   `json:"action"`
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	DomainNames    []string `json:"domain_names,omitempty"`
	SegmentGroupID string   `json:"segment_group_id,omitempty"`
	TCPPorts       []string `json:"tcp_ports,omitempty"`
	UDPPorts       []string `json:"udp_ports,omitempty"`
	Enabled        *bool    `json:"enabled,omitempty"`
}

func (h *handlers) applicationSegments(ctx context.Context, _ *mcp.CallToolRequest, args *applicationSegmentsArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	logger.Debugf("[%s] zpa_application_segments action=%q id=%q", call, args.Action, args.ID)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.ID == "" {
			return nil, nil, errors.New("read requires an id")
		}
		segment, err := h.api.GetApplicationSegment(ctx, args.ID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(segment)
		return result, nil, err

	case "read_all":
		segments, err := h.api.ListApplicationSegments(ctx)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(segments)
		return result, nil, err

	case "create":
		if !h.opts.WriteEnabled("zpa_application_segments") {
			return nil, nil, errors.New("zpa_application_segments is read-only on this server")
		}
		if args.Name == "" || len(args.DomainNames) == 0 || args.SegmentGroupID == "" {
			return nil, nil, errors.New("create requires a name, domain_names and a segment_group_id")
		}
		segment, err := buildSegment(args)
		if err != nil {
			return nil, nil, err
		}
		created, err := h.api.CreateApplicationSegment(ctx, segment)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] created application segment %q (id=%s)", call, created.Name, created.ID)
		result, err := tools.JSONResult(created)
		return result, nil, err

	case "update":
		if !h.opts.WriteEnabled("zpa_application_segments") {
			return nil, nil, errors.New("zpa_application_segments is read-only on this server")
		}
		if args.ID == "" || args.Name == "" {
			return nil, nil, errors.New("update requires an id and a name")
		}
		segment, err := buildSegment(args)
		if err != nil {
			return nil, nil, err
		}
		segment.ID = args.ID
		if err := h.api.UpdateApplicationSegment(ctx, args.ID, segment); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] updated application segment id=%s", call, args.ID)
		return tools.TextResult("updated"), nil, nil

	case "delete":
		if !h.opts.WriteEnabled("zpa_application_segments") {
			return nil, nil, errors.New("zpa_application_segments is read-only on this server")
		}
		if args.ID == "" {
			return nil, nil, errors.New("delete requires an id")
		}
		if err := h.api.DeleteApplicationSegment(ctx, args.ID); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] deleted application segment id=%s", call, args.ID)
		return tools.TextResult("deleted"), nil, nil

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read, read_all, create, update or delete", args.Action)
	}
}

func buildSegment(args *applicationSegmentsArgs) (applicationsegment.ApplicationSegmentResource, error) {
	tcpRanges, err := portRanges(args.TCPPorts)
	if err != nil {
		return applicationsegment.ApplicationSegmentResource{}, errors.Wrap(err, "tcp_ports")
	}
	udpRanges, err := portRanges(args.UDPPorts)
	if err != nil {
		return applicationsegment.ApplicationSegmentResource{}, errors.Wrap(err, "udp_ports")
	}

	enabled := true
	if args.Enabled != nil {
		enabled = *args.Enabled
	}

	return applicationsegment.ApplicationSegmentResource{
		Name:            args.Name,
		Description:     args.Description,
		DomainNames:     args.DomainNames,
		SegmentGroupID:  args.SegmentGroupID,
		Enabled:         enabled,
		TCPAppPortRange: tcpRanges,
		UDPAppPortRange: udpRanges,
		HealthReporting: "ON_ACCESS",
		BypassType:      "NEVER",
		IcmpAccessType:  "PING_TRACEROUTING",
		IsCnameEnabled:  true,
	}, nil
}

// portRanges converts a flat ["from", "to", ...] list into SDK port ranges.
func portRanges(ports []string) ([]common.NetworkPorts, error) {
	if len(ports)%2 != 0 {
		return nil, errors.Errorf("expected an even number of port values, got %d", len(ports))
	}
	ranges := make([]common.NetworkPorts, 0, len(ports)/2)
	for i := 0; i < len(ports); i += 2 {
		ranges = append(ranges, common.NetworkPorts{From: ports[i], To: ports[i+1]})
	}
	return ranges, nil
}
