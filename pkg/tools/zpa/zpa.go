//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package zpa registers the Zscaler Private Access tools: application
// segments, segment groups and access policy rules.
//
// Policy rules are written through the v2 policy endpoint, which accepts
// grouped values and entry-value pairs, and read back through the v1
// endpoint, whose per-value operands are regrouped for presentation by the
// conditions package.
package zpa

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/applicationsegment"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/policysetcontroller"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/policysetcontrollerv2"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/segmentgroup"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

var logger = logging.GetLogger("tools.zpa")

// API is the slice of the ZPA surface the handlers consume.
type API interface {
	GetApplicationSegment(ctx context.Context, id string) (*applicationsegment.ApplicationSegmentResource, error)
	ListApplicationSegments(ctx context.Context) ([]applicationsegment.ApplicationSegmentResource, error)
	CreateApplicationSegment(ctx context.Context, segment applicationsegment.ApplicationSegmentResource) (*applicationsegment.ApplicationSegmentResource, error)
	UpdateApplicationSegment(ctx context.Context, id string, segment applicationsegment.ApplicationSegmentResource) error
	DeleteApplicationSegment(ctx context.Context, id string) error

	GetSegmentGroup(ctx context.Context, id string) (*segmentgroup.SegmentGroup, error)
	ListSegmentGroups(ctx context.Context) ([]segmentgroup.SegmentGroup, error)
	CreateSegmentGroup(ctx context.Context, group *segmentgroup.SegmentGroup) (*segmentgroup.SegmentGroup, error)
	UpdateSegmentGroup(ctx context.Context, id string, group *segmentgroup.SegmentGroup) error
	DeleteSegmentGroup(ctx context.Context, id string) error

	GetPolicySet(ctx context.Context, policyType string) (*policysetcontroller.PolicySet, error)
	GetPolicyRule(ctx context.Context, policySetID, ruleID string) (*policysetcontroller.PolicyRule, error)
	ListPolicyRules(ctx context.Context, policyType string) ([]policysetcontroller.PolicyRule, error)
	CreatePolicyRule(ctx context.Context, rule *policysetcontrollerv2.PolicyRule) (*policysetcontrollerv2.PolicyRule, error)
	UpdatePolicyRule(ctx context.Context, policySetID, ruleID string, rule *policysetcontrollerv2.PolicyRule) error
	DeletePolicyRule(ctx context.Context, policySetID, ruleID string) error
}

type sdkAPI struct {
	client *client.Client
}

func (a *sdkAPI) GetApplicationSegment(ctx context.Context, id string) (*applicationsegment.ApplicationSegmentResource, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	segment, _, err := applicationsegment.Get(ctx, service, id)
	return segment, err
}

func (a *sdkAPI) ListApplicationSegments(ctx context.Context) ([]applicationsegment.ApplicationSegmentResource, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	segments, _, err := applicationsegment.GetAll(ctx, service)
	return segments, err
}

func (a *sdkAPI) CreateApplicationSegment(ctx context.Context, segment applicationsegment.ApplicationSegmentResource) (*applicationsegment.ApplicationSegmentResource, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	created, _, err := applicationsegment.Create(ctx, service, segment)
	return created, err
}

func (a *sdkAPI) UpdateApplicationSegment(ctx context.Context, id string, segment applicationsegment.ApplicationSegmentResource) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = applicationsegment.Update(ctx, service, id, segment)
	return err
}

func (a *sdkAPI) DeleteApplicationSegment(ctx context.Context, id string) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = applicationsegment.Delete(ctx, service, id)
	return err
}

func (a *sdkAPI) GetSegmentGroup(ctx context.Context, id string) (*segmentgroup.SegmentGroup, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	group, _, err := segmentgroup.Get(ctx, service, id)
	return group, err
}

func (a *sdkAPI) ListSegmentGroups(ctx context.Context) ([]segmentgroup.SegmentGroup, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	groups, _, err := segmentgroup.GetAll(ctx, service)
	return groups, err
}

func (a *sdkAPI) CreateSegmentGroup(ctx context.Context, group *segmentgroup.SegmentGroup) (*segmentgroup.SegmentGroup, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	created, _, err := segmentgroup.Create(ctx, service, group)
	return created, err
}

func (a *sdkAPI) UpdateSegmentGroup(ctx context.Context, id string, group *segmentgroup.SegmentGroup) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = segmentgroup.Update(ctx, service, id, group)
	return err
}

func (a *sdkAPI) DeleteSegmentGroup(ctx context.Context, id string) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = segmentgroup.Delete(ctx, service, id)
	return err
}

func (a *sdkAPI) GetPolicySet(ctx context.Context, policyType string) (*policysetcontroller.PolicySet, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	set, _, err := policysetcontroller.GetByPolicyType(ctx, service, policyType)
	return set, err
}

func (a *sdkAPI) GetPolicyRule(ctx context.Context, policySetID, ruleID string) (*policysetcontroller.PolicyRule, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	rule, _, err := policysetcontroller.GetPolicyRule(ctx, service, policySetID, ruleID)
	return rule, err
}

func (a *sdkAPI) ListPolicyRules(ctx context.Context, policyType string) ([]policysetcontroller.PolicyRule, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	rules, _, err := policysetcontroller.GetAllByType(ctx, service, policyType)
	return rules, err
}

func (a *sdkAPI) CreatePolicyRule(ctx context.Context, rule *policysetcontrollerv2.PolicyRule) (*policysetcontrollerv2.PolicyRule, error) {
	service, err := a.client.ZPAService()
	if err != nil {
		return nil, err
	}
	created, _, err := policysetcontrollerv2.CreateRule(ctx, service, rule)
	return created, err
}

func (a *sdkAPI) UpdatePolicyRule(ctx context.Context, policySetID, ruleID string, rule *policysetcontrollerv2.PolicyRule) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = policysetcontrollerv2.UpdateRule(ctx, service, policySetID, ruleID, rule)
	return err
}

func (a *sdkAPI) DeletePolicyRule(ctx context.Context, policySetID, ruleID string) error {
	service, err := a.client.ZPAService()
	if err != nil {
		return err
	}
	_, err = policysetcontrollerv2.Delete(ctx, service, policySetID, ruleID)
	return err
}

type handlers struct {
	api  API
	opts tools.Options
}

// Install registers the ZPA tools with the server, subject to opts.
func Install(s *mcp.Server, c *client.Client, opts tools.Options) {
	InstallWithAPI(s, &sdkAPI{client: c}, opts)
}

// InstallWithAPI is Install with a caller-supplied API, used by tests.
func InstallWithAPI(s *mcp.Server, api API, opts tools.Options) {
	h := &handlers{api: api, opts: opts}

	if opts.Enabled("zpa_application_segments") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zpa_application_segments",
			Description: applicationSegmentsDescription,
		}, h.applicationSegments)
	}

	if opts.Enabled("zpa_segment_groups") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zpa_segment_groups",
			Description: segmentGroupsDescription,
		}, h.segmentGroups)
	}

	if opts.Enabled("zpa_access_policy") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zpa_access_policy",
			Description: accessPolicyDescription,
		}, h.accessPolicy)
	}
}
