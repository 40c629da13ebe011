//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package zia registers the Zscaler Internet Access tools: rule labels,
// locations, URL categories and configuration activation.
package zia

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/activation"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/location/locationmanagement"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/rule_labels"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zia/services/urlcategories"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

var logger = logging.GetLogger("tools.zia")

// API is the slice of the ZIA surface the handlers consume. Tests supply a
// fake; production wires the SDK adapter below.
type API interface {
	GetRuleLabel(ctx context.Context, id int) (*rule_labels.RuleLabels, error)
	ListRuleLabels(ctx context.Context) ([]rule_labels.RuleLabels, error)
	CreateRuleLabel(ctx context.Context, label *rule_labels.RuleLabels) (*rule_labels.RuleLabels, error)
	UpdateRuleLabel(ctx context.Context, id int, label *rule_labels.RuleLabels) (*rule_labels.RuleLabels, error)
	DeleteRuleLabel(ctx context.Context, id int) error

	GetLocation(ctx context.Context, id int) (*locationmanagement.Locations, error)
	ListLocations(ctx context.Context) ([]locationmanagement.Locations, error)

	GetURLCategory(ctx context.Context, id string) (*urlcategories.URLCategory, error)
	ListURLCategories(ctx context.Context) ([]urlcategories.URLCategory, error)

	ActivationStatus(ctx context.Context) (*activation.Activation, error)
	Activate(ctx context.Context) (*activation.Activation, error)
}

type sdkAPI struct {
	client *client.Client
}

func (a *sdkAPI) GetRuleLabel(ctx context.Context, id int) (*rule_labels.RuleLabels, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return rule_labels.Get(ctx, service, id)
}

func (a *sdkAPI) ListRuleLabels(ctx context.Context) ([]rule_labels.RuleLabels, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return rule_labels.GetAll(ctx, service)
}

func (a *sdkAPI) CreateRuleLabel(ctx context.Context, label *rule_labels.RuleLabels) (*rule_labels.RuleLabels, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	created, _, err := rule_labels.Create(ctx, service, label)
	return created, err
}

func (a *sdkAPI) UpdateRuleLabel(ctx context.Context, id int, label *rule_labels.RuleLabels) (*rule_labels.RuleLabels, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	updated, _, err := rule_labels.Update(ctx, service, id, label)
	return updated, err
}

func (a *sdkAPI) DeleteRuleLabel(ctx context.Context, id int) error {
	service, err := a.client.ZIAService()
	if err != nil {
		return err
	}
	_, err = rule_labels.Delete(ctx, service, id)
	return err
}

func (a *sdkAPI) GetLocation(ctx context.Context, id int) (*locationmanagement.Locations, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return locationmanagement.GetLocation(ctx, service, id)
}

func (a *sdkAPI) ListLocations(ctx context.Context) ([]locationmanagement.Locations, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return locationmanagement.GetAll(ctx, service)
}

func (a *sdkAPI) GetURLCategory(ctx context.Context, id string) (*urlcategories.URLCategory, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return urlcategories.Get(ctx, service, id)
}

func (a *sdkAPI) ListURLCategories(ctx context.Context) ([]urlcategories.URLCategory, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return urlcategories.GetAll(ctx, service, false, false)
}

func (a *sdkAPI) ActivationStatus(ctx context.Context) (*activation.Activation, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return activation.GetActivationStatus(ctx, service)
}

func (a *sdkAPI) Activate(ctx context.Context) (*activation.Activation, error) {
	service, err := a.client.ZIAService()
	if err != nil {
		return nil, err
	}
	return activation.CreateActivation(ctx, service, activation.Activation{Status: "ACTIVE"})
}

type handlers struct {
	api  API
	opts tools.Options
}

// Install registers the ZIA tools with the server, subject to opts.
// Tools that multiplex reads and writes behind an action argument are
// always registered when enabled; their write actions are rejected at
// call time when the write gate is closed.
func Install(s *mcp.Server, c *client.Client, opts tools.Options) {
	InstallWithAPI(s, &sdkAPI{client: c}, opts)
}

// InstallWithAPI is Install with a caller-supplied API, used by tests.
func InstallWithAPI(s *mcp.Server, api API, opts tools.Options) {
	h := &handlers{api: api, opts: opts}

	if opts.Enabled("zia_rule_labels") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zia_rule_labels",
			Description: ruleLabelsDescription,
		}, h.ruleLabels)
	}

	if opts.Enabled("zia_locations") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zia_locations",
			Description: locationsDescription,
		}, h.locations)
	}

	if opts.Enabled("zia_url_categories") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zia_url_categories",
			Description: urlCategoriesDescription,
		}, h.urlCategories)
	}

	if opts.Enabled("zia_activation") {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "zia_activation",
			Description: activationDescription,
		}, h.activation)
	}
}
