//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zpa

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/policysetcontroller"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zpa/services/policysetcontrollerv2"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/conditions"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

const accessPolicyDescription = `Manages ZPA access policy rules.

Actions:
* read      - fetch one rule by rule_id
* read_all  - list every rule of the policy type
* create    - create a rule (name required)
* update    - update a rule (rule_id and name required)
* delete    - delete a rule by rule_id

The conditions argument accepts any of:
* a JSON string encoding one of the shapes below
* a nested list, e.g. [["app", ["111", "222"]], ["OR", ["saml", [["id", "x"]]]]]
* a list of operand objects, e.g.
  [{"operator": "OR", "operands": [{"objectType": "APP", "values": ["111"]}]}]

Rules read back report their conditions grouped by operator and object
type, with value lists deduplicated and sorted.

policy_type defaults to ACCESS_POLICY. Write actions require the server to
permit writes for this tool.`

type accessPolicyArgs struct {
	Action      string      `json:"action"`
	RuleID      string      `json:"rule_id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	RuleAction  string      `json:"rule_action,omitempty"`
	PolicyType  string      `json:"policy_type,omitempty"`
	CustomMsg   string      `json:"custom_msg,omitempty"`
	Conditions  interface{} `json:"conditions,omitempty"`
}

// ruleView is the presentation shape for rules read back from the API:
// the raw rule metadata plus regrouped conditions.
type ruleView struct {
	ID          string                         `json:"id"`
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Action      string                         `json:"action"`
	PolicySetID string                         `json:"policy_set_id,omitempty"`
	Conditions  []conditions.ResponseCondition `json:"conditions"`
}

func (h *handlers) accessPolicy(ctx context.Context, _ *mcp.CallToolRequest, args *accessPolicyArgs) (*mcp.CallToolResult, any, error) {
	call := tools.NewCallID()
	policyType := strings.ToUpper(args.PolicyType)
	if policyType == "" {
		policyType = "ACCESS_POLICY"
	}
	logger.Debugf("[%s] zpa_access_policy action=%q rule_id=%q policy_type=%s", call, args.Action, args.RuleID, policyType)

	switch strings.ToLower(args.Action) {
	case "read":
		if args.RuleID == "" {
			return nil, nil, errors.New("read requires a rule_id")
		}
		set, err := h.api.GetPolicySet(ctx, policyType)
		if err != nil {
			return nil, nil, err
		}
		rule, err := h.api.GetPolicyRule(ctx, set.ID, args.RuleID)
		if err != nil {
			return nil, nil, err
		}
		result, err := tools.JSONResult(toRuleView(rule))
		return result, nil, err

	case "read_all":
		rules, err := h.api.ListPolicyRules(ctx, policyType)
		if err != nil {
			return nil, nil, err
		}
		views := make([]ruleView, 0, len(rules))
		for i := range rules {
			views = append(views, toRuleView(&rules[i]))
		}
		result, err := tools.JSONResult(views)
		return result, nil, err

	case "create":
		if !h.opts.WriteEnabled("zpa_access_policy") {
			return nil, nil, errors.New("zpa_access_policy is read-only on this server")
		}
		if args.Name == "" {
			return nil, nil, errors.New("create requires a name")
		}
		rule, err := h.buildRule(ctx, call, policyType, args)
		if err != nil {
			return nil, nil, err
		}
		created, err := h.api.CreatePolicyRule(ctx, rule)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] created policy rule %q (id=%s)", call, created.Name, created.ID)
		result, err := tools.JSONResult(created)
		return result, nil, err

	case "update":
		if !h.opts.WriteEnabled("zpa_access_policy") {
			return nil, nil, errors.New("zpa_access_policy is read-only on this server")
		}
		if args.RuleID == "" || args.Name == "" {
			return nil, nil, errors.New("update requires a rule_id and a name")
		}
		rule, err := h.buildRule(ctx, call, policyType, args)
		if err != nil {
			return nil, nil, err
		}
		rule.ID = args.RuleID
		if err := h.api.UpdatePolicyRule(ctx, rule.PolicySetID, args.RuleID, rule); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] updated policy rule id=%s", call, args.RuleID)
		return tools.TextResult("updated"), nil, nil

	case "delete":
		if !h.opts.WriteEnabled("zpa_access_policy") {
			return nil, nil, errors.New("zpa_access_policy is read-only on this server")
		}
		if args.RuleID == "" {
			return nil, nil, errors.New("delete requires a rule_id")
		}
		set, err := h.api.GetPolicySet(ctx, policyType)
		if err != nil {
			return nil, nil, err
		}
		if err := h.api.DeletePolicyRule(ctx, set.ID, args.RuleID); err != nil {
			return nil, nil, err
		}
		logger.Infof("[%s] deleted policy rule id=%s", call, args.RuleID)
		return tools.TextResult("deleted"), nil, nil

	default:
		return nil, nil, errors.Errorf("unknown action %q: expected read, read_all, create, update or delete", args.Action)
	}
}

// buildRule assembles the v2 rule payload for create and update, running
// the conditions argument through the converter.
func (h *handlers) buildRule(ctx context.Context, call, policyType string, args *accessPolicyArgs) (*policysetcontrollerv2.PolicyRule, error) {
	set, err := h.api.GetPolicySet(ctx, policyType)
	if err != nil {
		return nil, err
	}

	normalized, err := conditions.Normalize(args.Conditions)
	if err != nil {
		return nil, err
	}

	ruleAction := strings.ToUpper(args.RuleAction)
	if ruleAction == "" {
		ruleAction = "ALLOW"
	}

	return &policysetcontrollerv2.PolicyRule{
		Name:        args.Name,
		Description: args.Description,
		Action:      ruleAction,
		CustomMsg:   args.CustomMsg,
		PolicySetID: set.ID,
		Conditions:  toV2Conditions(call, normalized),
	}, nil
}

// toV2Conditions maps canonical conditions onto the v2 API payload.
// Pass-through entries have no defined wire shape and are dropped with a
// warning.
func toV2Conditions(call string, conds []conditions.SDKCondition) []policysetcontrollerv2.PolicyRuleResourceConditions {
	out := make([]policysetcontrollerv2.PolicyRuleResourceConditions, 0, len(conds))

	for _, c := range conds {
		operand := policysetcontrollerv2.PolicyRuleResourceOperands{
			ObjectType: strings.ToUpper(c.ObjectType),
		}

		switch {
		case len(c.Values) > 0:
			operand.Values = c.Values
		case len(c.Entries) > 0:
			for _, e := range c.Entries {
				operand.EntryValuesLHSRHS = append(operand.EntryValuesLHSRHS,
					policysetcontrollerv2.OperandsResourceLHSRHSValue{LHS: e.LHS, RHS: e.RHS})
			}
		case c.LHS != "" || c.RHS != "":
			operand.EntryValuesLHSRHS = []policysetcontrollerv2.OperandsResourceLHSRHSValue{
				{LHS: c.LHS, RHS: c.RHS},
			}
		default:
			logger.Warnf("[%s] dropping condition entry with no mappable payload (object type %q)", call, c.ObjectType)
			continue
		}

		out = append(out, policysetcontrollerv2.PolicyRuleResourceConditions{
			Operator: c.Operator,
			Operands: []policysetcontrollerv2.PolicyRuleResourceOperands{operand},
		})
	}

	return out
}

// toRuleView converts a v1 rule into the presentation shape, regrouping its
// per-value operands.
func toRuleView(rule *policysetcontroller.PolicyRule) ruleView {
	legacy := make([]conditions.Condition, 0, len(rule.Conditions))
	for _, c := range rule.Conditions {
		cond := conditions.Condition{Operator: c.Operator}
		for _, op := range c.Operands {
			cond.Operands = append(cond.Operands, conditions.Operand{
				ObjectType: op.ObjectType,
				LHS:        op.LHS,
				RHS:        op.RHS,
			})
		}
		legacy = append(legacy, cond)
	}

	return ruleView{
		ID:          rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Action:      rule.Action,
		PolicySetID: rule.PolicySetID,
		Conditions:  conditions.Denormalize(legacy),
	}
}
