//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package conditions converts ZPA policy-rule conditions between the
// heterogeneous representations accepted at the tool boundary and the
// canonical form consumed by the SDK, and regroups v1-style API responses
// into the stable v2 shape returned to MCP callers.
//
// # Accepted input shapes
//
// [Normalize] accepts three shapes:
//
//   - raw JSON text that parses into one of the shapes below
//   - the native nested form: a list of entries, each either a bare
//     ["object_type", values] pair or an operator-wrapped
//     ["AND"|"OR", ["object_type", values]] pair
//   - the legacy operand form: a list of objects carrying an operator and
//     a list of operands ({objectType|object_type, values?, entryValues|
//     entry_values?, lhs?, rhs?})
//
// Both spellings of aliased operand keys are mapped onto one canonical
// field immediately after parsing; nothing downstream of the decode step
// branches on key casing.
//
// # Best-effort policy
//
// Entries that are individually malformed (missing object type, entry
// values without both lhs and rhs) are dropped silently rather than
// failing the whole conversion: a condition list missing one clause is
// more useful to the caller than an error. Only two failures are
// reported: [InvalidFormatError] for unparseable JSON and
// [UnsupportedFormatError] for values of an unrecognized shape.
//
// # Platform invariant
//
// The "platform" object type is never wrapped with an operator, in either
// direction. The comparison is case-insensitive throughout.
package conditions

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
)

// Object types whose operands carry flat value lists.
var valueObjectTypes = map[string]bool{
	"APP":         true,
	"APP_GROUP":   true,
	"CLIENT_TYPE": true,
	"MACHINE_GRP": true,
}

// Object types whose operands carry lhs/rhs entry pairs.
var entryObjectTypes = map[string]bool{
	"COUNTRY_CODE":    true,
	"POSTURE":         true,
	"TRUSTED_NETWORK": true,
	"SAML":            true,
	"SCIM":            true,
	"SCIM_GROUP":      true,
	"PLATFORM":        true,
}

// EntryValue pairs an identifier (lhs) with a sub-value (rhs), e.g. a SCIM
// group ID with its value.
type EntryValue struct {
	LHS string `json:"lhs"`
	RHS string `json:"rhs"`
}

// SDKCondition is the canonical condition consumed by the policy API
// client. Exactly one payload group is populated:
//
//   - Values: a value-style condition (object type plus value list)
//   - Entries: an entry-style condition (object type plus lhs/rhs pairs)
//   - LHS/RHS: a single legacy operand carried directly
//   - Raw: an unrecognized native entry passed through unchanged
//
// Operator is empty for bare conditions, including every "platform"
// condition.
type SDKCondition struct {
	Operator   string
	ObjectType string
	Values     []string
	Entries    []EntryValue
	LHS        string
	RHS        string
	Raw        interface{}
}

// ResponseOperand is one operand in the grouped v2 response shape.
type ResponseOperand struct {
	ObjectType  string       `json:"object_type"`
	Values      []string     `json:"values,omitempty"`
	EntryValues []EntryValue `json:"entry_values,omitempty"`
}

// ResponseCondition is one grouped condition in the v2 response shape. The
// operator is omitted for PLATFORM conditions.
type ResponseCondition struct {
	Operator string            `json:"operator,omitempty"`
	Operands []ResponseOperand `json:"operands"`
}

// Condition is a v1-style rule condition as returned by the policy API.
type Condition struct {
	Operator string    `json:"operator,omitempty"`
	Operands []Operand `json:"operands,omitempty"`
}

// Operand is one unit within a v1-style condition.
type Operand struct {
	ObjectType string `json:"objectType,omitempty"`
	LHS        string `json:"lhs,omitempty"`
	RHS        string `json:"rhs,omitempty"`
}

// Normalize converts a conditions value received from a tool call into the
// canonical form. A nil or empty input yields an empty slice. Textual input
// is parsed as JSON first; a parse failure returns [InvalidFormatError].
// Values that match neither accepted shape return [UnsupportedFormatError].
func Normalize(input interface{}) ([]SDKCondition, error) {
	switch v := input.(type) {
	case nil:
		return []SDKCondition{}, nil
	case string:
		if v == "" {
			return []SDKCondition{}, nil
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return nil, &InvalidFormatError{Err: err}
		}
		return Normalize(parsed)
	case []SDKCondition:
		// already canonical, but still copied: Normalize never returns
		// anything aliasing caller-owned data
		return deepcopy.Copy(v).([]SDKCondition), nil
	case []interface{}:
		if len(v) == 0 {
			return []SDKCondition{}, nil
		}
		switch v[0].(type) {
		case []interface{}:
			return normalizeNative(v), nil
		case map[string]interface{}:
			return normalizeLegacy(v), nil
		}
		return nil, &UnsupportedFormatError{Value: v[0]}
	}
	return nil, &UnsupportedFormatError{Value: input}
}

// normalizeNative handles the nested list form. Entries that do not match a
// recognized shape are deep-copied into the output untouched so that the
// result never aliases caller-owned data.
func normalizeNative(entries []interface{}) []SDKCondition {
	out := make([]SDKCondition, 0, len(entries))

	for _, raw := range entries {
		entry, ok := raw.([]interface{})
		if !ok || len(entry) != 2 {
			out = append(out, SDKCondition{Raw: deepcopy.Copy(raw)})
			continue
		}

		if op, ok := entry[0].(string); ok && (op == "AND" || op == "OR") {
			inner, ok := entry[1].([]interface{})
			if !ok || len(inner) != 2 {
				out = append(out, SDKCondition{Raw: deepcopy.Copy(raw)})
				continue
			}
			cond := buildCondition(inner[0], inner[1])
			if !strings.EqualFold(cond.ObjectType, "platform") {
				cond.Operator = op
			}
			out = append(out, cond)
			continue
		}

		out = append(out, buildCondition(entry[0], entry[1]))
	}

	return out
}

// buildCondition assembles a bare condition from an object type and its
// values, flattening one level of singleton wrapping and classifying the
// values as either a flat list or lhs/rhs pairs.
func buildCondition(objectType, values interface{}) SDKCondition {
	cond := SDKCondition{ObjectType: stringify(objectType)}

	list, ok := values.([]interface{})
	if !ok {
		cond.Values = []string{stringify(values)}
		return cond
	}
	list = flattenSingleton(list)

	if pairs, ok := asEntryPairs(list); ok {
		cond.Entries = pairs
	} else {
		cond.Values = stringifyAll(list)
	}
	return cond
}

// flattenSingleton unwraps values of the shape [[pair, pair, ...]] into
// [pair, pair, ...].
func flattenSingleton(values []interface{}) []interface{} {
	if len(values) != 1 {
		return values
	}
	inner, ok := values[0].([]interface{})
	if !ok {
		return values
	}
	if _, ok := asEntryPairs(inner); !ok {
		return values
	}
	return inner
}

// asEntryPairs interprets values as a non-empty list of 2-element pairs.
func asEntryPairs(values []interface{}) ([]EntryValue, bool) {
	if len(values) == 0 {
		return nil, false
	}
	pairs := make([]EntryValue, 0, len(values))
	for _, v := range values {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, false
		}
		pairs = append(pairs, EntryValue{LHS: stringify(pair[0]), RHS: stringify(pair[1])})
	}
	return pairs, true
}

// normalizeLegacy handles the legacy operand form. Operands without a
// resolvable object type are skipped.
func normalizeLegacy(entries []interface{}) []SDKCondition {
	out := make([]SDKCondition, 0, len(entries))

	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		operator := "AND"
		if op := stringify(entry["operator"]); op != "" {
			operator = strings.ToUpper(op)
		}

		operands, _ := entry["operands"].([]interface{})
		for _, rawOperand := range operands {
			operand, ok := rawOperand.(map[string]interface{})
			if !ok {
				continue
			}
			if cond, ok := normalizeOperand(operator, operand); ok {
				out = append(out, cond)
			}
		}
	}

	return out
}

func normalizeOperand(operator string, operand map[string]interface{}) (SDKCondition, bool) {
	rawType, _ := aliased(operand, "objectType", "object_type")
	objectType := strings.ToLower(stringify(rawType))
	if objectType == "" {
		return SDKCondition{}, false
	}

	if values, ok := operand["values"].([]interface{}); ok && len(values) > 0 {
		return SDKCondition{ObjectType: objectType, Values: stringifyAll(values)}, true
	}

	if entryValues, ok := aliased(operand, "entryValues", "entry_values"); ok {
		entries := coerceEntryList(entryValues)
		flattened := make([]EntryValue, 0, len(entries))
		for _, ev := range entries {
			lhs, hasLHS := ev["lhs"]
			rhs, hasRHS := ev["rhs"]
			if !hasLHS || !hasRHS {
				continue
			}
			flattened = append(flattened, EntryValue{LHS: stringify(lhs), RHS: stringify(rhs)})
		}
		cond := SDKCondition{ObjectType: objectType, Entries: flattened}
		if !strings.EqualFold(objectType, "platform") {
			cond.Operator = operator
		}
		return cond, true
	}

	lhs, hasLHS := operand["lhs"]
	rhs, hasRHS := operand["rhs"]
	if hasLHS && hasRHS {
		return SDKCondition{ObjectType: objectType, LHS: stringify(lhs), RHS: stringify(rhs)}, true
	}

	return SDKCondition{}, false
}

// aliased resolves a value present under either the camelCase or the
// snake_case spelling of a key.
func aliased(m map[string]interface{}, camel, snake string) (interface{}, bool) {
	if v, ok := m[camel]; ok {
		return v, true
	}
	v, ok := m[snake]
	return v, ok
}

// coerceEntryList accepts either a single entry-value object or a list of
// them, returning a uniform list.
func coerceEntryList(v interface{}) []map[string]interface{} {
	switch ev := v.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{ev}
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(ev))
		for _, item := range ev {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// Denormalize regroups v1-style conditions into the v2 response shape.
//
// Operands are partitioned by (operator, object type): value-style object
// types accumulate rhs values, which are deduplicated and sorted; entry-style
// object types accumulate lhs/rhs pairs in encounter order. Value groups are
// emitted before entry groups, each in first-encounter order. PLATFORM
// groups omit the operator. Operands whose object type is empty, or which
// lack the fields their group requires, are skipped.
func Denormalize(conds []Condition) []ResponseCondition {
	type groupKey struct {
		operator   string
		objectType string
	}

	valueGroups := make(map[groupKey][]string)
	entryGroups := make(map[groupKey][]EntryValue)
	var valueOrder, entryOrder []groupKey

	for _, cond := range conds {
		operator := strings.ToUpper(cond.Operator)
		for _, operand := range cond.Operands {
			objectType := strings.ToUpper(operand.ObjectType)
			if objectType == "" {
				continue
			}
			key := groupKey{operator: operator, objectType: objectType}

			switch {
			case valueObjectTypes[objectType]:
				if operand.RHS == "" {
					continue
				}
				if _, seen := valueGroups[key]; !seen {
					valueOrder = append(valueOrder, key)
				}
				valueGroups[key] = append(valueGroups[key], operand.RHS)
			case entryObjectTypes[objectType]:
				if operand.LHS == "" || operand.RHS == "" {
					continue
				}
				if _, seen := entryGroups[key]; !seen {
					entryOrder = append(entryOrder, key)
				}
				entryGroups[key] = append(entryGroups[key], EntryValue{LHS: operand.LHS, RHS: operand.RHS})
			}
		}
	}

	out := make([]ResponseCondition, 0, len(valueOrder)+len(entryOrder))

	for _, key := range valueOrder {
		out = append(out, ResponseCondition{
			Operator: key.operator,
			Operands: []ResponseOperand{{
				ObjectType: key.objectType,
				Values:     sortedUnique(valueGroups[key]),
			}},
		})
	}

	for _, key := range entryOrder {
		cond := ResponseCondition{
			Operands: []ResponseOperand{{
				ObjectType:  key.objectType,
				EntryValues: entryGroups[key],
			}},
		}
		if key.objectType != "PLATFORM" {
			cond.Operator = key.operator
		}
		out = append(out, cond)
	}

	return out
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		// JSON numbers decode as float64; render integers without a
		// fractional part.
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func stringifyAll(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, stringify(v))
	}
	return out
}
