//
//  Copyright © Zscaler Inc. All rights reserved.
//

package conditions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyInputs(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"nil", nil},
		{"empty string", ""},
		{"empty list", []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Empty(t, out)
			assert.NotNil(t, out)
		})
	}
}

func TestNormalize_NativeValueCondition(t *testing.T) {
	input := []interface{}{
		[]interface{}{"app", []interface{}{"111", "222"}},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Operator)
	assert.Equal(t, "app", out[0].ObjectType)
	assert.Equal(t, []string{"111", "222"}, out[0].Values)
}

func TestNormalize_NativeOperatorWrapped(t *testing.T) {
	input := []interface{}{
		[]interface{}{"AND", []interface{}{"app_group", []interface{}{"9"}}},
		[]interface{}{"OR", []interface{}{"client_type", []interface{}{"zpn_client_type_exporter"}}},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "AND", out[0].Operator)
	assert.Equal(t, "app_group", out[0].ObjectType)
	assert.Equal(t, []string{"9"}, out[0].Values)
	assert.Equal(t, "OR", out[1].Operator)
}

func TestNormalize_PlatformOperatorDropped(t *testing.T) {
	// An operator-wrapped platform entry normalizes to a bare pair.
	input := []interface{}{
		[]interface{}{"AND", []interface{}{"platform", []interface{}{
			[]interface{}{"windows", "true"},
			[]interface{}{"mac", "true"},
		}}},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Operator)
	assert.Equal(t, "platform", out[0].ObjectType)
	assert.Equal(t, []EntryValue{
		{LHS: "windows", RHS: "true"},
		{LHS: "mac", RHS: "true"},
	}, out[0].Entries)
}

func TestNormalize_FlatteningIdempotence(t *testing.T) {
	wrapped := []interface{}{
		[]interface{}{"app_group", []interface{}{
			[]interface{}{[]interface{}{"a", "b"}},
		}},
	}
	flat := []interface{}{
		[]interface{}{"app_group", []interface{}{
			[]interface{}{"a", "b"},
		}},
	}

	fromWrapped, err := Normalize(wrapped)
	require.NoError(t, err)
	fromFlat, err := Normalize(flat)
	require.NoError(t, err)

	assert.Equal(t, fromFlat, fromWrapped)
	require.Len(t, fromFlat, 1)
	assert.Equal(t, []EntryValue{{LHS: "a", RHS: "b"}}, fromFlat[0].Entries)
}

func TestNormalize_JSONStringEquivalence(t *testing.T) {
	native := []interface{}{
		[]interface{}{"AND", []interface{}{"posture", []interface{}{
			[]interface{}{"udid-1", "true"},
		}}},
		[]interface{}{"app", []interface{}{"111"}},
	}

	text, err := json.Marshal(native)
	require.NoError(t, err)

	fromText, err := Normalize(string(text))
	require.NoError(t, err)
	fromValue, err := Normalize(native)
	require.NoError(t, err)

	assert.Equal(t, fromValue, fromText)
}

func TestNormalize_MalformedJSON(t *testing.T) {
	_, err := Normalize("{not valid")

	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)
	assert.NotNil(t, invalid.Err)
	assert.Contains(t, err.Error(), "invalid conditions format")
}

func TestNormalize_UnsupportedType(t *testing.T) {
	_, err := Normalize(42)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "int")
}

func TestNormalize_UnsupportedElementType(t *testing.T) {
	_, err := Normalize([]interface{}{"just-a-string"})

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "string")
}

func TestNormalize_PassThroughEntry(t *testing.T) {
	// Entries that are sequences but not 2-element pairs pass through
	// unchanged, as a fresh copy.
	odd := []interface{}{"a", "b", "c"}
	input := []interface{}{
		[]interface{}{"app", []interface{}{"1"}},
		odd,
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, odd, out[1].Raw)

	// Mutating the original must not affect the normalized output.
	odd[0] = "mutated"
	assert.Equal(t, "a", out[1].Raw.([]interface{})[0])
}

func TestNormalize_LegacyValues(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{
			"operator": "or",
			"operands": []interface{}{
				map[string]interface{}{
					"objectType": "APP",
					"values":     []interface{}{"111", "222"},
				},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	// Value operands are emitted bare, without the operator.
	assert.Equal(t, "", out[0].Operator)
	assert.Equal(t, "app", out[0].ObjectType)
	assert.Equal(t, []string{"111", "222"}, out[0].Values)
}

func TestNormalize_LegacyEntryValues(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{
			"operands": []interface{}{
				map[string]interface{}{
					"object_type": "SCIM_GROUP",
					"entry_values": []interface{}{
						map[string]interface{}{"lhs": "idp-1", "rhs": "group-1"},
						map[string]interface{}{"lhs": "idp-1"}, // missing rhs, dropped
					},
				},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "AND", out[0].Operator) // default operator, uppercased
	assert.Equal(t, "scim_group", out[0].ObjectType)
	assert.Equal(t, []EntryValue{{LHS: "idp-1", RHS: "group-1"}}, out[0].Entries)
}

func TestNormalize_LegacyEntryValuesSingleObject(t *testing.T) {
	// A single entryValues object is coerced to a one-element list.
	input := []interface{}{
		map[string]interface{}{
			"operator": "AND",
			"operands": []interface{}{
				map[string]interface{}{
					"objectType":  "POSTURE",
					"entryValues": map[string]interface{}{"lhs": "udid", "rhs": "true"},
				},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []EntryValue{{LHS: "udid", RHS: "true"}}, out[0].Entries)
}

func TestNormalize_LegacyPlatformStaysBare(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{
			"operator": "OR",
			"operands": []interface{}{
				map[string]interface{}{
					"objectType": "PLATFORM",
					"entryValues": []interface{}{
						map[string]interface{}{"lhs": "linux", "rhs": "true"},
					},
				},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Operator)
	assert.Equal(t, "platform", out[0].ObjectType)
}

func TestNormalize_LegacyDirectLHSRHS(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{
			"operands": []interface{}{
				map[string]interface{}{
					"objectType": "COUNTRY_CODE",
					"lhs":        "US",
					"rhs":        "true",
				},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "country_code", out[0].ObjectType)
	assert.Equal(t, "US", out[0].LHS)
	assert.Equal(t, "true", out[0].RHS)
	assert.Empty(t, out[0].Values)
	assert.Empty(t, out[0].Entries)
}

func TestNormalize_LegacyMissingObjectTypeSkipped(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{
			"operands": []interface{}{
				map[string]interface{}{"values": []interface{}{"1"}},
				map[string]interface{}{"objectType": "APP", "values": []interface{}{"2"}},
			},
		},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "app", out[0].ObjectType)
}

func TestNormalize_LegacyFromJSONText(t *testing.T) {
	text := `[{"operator":"AND","operands":[{"objectType":"APP","values":["1","2"]}]}]`

	out, err := Normalize(text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"1", "2"}, out[0].Values)
}

func TestNormalize_LegacyObjectTypeAliases(t *testing.T) {
	tests := []struct {
		name    string
		operand map[string]interface{}
	}{
		{
			"camelCase key",
			map[string]interface{}{"objectType": "APP", "values": []interface{}{"1"}},
		},
		{
			"snake_case key",
			map[string]interface{}{"object_type": "APP", "values": []interface{}{"1"}},
		},
		{
			"camelCase wins when both are present",
			map[string]interface{}{"objectType": "APP", "object_type": "SAML", "values": []interface{}{"1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []interface{}{
				map[string]interface{}{"operands": []interface{}{tt.operand}},
			}

			out, err := Normalize(input)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "app", out[0].ObjectType)
			assert.Equal(t, []string{"1"}, out[0].Values)
		})
	}
}

func TestNormalize_CanonicalInputCopied(t *testing.T) {
	input := []SDKCondition{
		{Operator: "OR", ObjectType: "app", Values: []string{"111", "222"}},
		{ObjectType: "saml", Entries: []EntryValue{{LHS: "idp-1", RHS: "eng"}}},
	}

	out, err := Normalize(input)
	require.NoError(t, err)
	require.Equal(t, input, out)

	// the result must not alias the caller's slices
	out[0].Values[0] = "mutated"
	out[1].Entries[0].LHS = "mutated"
	assert.Equal(t, "111", input[0].Values[0])
	assert.Equal(t, "idp-1", input[1].Entries[0].LHS)
}

func TestDenormalize_Empty(t *testing.T) {
	assert.Empty(t, Denormalize(nil))
	assert.Empty(t, Denormalize([]Condition{}))
}

func TestDenormalize_ValueGroupDedupAndSort(t *testing.T) {
	// duplicate APP values collapse into one sorted, deduplicated group
	input := []Condition{
		{
			Operator: "OR",
			Operands: []Operand{
				{ObjectType: "APP", RHS: "111"},
				{ObjectType: "APP", RHS: "222"},
				{ObjectType: "APP", RHS: "111"},
			},
		},
	}

	out := Denormalize(input)
	require.Len(t, out, 1)
	assert.Equal(t, "OR", out[0].Operator)
	require.Len(t, out[0].Operands, 1)
	assert.Equal(t, "APP", out[0].Operands[0].ObjectType)
	assert.Equal(t, []string{"111", "222"}, out[0].Operands[0].Values)
	assert.Empty(t, out[0].Operands[0].EntryValues)
}

func TestDenormalize_ValueGroupRoundTripProperty(t *testing.T) {
	for _, objectType := range []string{"APP", "APP_GROUP", "CLIENT_TYPE", "MACHINE_GRP"} {
		t.Run(objectType, func(t *testing.T) {
			input := []Condition{
				{
					Operator: "AND",
					Operands: []Operand{
						{ObjectType: objectType, RHS: "b"},
						{ObjectType: objectType, RHS: "a"},
						{ObjectType: objectType, RHS: "b"},
						{ObjectType: objectType, RHS: "c"},
					},
				},
			}

			out := Denormalize(input)
			require.Len(t, out, 1)
			assert.Equal(t, []string{"a", "b", "c"}, out[0].Operands[0].Values)
		})
	}
}

func TestDenormalize_EntryGroupKeepsOrder(t *testing.T) {
	input := []Condition{
		{
			Operator: "and",
			Operands: []Operand{
				{ObjectType: "scim_group", LHS: "idp-1", RHS: "z"},
				{ObjectType: "scim_group", LHS: "idp-1", RHS: "a"},
				{ObjectType: "scim_group", LHS: "idp-1", RHS: "z"},
			},
		},
	}

	out := Denormalize(input)
	require.Len(t, out, 1)
	assert.Equal(t, "AND", out[0].Operator)
	assert.Equal(t, "SCIM_GROUP", out[0].Operands[0].ObjectType)
	// Encounter order, no dedup, no sort.
	assert.Equal(t, []EntryValue{
		{LHS: "idp-1", RHS: "z"},
		{LHS: "idp-1", RHS: "a"},
		{LHS: "idp-1", RHS: "z"},
	}, out[0].Operands[0].EntryValues)
}

func TestDenormalize_PlatformOmitsOperator(t *testing.T) {
	input := []Condition{
		{
			Operator: "AND",
			Operands: []Operand{
				{ObjectType: "PLATFORM", LHS: "mac", RHS: "true"},
			},
		},
	}

	out := Denormalize(input)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Operator)

	// The serialized form carries no operator key at all.
	b, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "operator")
}

func TestDenormalize_ValueGroupsBeforeEntryGroups(t *testing.T) {
	input := []Condition{
		{
			Operator: "AND",
			Operands: []Operand{
				{ObjectType: "POSTURE", LHS: "udid", RHS: "true"},
				{ObjectType: "APP", RHS: "1"},
			},
		},
		{
			Operator: "OR",
			Operands: []Operand{
				{ObjectType: "CLIENT_TYPE", RHS: "zpn_client_type_machine_tunnel"},
			},
		},
	}

	out := Denormalize(input)
	require.Len(t, out, 3)
	assert.Equal(t, "APP", out[0].Operands[0].ObjectType)
	assert.Equal(t, "CLIENT_TYPE", out[1].Operands[0].ObjectType)
	assert.Equal(t, "POSTURE", out[2].Operands[0].ObjectType)
}

func TestDenormalize_SkipsIncompleteOperands(t *testing.T) {
	input := []Condition{
		{
			Operator: "AND",
			Operands: []Operand{
				{ObjectType: "", RHS: "ignored"},
				{ObjectType: "APP"},                       // no rhs
				{ObjectType: "SAML", LHS: "attr"},         // no rhs
				{ObjectType: "SAML", RHS: "value"},        // no lhs
				{ObjectType: "UNKNOWN_TYPE", RHS: "drop"}, // not in either set
			},
		},
	}

	assert.Empty(t, Denormalize(input))
}

func TestDenormalize_GroupsByOperatorAndType(t *testing.T) {
	input := []Condition{
		{Operator: "AND", Operands: []Operand{{ObjectType: "APP", RHS: "1"}}},
		{Operator: "OR", Operands: []Operand{{ObjectType: "APP", RHS: "2"}}},
		{Operator: "AND", Operands: []Operand{{ObjectType: "APP", RHS: "3"}}},
	}

	out := Denormalize(input)
	require.Len(t, out, 2)
	assert.Equal(t, "AND", out[0].Operator)
	assert.Equal(t, []string{"1", "3"}, out[0].Operands[0].Values)
	assert.Equal(t, "OR", out[1].Operator)
	assert.Equal(t, []string{"2"}, out[1].Operands[0].Values)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"string", "abc", "abc"},
		{"integral float", float64(111), "111"},
		{"fractional float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"int", 7, "7"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stringify(tt.input))
		})
	}
}
