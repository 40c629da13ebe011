//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package tools carries the plumbing shared by every product tool package:
// registration gating, result encoding, and per-call correlation ids.
package tools

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
)

// Options controls which tools a product package registers.
//
// A tool must pass two gates: it must be present in the Toolset (a nil
// Toolset enables everything), and if it mutates state it must also clear
// the write gate. Read-only mode blocks every write tool except those a
// user explicitly allowlisted.
type Options struct {
	ReadOnly   bool
	AllowWrite map[string]bool
	Toolset    map[string]bool
}

// Enabled reports whether a read tool should be registered.
func (o Options) Enabled(name string) bool {
	if o.Toolset == nil {
		return true
	}
	return o.Toolset[name]
}

// WriteEnabled reports whether a write tool should be registered.
func (o Options) WriteEnabled(name string) bool {
	if !o.Enabled(name) {
		return false
	}
	if !o.ReadOnly {
		return true
	}
	return o.AllowWrite[name]
}

// NewCallID returns a short correlation id for tool-dispatch logging.
func NewCallID() string {
	return uuid.NewString()[:8]
}

// JSONResult encodes v as indented JSON wrapped in a text content block.
func JSONResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding tool result")
	}
	return TextResult(string(data)), nil
}

// TextResult wraps a plain string in a text content block.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
