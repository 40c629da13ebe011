//
//  Copyright © Zscaler Inc. All rights reserved.
//

package server

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// toolsetFile is the on-disk shape of a toolset pin:
//
//	tools:
//	  - zia_rule_labels
//	  - zpa_access_policy
type toolsetFile struct {
	Tools []string `yaml:"tools"`
}

// LoadToolset reads a toolset file and returns the pinned tool set. An
// empty path returns nil, which registration treats as "everything". Tool
// names not present in any product group are rejected so that a typo in
// the file fails loudly instead of silently dropping the tool.
func LoadToolset(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading toolset file")
	}

	var parsed toolsetFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrap(err, "parsing toolset file")
	}
	if len(parsed.Tools) == 0 {
		return nil, errors.Errorf("toolset file %s lists no tools", path)
	}

	known := make(map[string]bool)
	for _, names := range catalog {
		for _, name := range names {
			known[name] = true
		}
	}

	toolset := make(map[string]bool, len(parsed.Tools))
	for _, name := range parsed.Tools {
		if !known[name] {
			return nil, errors.Errorf("toolset file %s names unknown tool %q", path, name)
		}
		toolset[name] = true
	}

	return toolset, nil
}
