//
//  Copyright © Zscaler Inc. All rights reserved.
//

package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/config"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

func testClient(t *testing.T) *client.Client {
	t.Helper()
	// legacy mode defers credential validation until first use, so no
	// credentials are needed to assemble a server
	c, err := client.NewClient(config.Credentials{UseLegacy: true})
	require.NoError(t, err)
	return c
}

func TestBuild_AllServices(t *testing.T) {
	s, err := Build(testClient(t), Config{
		Version:  "test",
		Services: []string{"zia", "zpa", "zdx", "zcc"},
		Options:  tools.Options{},
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestBuild_UnknownService(t *testing.T) {
	_, err := Build(testClient(t), Config{
		Version:  "test",
		Services: []string{"zwa"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown service "zwa"`)
}

func TestServiceNames(t *testing.T) {
	assert.Equal(t, []string{"zcc", "zdx", "zia", "zpa"}, ServiceNames())
}

func TestCatalog(t *testing.T) {
	assert.Contains(t, Catalog("zpa"), "zpa_access_policy")
	assert.Empty(t, Catalog("unknown"))
}

func TestLoadToolset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolset.yaml")
	content := `tools:
  - zia_rule_labels
  - zpa_access_policy
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	toolset, err := LoadToolset(path)
	require.NoError(t, err)
	assert.True(t, toolset["zia_rule_labels"])
	assert.True(t, toolset["zpa_access_policy"])
	assert.False(t, toolset["zcc_devices"])
}

func TestLoadToolset_EmptyPath(t *testing.T) {
	toolset, err := LoadToolset("")
	require.NoError(t, err)
	assert.Nil(t, toolset)
}

func TestLoadToolset_UnknownTool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  - zia_rule_lables\n"), 0644))

	_, err := LoadToolset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestLoadToolset_NoTools(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools: []\n"), 0644))

	_, err := LoadToolset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists no tools")
}

func TestLoadToolset_MissingFile(t *testing.T) {
	_, err := LoadToolset(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
