//
//  Copyright © Zscaler Inc. All rights reserved.
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	ResetConfig()

	assert.Equal(t, "stdio", VConfig.GetString(Transport))
	assert.Equal(t, 8000, VConfig.GetInt(Port))
	assert.Equal(t, "zia,zpa,zdx,zcc", VConfig.GetString(Services))
	assert.False(t, VConfig.GetBool(ToolsReadOnly))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ZSCALER_TRANSPORT", "streamable-http")
	t.Setenv("ZSCALER_PORT", "9000")
	ResetConfig()

	assert.Equal(t, "streamable-http", VConfig.GetString(Transport))
	assert.Equal(t, 9000, VConfig.GetInt(Port))
}

func TestConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `transport: sse
port: 9092
services: "zpa"
tools:
  readonly: true
`
	err := os.WriteFile(filepath.Join(tmpDir, "zscaler-mcp-config.yaml"), []byte(content), 0644)
	require.NoError(t, err)

	t.Setenv(ConfigPathEnv, tmpDir)
	ResetConfig()

	assert.Equal(t, "sse", VConfig.GetString(Transport))
	assert.Equal(t, 9092, VConfig.GetInt(Port))
	assert.True(t, VConfig.GetBool(ToolsReadOnly))
	assert.Equal(t, []string{"zpa"}, GetServices())
}

func TestGetCredentials_OneAPI(t *testing.T) {
	t.Setenv("ZSCALER_CLIENT_ID", "client-abc")
	t.Setenv("ZSCALER_CLIENT_SECRET", "secret-xyz")
	t.Setenv("ZSCALER_CUSTOMER_ID", "216196257331281920")
	t.Setenv("ZSCALER_VANITY_DOMAIN", "acme")
	t.Setenv("ZSCALER_CLOUD", "beta")
	ResetConfig()

	creds := GetCredentials()
	assert.False(t, creds.UseLegacy)
	assert.Equal(t, "client-abc", creds.ClientID)
	assert.Equal(t, "secret-xyz", creds.ClientSecret)
	assert.Equal(t, "216196257331281920", creds.CustomerID)
	assert.Equal(t, "acme", creds.VanityDomain)
	assert.Equal(t, "beta", creds.Cloud)
	assert.NoError(t, creds.ValidateOneAPI())
}

func TestGetCredentials_LegacyFallbacks(t *testing.T) {
	t.Setenv("ZSCALER_USE_LEGACY_CLIENT", "true")
	t.Setenv("ZIA_USERNAME", "admin@acme")
	t.Setenv("ZIA_PASSWORD", "hunter2")
	t.Setenv("ZIA_API_KEY", "apikey")
	t.Setenv("ZIA_CLOUD", "zscalertwo")
	t.Setenv("ZPA_CLIENT_ID", "zpa-client")
	t.Setenv("ZPA_CUSTOMER_ID", "1234")
	t.Setenv("ZDX_API_KEY_ID", "zdx-key")
	t.Setenv("ZCC_CLIENT_ID", "zcc-client")
	ResetConfig()

	creds := GetCredentials()
	assert.True(t, creds.UseLegacy)
	assert.Equal(t, "admin@acme", creds.Legacy.ZIAUsername)
	assert.Equal(t, "hunter2", creds.Legacy.ZIAPassword)
	assert.Equal(t, "apikey", creds.Legacy.ZIAAPIKey)
	assert.Equal(t, "zscalertwo", creds.Legacy.ZIACloud)
	assert.Equal(t, "zpa-client", creds.Legacy.ZPAClientID)
	assert.Equal(t, "1234", creds.Legacy.ZPACustomerID)
	assert.Equal(t, "zdx-key", creds.Legacy.ZDXAPIKeyID)
	assert.Equal(t, "zcc-client", creds.Legacy.ZCCClientID)
}

func TestValidateOneAPI_Missing(t *testing.T) {
	creds := Credentials{}
	err := creds.ValidateOneAPI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZSCALER_CLIENT_ID")
	assert.Contains(t, err.Error(), "ZSCALER_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "ZSCALER_VANITY_DOMAIN")

	creds.ClientID = "id"
	creds.PrivateKey = "pem"
	creds.VanityDomain = "acme"
	assert.NoError(t, creds.ValidateOneAPI())
}

func TestGetServices_Normalization(t *testing.T) {
	t.Setenv("ZSCALER_SERVICES", " ZIA, zpa ,,ZDX ")
	ResetConfig()

	assert.Equal(t, []string{"zia", "zpa", "zdx"}, GetServices())
}

func TestGetWriteAllowlist(t *testing.T) {
	t.Setenv("ZSCALER_TOOLS_ALLOWWRITE", "zia_rule_labels, zpa_access_policy")
	ResetConfig()

	allow := GetWriteAllowlist()
	assert.True(t, allow["zia_rule_labels"])
	assert.True(t, allow["zpa_access_policy"])
	assert.False(t, allow["zcc_devices"])
}
