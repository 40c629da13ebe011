//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package config provides configuration management for the MCP server
// using [Viper] for flexible configuration sources.
//
// Configuration can be provided via:
//   - YAML configuration files
//   - Environment variables with the ZSCALER_ prefix
//   - Programmatic defaults
//
// # Configuration File
//
// By default, the server looks for zscaler-mcp-config.yaml in the current
// directory. Override the location using environment variables:
//
//	ZSCALER_MCP_CONFIG_PATH=/etc/zscaler
//	ZSCALER_MCP_CONFIG_FILENAME=production-config
//
// Example configuration file:
//
//	log:
//	  level: ".:info"
//	transport: stdio
//	services: "zia,zpa"
//	tools:
//	  readonly: true
//
// # Environment Variables
//
// All configuration keys can be set via environment variables with the
// ZSCALER_ prefix. Dots in key names become underscores:
//
//	ZSCALER_LOG_LEVEL=.:debug
//	ZSCALER_TRANSPORT=streamable-http
//	ZSCALER_TOOLS_READONLY=true
//
// # Credentials
//
// Two authentication modes exist. The default is OneAPI (OAuth2 against
// the Zidentity service), configured with:
//
//	ZSCALER_CLIENT_ID
//	ZSCALER_CLIENT_SECRET (or ZSCALER_PRIVATE_KEY)
//	ZSCALER_CUSTOMER_ID
//	ZSCALER_VANITY_DOMAIN
//	ZSCALER_CLOUD
//
// Setting ZSCALER_USE_LEGACY_CLIENT=true selects the per-product legacy
// APIs instead, resolved from the product's historical variables
// (ZIA_USERNAME, ZPA_CLIENT_ID, ZDX_API_KEY_ID, ZCC_CLIENT_ID, ...).
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
)

// Environment variable and default path constants for configuration loading.
const (
	// EnvVarPrefix is the prefix for all server environment variables.
	// For example, the key "log.level" becomes ZSCALER_LOG_LEVEL.
	EnvVarPrefix string = "ZSCALER"

	// ConfigPathEnv is the environment variable that specifies the directory
	// containing the configuration file.
	ConfigPathEnv string = "ZSCALER_MCP_CONFIG_PATH"

	// ConfigFileNameEnv is the environment variable that specifies the
	// configuration file name (without extension).
	ConfigFileNameEnv string = "ZSCALER_MCP_CONFIG_FILENAME"

	// ConfigDefaultPath is the default directory to search for config files.
	ConfigDefaultPath string = "."

	// ConfigDefaultFilename is the default configuration file name (without extension).
	ConfigDefaultFilename string = "zscaler-mcp-config"
)

// Configuration key constants for use with [VConfig].
const (
	logLevel string = "log.level"

	// Transport selects the MCP transport: "stdio", "sse" or
	// "streamable-http".
	Transport string = "transport"

	// Port is the TCP port used by the HTTP-based transports.
	Port string = "port"

	// Services is the comma-separated list of product tool groups to
	// register (zia, zpa, zdx, zcc).
	Services string = "services"

	// ToolsReadOnly suppresses registration of every mutating tool action
	// when true.
	ToolsReadOnly string = "tools.readonly"

	// ToolsAllowWrite is a comma-separated allowlist of tool names whose
	// write actions remain available when the server is otherwise
	// read-only. Empty means no exceptions.
	ToolsAllowWrite string = "tools.allowwrite"

	// ToolsetFile points at a YAML file pinning the exact tool list to
	// register, overriding Services.
	ToolsetFile string = "toolset.file"

	// UseLegacyClient selects the per-product legacy API clients instead of
	// OneAPI.
	UseLegacyClient string = "use.legacy.client"
)

// OneAPI credential keys.
const (
	ClientID      string = "client.id"
	ClientSecret  string = "client.secret"
	PrivateKey    string = "private.key"
	CustomerID    string = "customer.id"
	VanityDomain  string = "vanity.domain"
	Cloud         string = "cloud"
	MicrotenantID string = "microtenant.id"
)

var (
	once     sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig is the global Viper configuration instance for the server.
	//
	// VConfig is initialized automatically when [Load] or [Init] is called.
	// Use the configuration key constants to access specific settings:
	//
	//	if config.VConfig.GetBool(config.ToolsReadOnly) {
	//	    // write tools suppressed
	//	}
	VConfig *viper.Viper
	logger  = logging.GetLogger("config")
)

// legacyEnvBindings maps per-product credential keys to the historical
// environment variables the product CLIs and terraform providers consume.
var legacyEnvBindings = map[string]string{
	"zia.username":      "ZIA_USERNAME",
	"zia.password":      "ZIA_PASSWORD",
	"zia.api.key":       "ZIA_API_KEY",
	"zia.cloud":         "ZIA_CLOUD",
	"zpa.client.id":     "ZPA_CLIENT_ID",
	"zpa.client.secret": "ZPA_CLIENT_SECRET",
	"zpa.customer.id":   "ZPA_CUSTOMER_ID",
	"zpa.cloud":         "ZPA_CLOUD",
	"zdx.api.key.id":    "ZDX_API_KEY_ID",
	"zdx.api.secret":    "ZDX_API_SECRET",
	"zcc.client.id":     "ZCC_CLIENT_ID",
	"zcc.client.secret": "ZCC_CLIENT_SECRET",
	"zcc.cloud":         "ZCC_CLOUD",
}

// Init initializes the configuration system without loading config files.
//
// Init sets up Viper with configuration file paths, ZSCALER_-prefixed
// environment variable handling, legacy credential bindings, and defaults.
// It is safe to call multiple times; subsequent calls are no-ops.
func Init() {
	once.Do(doInitialize)
}

func getConfigPath() string {
	if configPath, ok := os.LookupEnv(ConfigPathEnv); ok {
		return configPath
	}
	return ConfigDefaultPath
}

func getConfigFileName() string {
	if configName, ok := os.LookupEnv(ConfigFileNameEnv); ok {
		return configName
	}
	return ConfigDefaultFilename
}

func doInitialize() {
	VConfig = viper.New()

	// config-file loading: default is './zscaler-mcp-config.yaml' but can be
	// overridden with $(ZSCALER_MCP_CONFIG_PATH)/$(ZSCALER_MCP_CONFIG_FILENAME).yaml
	VConfig.AddConfigPath(getConfigPath())
	VConfig.SetConfigName(getConfigFileName())
	VConfig.SetConfigType("yaml")

	// envvar handling: keys such as 'log.level' become 'ZSCALER_LOG_LEVEL'
	VConfig.SetEnvPrefix(EnvVarPrefix)
	VConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	VConfig.AutomaticEnv()

	// the per-product legacy variables carry no ZSCALER_ prefix
	for key, env := range legacyEnvBindings {
		_ = VConfig.BindEnv(key, env)
	}

	VConfig.SetDefault(logLevel, ".:info")
	VConfig.SetDefault(Transport, "stdio")
	VConfig.SetDefault(Port, 8000)
	VConfig.SetDefault(Services, "zia,zpa,zdx,zcc")
	VConfig.SetDefault(ToolsReadOnly, false)
}

// Load initializes configuration and loads settings from files and
// environment. Missing config files are not an error. Safe to call
// concurrently; calls after the first successful load are no-ops.
func Load() error {
	loadOnce.Do(func() {
		Init()

		// Early log level update from the environment allows debugging of
		// the config loading itself.
		if early := os.Getenv("ZSCALER_LOG_LEVEL"); early != "" {
			if err := logging.UpdateLogLevels(early); err != nil {
				loadErr = err
				return
			}
		}

		logger.Debugf("loading configuration from %s/%s.yaml", getConfigPath(), getConfigFileName())
		if err := VConfig.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				logger.Warnf("error reading config; using defaults: %+v", err)
			}
		}

		if err := logging.UpdateLogLevels(VConfig.GetString(logLevel)); err != nil {
			loadErr = err
		}
	})

	return loadErr
}

// ResetConfig clears all configuration and reinitializes with defaults.
//
// WARNING: intended for testing only; it resets global state.
func ResetConfig() {
	VConfig = nil
	once = sync.Once{}
	loadOnce = sync.Once{}
	loadErr = nil
	Init()
	_ = Load()
}

// LegacyCredentials holds the per-product legacy API credentials.
type LegacyCredentials struct {
	ZIAUsername     string
	ZIAPassword     string
	ZIAAPIKey       string
	ZIACloud        string
	ZPAClientID     string
	ZPAClientSecret string
	ZPACustomerID   string
	ZPACloud        string
	ZDXAPIKeyID     string
	ZDXAPISecret    string
	ZCCClientID     string
	ZCCClientSecret string
	ZCCCloud        string
}

// Credentials is the resolved authentication material for the Zscaler SDK.
type Credentials struct {
	// UseLegacy selects the per-product legacy clients instead of OneAPI.
	UseLegacy bool

	// OneAPI (Zidentity OAuth2) settings.
	ClientID      string
	ClientSecret  string
	PrivateKey    string
	CustomerID    string
	VanityDomain  string
	Cloud         string
	MicrotenantID string

	Legacy LegacyCredentials
}

// GetCredentials resolves credentials from the loaded configuration,
// applying the environment fallback chains.
func GetCredentials() Credentials {
	Init()

	return Credentials{
		UseLegacy:     VConfig.GetBool(UseLegacyClient),
		ClientID:      VConfig.GetString(ClientID),
		ClientSecret:  VConfig.GetString(ClientSecret),
		PrivateKey:    VConfig.GetString(PrivateKey),
		CustomerID:    VConfig.GetString(CustomerID),
		VanityDomain:  VConfig.GetString(VanityDomain),
		Cloud:         VConfig.GetString(Cloud),
		MicrotenantID: VConfig.GetString(MicrotenantID),
		Legacy: LegacyCredentials{
			ZIAUsername:     VConfig.GetString("zia.username"),
			ZIAPassword:     VConfig.GetString("zia.password"),
			ZIAAPIKey:       VConfig.GetString("zia.api.key"),
			ZIACloud:        VConfig.GetString("zia.cloud"),
			ZPAClientID:     VConfig.GetString("zpa.client.id"),
			ZPAClientSecret: VConfig.GetString("zpa.client.secret"),
			ZPACustomerID:   VConfig.GetString("zpa.customer.id"),
			ZPACloud:        VConfig.GetString("zpa.cloud"),
			ZDXAPIKeyID:     VConfig.GetString("zdx.api.key.id"),
			ZDXAPISecret:    VConfig.GetString("zdx.api.secret"),
			ZCCClientID:     VConfig.GetString("zcc.client.id"),
			ZCCClientSecret: VConfig.GetString("zcc.client.secret"),
			ZCCCloud:        VConfig.GetString("zcc.cloud"),
		},
	}
}

// ValidateOneAPI reports whether the OneAPI credential set is complete,
// naming the missing environment variables otherwise.
func (c Credentials) ValidateOneAPI() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "ZSCALER_CLIENT_ID")
	}
	if c.ClientSecret == "" && c.PrivateKey == "" {
		missing = append(missing, "ZSCALER_CLIENT_SECRET (or ZSCALER_PRIVATE_KEY)")
	}
	if c.VanityDomain == "" {
		missing = append(missing, "ZSCALER_VANITY_DOMAIN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete OneAPI credentials: set %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetServices returns the configured product tool groups, lower-cased and
// trimmed.
func GetServices() []string {
	Init()

	var services []string
	for _, s := range strings.Split(VConfig.GetString(Services), ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			services = append(services, s)
		}
	}
	return services
}

// GetWriteAllowlist returns the configured write-tool allowlist as a set.
func GetWriteAllowlist() map[string]bool {
	Init()

	allow := make(map[string]bool)
	for _, s := range strings.Split(VConfig.GetString(ToolsAllowWrite), ",") {
		if s = strings.TrimSpace(s); s != "" {
			allow[s] = true
		}
	}
	return allow
}
