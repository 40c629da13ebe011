//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package server assembles the MCP server from the product tool packages
// and hosts it over one of the supported transports.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools/zcc"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools/zdx"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools/zia"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools/zpa"
)

var logger = logging.GetLogger("server")

// Config carries everything needed to assemble a server.
type Config struct {
	// Version is reported to MCP clients during initialization.
	Version string

	// Services selects the product tool groups to register.
	Services []string

	// Options gates individual tools within each group.
	Options tools.Options
}

type installer func(*mcp.Server, *client.Client, tools.Options)

var installers = map[string]installer{
	"zia": zia.Install,
	"zpa": zpa.Install,
	"zdx": zdx.Install,
	"zcc": zcc.Install,
}

// catalog names every tool each product group can register, for listings
// and toolset validation.
var catalog = map[string][]string{
	"zia": {"zia_rule_labels", "zia_locations", "zia_url_categories", "zia_activation"},
	"zpa": {"zpa_application_segments", "zpa_segment_groups", "zpa_access_policy"},
	"zdx": {"zdx_applications", "zdx_devices"},
	"zcc": {"zcc_devices"},
}

// Build assembles an MCP server with the configured product tools
// registered against c.
func Build(c *client.Client, cfg Config) (*mcp.Server, error) {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "zscaler-mcp-server",
		Version: cfg.Version,
	}, nil)

	for _, service := range cfg.Services {
		install, ok := installers[service]
		if !ok {
			return nil, errors.Errorf("unknown service %q: expected one of %v", service, ServiceNames())
		}
		logger.Debugf("registering %s tools", service)
		install(s, c, cfg.Options)
	}

	return s, nil
}

// ServiceNames returns the known product group names, sorted.
func ServiceNames() []string {
	names := make([]string, 0, len(installers))
	for name := range installers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the tool names a service can register, sorted.
func Catalog(service string) []string {
	names := append([]string(nil), catalog[service]...)
	sort.Strings(names)
	return names
}

// RunStdio serves s over stdin/stdout until the client disconnects or ctx
// is canceled.
func RunStdio(ctx context.Context, s *mcp.Server) error {
	logger.Infof("serving MCP over stdio")
	return s.Run(ctx, mcp.NewStdioTransport())
}

// HTTPServer is a running HTTP-hosted MCP endpoint.
type HTTPServer interface {
	Stop(ctx context.Context) error
}

type httpServer struct {
	echo *echo.Echo
}

// CreateHTTPServer starts serving s on the given port using either the
// "sse" or the "streamable-http" transport. The returned server must be
// stopped by the caller.
func CreateHTTPServer(s *mcp.Server, transport string, port int) (HTTPServer, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	switch transport {
	case "sse":
		handler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return s })
		e.Any("/sse", echo.WrapHandler(handler))
		e.Any("/sse/*", echo.WrapHandler(handler))
	case "streamable-http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s }, nil)
		e.Any("/mcp", echo.WrapHandler(handler))
		e.Any("/mcp/*", echo.WrapHandler(handler))
	default:
		return nil, errors.Errorf("unknown transport %q: expected sse or streamable-http", transport)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Start blocks, so run it in a goroutine and hand control back to the
	// caller, who stops the server via Stop.
	go func() {
		logger.Infof("serving MCP over %s on port %d", transport, port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server failed: %v", err)
		}
	}()

	return &httpServer{echo: e}, nil
}

// Stop gracefully shuts down the HTTP listener.
func (s *httpServer) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
