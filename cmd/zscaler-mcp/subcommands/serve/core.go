//
//  Copyright © Zscaler Inc. All rights reserved.
//

package serve

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/zscaler/zscaler-mcp-server-sub000/cmd/zscaler-mcp/version"
	"github.com/zscaler/zscaler-mcp-server-sub000/internal/logging"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/client"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/config"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/server"
	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

var logger = logging.GetLogger("zscaler-mcp")

// Execute runs the serve command. Flags override the corresponding
// configuration values; the server then runs until the MCP client
// disconnects (stdio) or an interrupt arrives (HTTP transports).
func Execute(ctx context.Context, cmd *cli.Command) error {
	if err := config.Load(); err != nil {
		return err
	}

	transport := config.VConfig.GetString(config.Transport)
	if t := cmd.String("transport"); t != "" {
		transport = t
	}

	port := config.VConfig.GetInt(config.Port)
	if p := cmd.Int("port"); p != 0 {
		port = p
	}

	services := config.GetServices()
	if s := cmd.String("services"); s != "" {
		services = nil
		for _, svc := range strings.Split(s, ",") {
			if svc = strings.ToLower(strings.TrimSpace(svc)); svc != "" {
				services = append(services, svc)
			}
		}
	}

	toolsetPath := config.VConfig.GetString(config.ToolsetFile)
	if p := cmd.String("toolset"); p != "" {
		toolsetPath = p
	}
	toolset, err := server.LoadToolset(toolsetPath)
	if err != nil {
		return err
	}

	c, err := client.NewClient(config.GetCredentials())
	if err != nil {
		return err
	}

	s, err := server.Build(c, server.Config{
		Version:  version.GetVersion(),
		Services: services,
		Options: tools.Options{
			ReadOnly:   cmd.Bool("readonly") || config.VConfig.GetBool(config.ToolsReadOnly),
			AllowWrite: config.GetWriteAllowlist(),
			Toolset:    toolset,
		},
	})
	if err != nil {
		return err
	}

	if transport == "stdio" {
		return server.RunStdio(ctx, s)
	}

	httpServer, err := server.CreateHTTPServer(s, transport, port)
	if err != nil {
		return err
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Infof("shutting down server...")

	if err := httpServer.Stop(ctx); err != nil {
		return err
	}

	logger.Infof("server exited gracefully")
	return nil
}
