//
//  Copyright © Zscaler Inc. All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/zscaler/zscaler-mcp-server-sub000/cmd/zscaler-mcp/subcommands/serve"
	"github.com/zscaler/zscaler-mcp-server-sub000/cmd/zscaler-mcp/subcommands/tools"
	"github.com/zscaler/zscaler-mcp-server-sub000/cmd/zscaler-mcp/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "zscaler-mcp",
		Usage:   "An MCP server exposing the Zscaler product APIs (ZIA, ZPA, ZDX, ZCC) as tools",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Starts the MCP server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "transport",
						Aliases: []string{"t"},
						Usage:   "The transport to serve.  Must be one of 'stdio', 'sse' or 'streamable-http'",
						Action: func(ctx context.Context, command *cli.Command, s string) error {
							switch s {
							case "stdio", "sse", "streamable-http":
								return nil
							}
							return fmt.Errorf("unsupported transport: %s", s)
						},
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "The TCP port used by the HTTP-based transports.",
					},
					&cli.StringFlag{
						Name:    "services",
						Aliases: []string{"s"},
						Usage:   "Comma-separated product tool groups to register (zia, zpa, zdx, zcc)",
					},
					&cli.BoolFlag{
						Name:  "readonly",
						Usage: "Suppress every mutating tool action",
					},
					&cli.StringFlag{
						Name:  "toolset",
						Usage: "Load the exact tool list to register from `FILE`",
					},
				},
				Action: serve.Execute,
			},
			{
				Name:   "tools",
				Usage:  "Lists the tools each product group provides",
				Action: tools.Execute,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
