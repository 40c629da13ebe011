//
//  Copyright © Zscaler Inc. All rights reserved.
//

package tools

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/server"
)

// Execute prints the tools each product group provides, one group per
// section, suitable for building a toolset file.
func Execute(_ context.Context, _ *cli.Command) error {
	for _, service := range server.ServiceNames() {
		fmt.Println(service + ":")
		for _, tool := range server.Catalog(service) {
			fmt.Println("  - " + tool)
		}
	}
	return nil
}
