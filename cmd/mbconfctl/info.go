package main

import (
	"context"
	"fmt"

	"github.com/piksel/mbconf/host"
)

// runInfo prints the entry counts from the device's Meta response (spec
// §4.5), mirroring elytra-cli's "info" subcommand. The protocol version
// byte is not printed.
func runInfo(ctx context.Context, c *host.Client) error {
	sections, props, infos, actions, err := c.Meta(ctx)
	if err != nil {
		return fmt.Errorf("mbconfctl: info: %w", err)
	}
	fmt.Printf("Sections:    %d\n", sections)
	fmt.Printf("Prop fields: %d\n", props)
	fmt.Printf("Info fields: %d\n", infos)
	fmt.Printf("Actions:     %d\n", actions)
	return nil
}
