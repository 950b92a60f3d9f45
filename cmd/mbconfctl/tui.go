package main

import (
	"context"
	"fmt"

	"github.com/piksel/mbconf/host"
)

// runTUI is the "tui" subcommand. The original elytra-cli drives a live,
// editable terminal UI over the discovered schema; this port only prints
// the same discovered data as "sections" once and exits. The host
// package's SectionView/FieldView model is what a future interactive
// front end would render against.
func runTUI(ctx context.Context, c *host.Client) error {
	fmt.Println("mbconfctl: interactive editing is not implemented; showing a static schema dump.")
	return runSections(ctx, c)
}
