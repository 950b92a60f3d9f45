package main

import (
	"context"
	"fmt"

	"github.com/piksel/mbconf"
	"github.com/piksel/mbconf/host"
)

// runSections discovers the full schema and prints a section-by-section
// summary, mirroring elytra-cli's "sections" subcommand (minus its
// terminal colors, which this non-interactive CLI has no use for).
func runSections(ctx context.Context, c *host.Client) error {
	schema, err := c.DiscoverSchema(ctx)
	if err != nil {
		return fmt.Errorf("mbconfctl: sections: %w", err)
	}

	fmt.Println("Sections:")
	for _, section := range schema.Sections {
		fmt.Printf("- Section #%d: %s", section.Index, section.Desc.Name)
		if section.Desc.Flags.HasHelp() {
			fmt.Printf("  %s", section.Desc.Help)
		}
		fmt.Println()

		for _, fv := range section.FieldViews(schema.Props, schema.Infos) {
			fieldType := "C"
			if fv.Ref.Kind == mbconf.KindInfo {
				fieldType = "I"
			}
			access := "Writable"
			if fv.Desc.Flags.ReadOnly() {
				access = "ReadOnly"
			}
			fmt.Printf("  [%s] %s (%s)", fieldType, fv.Desc.Name, access)
			if fv.Desc.Flags.HasHelp() {
				fmt.Printf(" %s", fv.Desc.Help)
			}
			fmt.Println()
		}
		fmt.Println()
	}

	if len(schema.Actions) > 0 {
		fmt.Println("Actions:")
		for i, a := range schema.Actions {
			fmt.Printf("  [%d] %s\n", i, a.Name)
		}
	}
	return nil
}
