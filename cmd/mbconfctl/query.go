package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/piksel/mbconf"
	"github.com/piksel/mbconf/host"
)

// runQuery sends one Query command and prints the decoded result: `query
// <kind-char> <index> <target-char> [option-index]`, e.g. `query c 0 f`
// for property 0's field descriptor (spec §4.4; mirrors elytra-cli's
// one-shot `query` subcommand).
func runQuery(ctx context.Context, c *host.Client, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("mbconfctl: query requires <kind> <index> <target> [option-index]")
	}

	kind := mbconf.EntryKind(args[0][0])
	if !kind.Valid() {
		return fmt.Errorf("mbconfctl: unknown entry kind %q", args[0])
	}
	idx, err := parseU8(args[1])
	if err != nil {
		return err
	}
	target := mbconf.QueryTarget(args[2][0])

	switch target {
	case mbconf.QueryField:
		desc, err := c.FetchDescriptor(ctx, kind, idx)
		if err != nil {
			return fmt.Errorf("mbconfctl: query field: %w", err)
		}
		printDescriptor(kind, idx, desc)
	case mbconf.QueryHelp, mbconf.QueryIcon:
		text, err := c.FetchText(ctx, kind, idx, target)
		if err != nil {
			return fmt.Errorf("mbconfctl: query text: %w", err)
		}
		fmt.Println(text)
	case mbconf.QueryLayout:
		refs, err := c.FetchLayout(ctx, idx)
		if err != nil {
			return fmt.Errorf("mbconfctl: query layout: %w", err)
		}
		for _, ref := range refs {
			fmt.Printf("%c %d\n", byte(ref.Kind), ref.Index)
		}
	case mbconf.QueryOption:
		if len(args) < 4 {
			return fmt.Errorf("mbconfctl: query option requires an option index")
		}
		optIdx, err := strconv.ParseUint(args[3], 10, 16)
		if err != nil {
			return fmt.Errorf("mbconfctl: invalid option index %q: %w", args[3], err)
		}
		label, err := c.FetchOption(ctx, kind, idx, uint16(optIdx))
		if err != nil {
			return fmt.Errorf("mbconfctl: query option: %w", err)
		}
		fmt.Println(label)
	default:
		return fmt.Errorf("mbconfctl: unknown query target %q", args[2])
	}
	return nil
}

func printDescriptor(kind mbconf.EntryKind, idx uint8, desc host.RawDescriptor) {
	fmt.Printf("%s #%d: %s\n", kind, idx, desc.Name)
	fmt.Printf("  ReadOnly: %v  HasHelp: %v  HasIcon: %v  HasOptions: %v  IsMulti: %v\n",
		desc.Flags.ReadOnly(), desc.Flags.HasHelp(), desc.Flags.HasIcon(), desc.Flags.HasOptions(), desc.Flags.IsMulti())
	fmt.Printf("  Variant: %d\n", desc.Variant)
}
