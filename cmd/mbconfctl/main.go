// Command mbconfctl is a documentary host CLI for the mbconf protocol
// (spec §6): it discovers a device's schema and prints it, or sends a
// single query command and prints the decoded result. It is intentionally
// non-interactive; the host package it drives exposes the composed
// SectionView model a full interactive TUI would build on.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/piksel/mbconf/host"
	"github.com/piksel/mbconf/transport"
)

var (
	flagDevice  = pflag.StringP("device", "d", "", "Device target: host:port, \"emulator:<plugin-path>\", or a profile name from --config")
	flagConfig  = pflag.StringP("config", "c", "", "Path to a YAML device profile file")
	flagTimeout = pflag.DurationP("timeout", "t", 2*time.Second, "Per-exchange timeout")
	flagVerbose = pflag.BoolP("verbose", "v", false, "Log every request/response exchange")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: mbconfctl [flags] <info|sections|query|tui> [args...]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *flagVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	args := pflag.Args()
	if len(args) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	tr, err := resolveTransport(*flagDevice, *flagConfig, *flagTimeout)
	if err != nil {
		logger.Error("resolve device", "err", err)
		os.Exit(1)
	}
	defer tr.Close()

	client := host.New(tr, host.WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout*4)
	defer cancel()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "info":
		err = runInfo(ctx, client)
	case "sections":
		err = runSections(ctx, client)
	case "tui":
		err = runTUI(ctx, client)
	case "query":
		err = runQuery(ctx, client, rest)
	default:
		fmt.Fprintf(os.Stderr, "mbconfctl: unknown command %q\n", cmd)
		pflag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// resolveTransport parses the --device flag (directly, or by profile name
// from --config) into a concrete transport.
func resolveTransport(device, configPath string, timeout time.Duration) (transport.Transport, error) {
	target := device
	if configPath != "" {
		cfg, err := loadProfileConfig(configPath)
		if err != nil {
			return nil, err
		}
		if profile, ok := cfg.lookupProfile(device); ok {
			return dialProfile(profile, timeout)
		}
	}

	switch {
	case strings.HasPrefix(target, "emulator:"):
		return transport.LoadEmulatorPlugin(strings.TrimPrefix(target, "emulator:"))
	case target == "serial":
		return transport.OpenSerial("")
	case target == "":
		return nil, fmt.Errorf("mbconfctl: --device is required")
	default:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tcp, err := transport.DialTCP(ctx, target)
		if err != nil {
			return nil, err
		}
		tcp.SetTimeout(timeout)
		return tcp, nil
	}
}

func dialProfile(profile deviceProfile, timeout time.Duration) (transport.Transport, error) {
	switch profile.Transport {
	case "emulator":
		return transport.LoadEmulatorPlugin(profile.Address)
	case "serial":
		return transport.OpenSerial(profile.Address)
	case "tcp", "":
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tcp, err := transport.DialTCP(ctx, profile.Address)
		if err != nil {
			return nil, err
		}
		tcp.SetTimeout(timeout)
		return tcp, nil
	default:
		return nil, fmt.Errorf("mbconfctl: profile %q has unknown transport %q", profile.Name, profile.Transport)
	}
}

// parseU8 parses a decimal index argument, used by the query subcommand.
func parseU8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("mbconfctl: invalid index %q: %w", s, err)
	}
	return uint8(n), nil
}
