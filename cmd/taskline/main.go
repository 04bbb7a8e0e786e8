// Package main is the entry point for the taskline CLI.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	// Create dependency injection container
	container, err := app.New(cli.ParseGlobalOptions(args))
	if err != nil {
		return runWithoutContainer(args, err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// runWithoutContainer handles a broken configuration.
// Help, version and the config template/init commands still work so the file can be fixed.
func runWithoutContainer(args []string, initErr error) error {
	if !canRunWithoutContainer(args) {
		return fmt.Errorf("failed to initialize: %w", initErr)
	}
	rootCmd := cli.NewRootCommand(nil, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func canRunWithoutContainer(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	positional := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" || args[i] == "--api-url":
			i++ // Skip the value
		case len(args[i]) > 0 && args[i][0] == '-':
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) == 0 {
		return false
	}
	switch positional[0] {
	case "help", "completion":
		return true
	case "config":
		return len(positional) > 1 && slices.Contains([]string{"template", "init"}, positional[1])
	}
	return false
}
