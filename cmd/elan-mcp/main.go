package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/app"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "elan-mcp"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := newRootCmd(version, programName)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCmd(version, programName string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     programName,
		Short:   "ELAn MCP Server",
		Long:    "Esoteric Language Analyzer (ELAn) catalog explorer, served over MCP",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFlags(cmd.Flags(), version)
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)

	app.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newOptionsCmd(), newSearchCmd(), newCompareCmd())

	return rootCmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options <facet>",
		Short: "List the options of a facet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *catalog.Service) error {
				return app.RunOptions(ctx, svc, args[0], cmd.OutOrStdout())
			})
		},
	}
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search languages by facet filters and a free-text term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := app.SearchRequestFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return withService(cmd, func(ctx context.Context, svc *catalog.Service) error {
				return app.RunSearch(ctx, svc, req, cmd.OutOrStdout())
			})
		},
	}
	app.RegisterSearchFlags(cmd.Flags())
	return cmd
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <language> <language>",
		Short: "Show two languages one after the other",
		Args:  cobra.ExactArgs(catalog.MaxCompared),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *catalog.Service) error {
				return app.RunCompare(ctx, svc, args, cmd.OutOrStdout())
			})
		},
	}
}

// withService loads settings from the command's flags, including the
// inherited ones, and runs fn against a fresh catalog service.
func withService(cmd *cobra.Command, fn func(context.Context, *catalog.Service) error) error {
	settings, err := config.LoadSettingsWithFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.ValidateSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app.ConfigureLogging()

	svc, err := app.NewCatalogService(settings)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, svc)
}

func runWithFlags(flags *pflag.FlagSet, version string) error {
	return app.RunWithDeps(context.Background(), app.DefaultRunParams(), flags, version)
}
