// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edunex/study-engine/internal/library"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resource library to YAML or JSON",
	Long: `Export fetches the full resource library (falling back to the local
cache when the backend is unreachable) and writes it to stdout as YAML
or JSON.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := appConfig(cmd)
	lib, closeLib := newLibrary(cfg, newClient(cfg))
	defer closeLib()

	fromCache, err := lib.Load(context.Background())
	if err != nil && !fromCache {
		return err
	}
	if fromCache {
		fmt.Fprintf(os.Stderr, "warning: backend unreachable, exporting cached resources: %v\n", err)
	}

	switch format {
	case "yaml", "":
		return library.ExportYAML(os.Stdout, lib.Resources())
	case "json":
		return library.ExportJSON(os.Stdout, lib.Resources())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
