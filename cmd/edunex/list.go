// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edunex/study-engine/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all resources in the library",
	Long: `List fetches every resource from the Edunex backend, normalizes the
records into display categories, and prints them. When the backend is
unreachable the last cached list is shown instead.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output resources as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := appConfig(cmd)
	lib, closeLib := newLibrary(cfg, newClient(cfg))
	defer closeLib()

	fromCache, err := lib.Load(context.Background())
	if err != nil && !fromCache {
		return err
	}
	if fromCache {
		fmt.Fprintf(os.Stderr, "warning: backend unreachable, showing cached resources: %v\n", err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatResources(lib.Resources(), jsonOutput)
}

// formatResources prints a resource table, or JSON when requested.
// Shared by list and search.
func formatResources(resources []types.Resource, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resources)
	}

	if len(resources) == 0 {
		fmt.Println("No resources found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-6s  %-40s  %s\n", "ID", "Type", "Title", "Link")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range resources {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		link := r.PrimaryURL
		if link == types.PrimaryURLUnset {
			link = "-"
		}
		fmt.Fprintf(os.Stdout, "%-6s  %-6s  %-40s  %s\n", r.ID, r.Category, title, link)
	}

	fmt.Fprintf(os.Stdout, "\n%d resources\n", len(resources))
	return nil
}
