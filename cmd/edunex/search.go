// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edunex/study-engine/internal/api"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the resource library",
	Long: `Search runs a full-text query against the Edunex backend and prints
the matching resources. Queries shorter than two characters fall back to
listing everything. With --offline the query runs against the local
cache instead of the backend.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output resources as JSON")
	searchCmd.Flags().Bool("offline", false, "search the local cache instead of the backend")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	offline, _ := cmd.Flags().GetBool("offline")

	cfg := appConfig(cmd)
	lib, closeLib := newLibrary(cfg, newClient(cfg))
	defer closeLib()

	ctx := context.Background()

	if offline {
		results, err := lib.OfflineSearch(ctx, query)
		if err != nil {
			return err
		}
		return formatResources(results, jsonOutput)
	}

	if err := lib.SetQuery(ctx, query); err != nil {
		// A dead network degrades to the cached library rather than
		// nothing at all.
		var netErr *api.NetworkError
		if errors.As(err, &netErr) {
			results, cacheErr := lib.OfflineSearch(ctx, query)
			if cacheErr == nil {
				fmt.Fprintf(os.Stderr, "warning: backend unreachable, searching cached resources: %v\n", err)
				return formatResources(results, jsonOutput)
			}
		}
		return err
	}

	return formatResources(lib.Resources(), jsonOutput)
}
