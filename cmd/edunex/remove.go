// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [ids...]",
	Short: "Remove resources from the library",
	Long: `Remove deletes resources from the Edunex backend by id and prunes
them from the local cache.`,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more resource ids")
	}

	cfg := appConfig(cmd)
	client := newClient(cfg)
	lib, closeLib := newLibrary(cfg, client)
	defer closeLib()

	ctx := context.Background()
	failed := 0
	for _, id := range args {
		if err := lib.Remove(ctx, client, id); err != nil {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "Removed %s\n", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d resource(s) failed removal", failed)
	}
	return nil
}
