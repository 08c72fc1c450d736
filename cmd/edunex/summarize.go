// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edunex/study-engine/internal/summary"
	"github.com/edunex/study-engine/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text...]",
	Short: "Generate an AI summary of a resource or of inline text",
	Long: `Summarize asks the backend's AI service for a summary. Pass a
resource id with --id to summarize a stored resource's extracted
content, or pass text directly as arguments.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("id", "", "resource id to summarize")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	resourceID, _ := cmd.Flags().GetString("id")
	text := strings.Join(args, " ")
	if resourceID == "" && text == "" {
		return fmt.Errorf("provide a resource id (--id) or text to summarize")
	}

	cfg := appConfig(cmd)
	orch := summary.New(newClient(cfg))

	err := orch.Request(context.Background(), resourceID, text)
	sess := orch.Session()
	if sess.Status == types.SummaryFailed {
		fmt.Fprintf(os.Stderr, "summary failed: %s\n", sess.ErrorMessage)
		return err
	}

	fmt.Fprintln(os.Stdout, sess.Text)
	return nil
}
