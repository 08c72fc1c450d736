// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edunex/study-engine/internal/ingest"
	"github.com/edunex/study-engine/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a resource to the library",
	Long: `Add submits a new resource to the Edunex backend: a text note
(--text), an external link (--link), or an uploaded file (--file).
Exactly one of the three must be given. The resource appears in the
local list immediately; the authoritative list is re-fetched after the
upload completes.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "resource title (defaults from the file name or link host)")
	addCmd.Flags().String("text", "", "inline text content")
	addCmd.Flags().String("link", "", "external URL")
	addCmd.Flags().String("file", "", "path of a file to upload")
	addCmd.Flags().String("subject", "", "subject the resource belongs to")
	addCmd.Flags().String("tags", "", "tags (comma-separated)")
	addCmd.Flags().Bool("public", true, "make the resource visible to other users")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	draft, err := draftFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := appConfig(cmd)
	if draft.Subject == "" {
		draft.Subject = cfg.Upload.DefaultSubject
	}

	client := newClient(cfg)
	lib, closeLib := newLibrary(cfg, client)
	defer closeLib()

	ctrl := ingest.NewController(client, lib, cfg.Profile.Name)
	res, err := ctrl.Submit(context.Background(), draft, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Added %q (id %s, type %s)\n", res.Title, res.ID, res.Category)
	return nil
}

// draftFromFlags builds a ResourceDraft from the add flags. Exactly one
// payload flag must be set; which one decides the draft kind.
func draftFromFlags(cmd *cobra.Command) (types.ResourceDraft, error) {
	text, _ := cmd.Flags().GetString("text")
	link, _ := cmd.Flags().GetString("link")
	file, _ := cmd.Flags().GetString("file")

	set := 0
	for _, v := range []string{text, link, file} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return types.ResourceDraft{}, fmt.Errorf("provide exactly one of --text, --link, or --file")
	}

	title, _ := cmd.Flags().GetString("title")
	subject, _ := cmd.Flags().GetString("subject")
	tags, _ := cmd.Flags().GetString("tags")
	public, _ := cmd.Flags().GetBool("public")

	draft := types.ResourceDraft{
		Title:    title,
		Subject:  subject,
		Tags:     splitTags(tags),
		IsPublic: public,
	}

	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return types.ResourceDraft{}, fmt.Errorf("reading %s: %w", file, err)
		}
		draft.SetKind(types.KindFile)
		draft.File = &types.DraftFile{
			Name:        filepath.Base(file),
			ContentType: contentTypeFor(file),
			Data:        data,
		}
	case link != "":
		draft.SetKind(types.KindLink)
		draft.Content = link
	default:
		draft.SetKind(types.KindText)
		draft.Content = text
	}

	if draft.Title == "" {
		draft.Title = ingest.DefaultTitle(draft)
	}
	return draft, nil
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
