package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sharednotes/internal/sharing/domain/sharelink"
)

// ErrNotViewerLink - ссылка ведет в редактор, а не на просмотр.
var ErrNotViewerLink = errors.New("link does not open the viewer")

func newViewCmd(opts *cliOptions) *cobra.Command {
	var token, link string

	cmd := &cobra.Command{
		Use:   "view [note-id]",
		Short: "Show a note as a viewer would see it",
		Long: `Show a note the way a token holder sees it. Pass the note id with --token,
or the query part of a share link with --link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, presented, err := viewTarget(args, token, link)
			if err != nil {
				return err
			}

			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				snap, err := d.service.ViewNote(ctx, noteID, presented)
				if err != nil {
					return err
				}

				view := toSnapshotView(snap)
				return render(cmd.OutOrStdout(), opts.output, view, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s\t%s\n%s\n", view.UpdatedAt, view.Title, view.Content)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "viewer token")
	cmd.Flags().StringVar(&link, "link", "", "share link query, e.g. ?view=viewer&id=...&token=...")
	return cmd
}

func viewTarget(args []string, token, link string) (string, string, error) {
	if link == "" {
		if len(args) == 0 {
			return "", "", errors.New("note id or --link is required")
		}
		return args[0], token, nil
	}

	parsed, err := sharelink.Parse(link)
	if err != nil {
		return "", "", err
	}
	if parsed.Mode != sharelink.ModeViewer {
		return "", "", ErrNotViewerLink
	}
	return parsed.NoteID, parsed.Token, nil
}
