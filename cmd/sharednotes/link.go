package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sharednotes/internal/sharing/domain/sharelink"
)

func newLinkCmd(opts *cliOptions) *cobra.Command {
	var editor bool

	cmd := &cobra.Command{
		Use:   "link [note-id] [token]",
		Short: "Print a share link for a note",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := sharelink.Link{Mode: sharelink.ModeEditor, NoteID: args[0]}
			if !editor {
				// Без токена ссылка открывает заметку, пока у нее нет ни одного токена.
				token := ""
				if len(args) == 2 {
					token = args[1]
				}
				l = sharelink.Viewer(args[0], token)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), sharelink.Build(opts.cfg.Sharing.PublicURL, l))
			return err
		},
	}
	cmd.Flags().BoolVar(&editor, "editor", false, "link to the editor instead of the viewer")
	return cmd
}
