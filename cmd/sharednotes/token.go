package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/domain/sharelink"
)

func newTokenCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and list viewer tokens",
	}
	cmd.AddCommand(newTokenCreateCmd(opts), newTokenListCmd(opts))
	return cmd
}

func newTokenCreateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create [note-id]",
		Short: "Issue a viewer token for the note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				token, err := d.service.CreateToken(ctx, args[0])
				if err != nil {
					return err
				}
				return printTokens(cmd.OutOrStdout(), opts, []entities.Token{token})
			})
		},
	}
}

func newTokenListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [note-id]",
		Short: "List the note's tokens, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				tokens, err := d.service.ListTokens(ctx, args[0])
				if err != nil {
					return err
				}
				return printTokens(cmd.OutOrStdout(), opts, tokens)
			})
		},
	}
}

func printTokens(w io.Writer, opts *cliOptions, tokens []entities.Token) error {
	views := make([]tokenView, 0, len(tokens))
	for _, t := range tokens {
		views = append(views, tokenView{
			Token:     t.Token,
			CreatedAt: formatTime(t.CreatedAt),
			ShareURL:  sharelink.Build(opts.cfg.Sharing.PublicURL, sharelink.Viewer(t.NoteID, t.Token)),
		})
	}

	return render(w, opts.output, views, func(w io.Writer) error {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", v.Token, v.CreatedAt, v.ShareURL); err != nil {
				return err
			}
		}
		return nil
	})
}
