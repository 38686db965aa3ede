package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sharednotes/internal/sharing/domain/entities"
)

func newNoteCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Create, save and read notes",
	}
	cmd.AddCommand(newNoteSaveCmd(opts), newNoteNewCmd(opts), newNoteGetCmd(opts))
	return cmd
}

func newNoteSaveCmd(opts *cliOptions) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "save [id]",
		Short: "Create or overwrite the note with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				note, err := d.service.SaveNote(ctx, args[0], title, content)
				if err != nil {
					return err
				}
				return printNote(cmd.OutOrStdout(), opts.output, note)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	return cmd
}

func newNoteNewCmd(opts *cliOptions) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note with a generated id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				note, err := d.service.NewNote(ctx, title, content)
				if err != nil {
					return err
				}
				return printNote(cmd.OutOrStdout(), opts.output, note)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	return cmd
}

func newNoteGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Print the stored note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, d *deps) error {
				note, err := d.service.GetNote(ctx, args[0])
				if err != nil {
					return err
				}
				return printNote(cmd.OutOrStdout(), opts.output, note)
			})
		},
	}
}

func printNote(w io.Writer, format string, note entities.Note) error {
	view := toNoteView(note)
	return render(w, format, view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\n%s\n", view.ID, view.UpdatedAt, view.Title, view.Content)
		return err
	})
}

// withService открывает хранилище на время одной команды.
func withService(ctx context.Context, opts *cliOptions, fn func(context.Context, *deps) error) error {
	d, err := openRuntime(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = d.Close()
	}()
	return fn(ctx, d)
}
