package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dhamidi/cnote/doc"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		raw   bool
		width int
		style string
	)

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render the documentation of one file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := readSource(path)
			if err != nil {
				return err
			}
			entries := doc.Extract(src)
			if len(entries) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no documentation entries in %s\n", path)
				return nil
			}
			md := string(doc.Render(entries, filepath.ToSlash(path)))

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("create markdown renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("render %s: %w", path, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown instead of rendering it")
	cmd.Flags().IntVar(&width, "width", 80, "wrap rendered output at this column")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, notty, ...")

	return cmd
}
