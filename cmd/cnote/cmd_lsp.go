package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/cnote/codebase"
)

func newLSPCmd(opts *rootOptions) *cobra.Command {
	var licenseFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdin/stdout.

The server shows rendered documentation on hover, offers document
formatting that removes // comments, lists documented declarations as
workspace symbols, and reports license header problems and unterminated
comments or literals as diagnostics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, licenseFile)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&licenseFile, "license-file", "l", "", "license text to check headers against")

	return cmd
}
