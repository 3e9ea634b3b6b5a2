package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cnote/project"
)

var version = "0.1.0"

type rootOptions struct {
	verbose    int
	logFile    string
	configPath string
}

// loadConfig reads the file named by --config, or the project file in the
// working directory when there is one.
func (o *rootOptions) loadConfig() (*project.Config, string, error) {
	if o.configPath != "" {
		cfg, err := project.LoadFile(o.configPath)
		return cfg, o.configPath, err
	}
	return project.Load()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "cnote",
		Short:        "Source hygiene for C codebases",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if opts.logFile != "" {
				path = &opts.logFile
			}
			commonlog.Configure(opts.verbose, path)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "project file to use instead of .cnote.toml/.cnote.yaml")

	rootCmd.AddCommand(newCleanCmd(opts))
	rootCmd.AddCommand(newDocCmd(opts))
	rootCmd.AddCommand(newLicenseCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
