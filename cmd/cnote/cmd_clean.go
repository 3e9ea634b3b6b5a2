package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cnote/batch"
	"github.com/dhamidi/cnote/clean"
	"github.com/dhamidi/cnote/format"
	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/project"
	"github.com/dhamidi/cnote/report"
)

var cleanLog = commonlog.GetLogger("cnote.clean")

type cleanOutcome struct {
	src          []byte
	changed      bool
	unterminated []lexer.Region
	diff         string
	formatted    []string
	formatErr    error
}

func newCleanCmd(opts *rootOptions) *cobra.Command {
	var (
		check     bool
		showDiff  bool
		noFormat  bool
		style     string
		formatter string
		excludes  []string
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "clean <path>...",
		Short: "Remove // comments and run clang-format",
		Long: `Remove every // line comment from the given C sources, keeping block
comments, string literals and character literals intact, then run the
formatter over each file.

Directories are searched recursively for .c and .h files. Files named
directly are processed whatever their extension.

Use --check to list files that still contain line comments without
changing them, or --diff to print the changes as a unified diff.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newRunEnv(cmd, opts, excludes, jobs)
			if err != nil {
				return err
			}
			cfg := env.cfg
			if cmd.Flags().Changed("style") {
				cfg.Clean.Style = style
			}
			if cmd.Flags().Changed("formatter") {
				cfg.Clean.Formatter = formatter
			}
			if noFormat {
				cfg.Clean.NoFormat = true
			}

			var f format.Formatter = format.Nop{}
			if !cfg.Clean.NoFormat && !check && !showDiff {
				f, err = format.New(cfg.Clean.Formatter)
				if err != nil {
					return err
				}
			}

			run := &cleanRun{
				env:       env,
				formatter: f,
				style:     cfg.Clean.Style,
				check:     check,
				diff:      showDiff,
			}
			return run.execute(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report files that would change and exit non-zero")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff instead of writing files")
	cmd.Flags().BoolVar(&noFormat, "no-format", false, "do not run the formatter")
	cmd.Flags().StringVar(&style, "style", "", "formatter style, passed as --style=<style>")
	cmd.Flags().StringVar(&formatter, "formatter", "", "formatter command line (default \"clang-format -i\")")
	addCommonFlags(cmd, &excludes, &jobs)

	return cmd
}

type cleanRun struct {
	env       *runEnv
	formatter format.Formatter
	style     string
	check     bool
	diff      bool
}

func (r *cleanRun) execute(ctx context.Context, targets []string) error {
	paths := r.env.collect(targets, true)
	results := batch.Run(ctx, paths, r.env.cfg.Workers(), r.cleanFile)

	changed, failed := 0, 0
	for _, res := range results {
		r.env.out.Processing(res.Path)
		if res.Err != nil {
			failed++
			r.env.errOut.Warning("%s", res.Err)
			continue
		}
		o := res.Value
		r.env.warnUnterminated(res.Path, o.src, o.unterminated)
		if o.changed {
			changed++
		}

		switch {
		case r.check:
			if o.changed {
				r.env.out.WouldChange(res.Path)
			}
		case r.diff:
			r.env.out.Raw(o.diff)
		default:
			r.env.out.Cleaned(res.Path, o.changed)
			if len(o.formatted) > 0 {
				r.env.out.Running(strings.Join(o.formatted, " "))
			}
			if o.formatErr != nil {
				r.env.errOut.Warning("%s", o.formatErr)
			}
		}
	}

	r.env.out.Summary(len(results), changed, failed)
	if err := failedError(failed, len(results)); err != nil {
		return err
	}
	if r.check && changed > 0 {
		return fmt.Errorf("%d files contain line comments", changed)
	}
	return nil
}

func (r *cleanRun) cleanFile(ctx context.Context, path string) (cleanOutcome, error) {
	src, err := readSource(path)
	if err != nil {
		return cleanOutcome{}, err
	}
	out := clean.Source(src)
	o := cleanOutcome{
		src:          src,
		changed:      string(out) != string(src),
		unterminated: clean.Unterminated(src),
	}

	if r.check {
		return o, nil
	}
	if r.diff {
		o.diff, err = report.Diff(path, src, out)
		return o, err
	}

	if o.changed {
		if err := project.WriteFile(path, out, 0644); err != nil {
			return o, fmt.Errorf("write %s: %w", path, err)
		}
		cleanLog.Debugf("wrote %s", path)
	}

	if cmd, ok := r.formatter.(*format.Command); ok {
		o.formatted = cmd.Argv(path, r.style)
	}
	if err := r.formatter.Format(ctx, path, r.style); err != nil {
		var toolErr *format.ToolError
		if !errors.As(err, &toolErr) {
			return o, err
		}
		o.formatErr = toolErr
	}
	return o, nil
}
