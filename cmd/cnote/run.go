package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/project"
	"github.com/dhamidi/cnote/report"
)

// runEnv bundles what every file-processing command needs.
type runEnv struct {
	cfg     *project.Config
	cfgPath string
	out     *report.Printer
	errOut  *report.Printer
}

func newRunEnv(cmd *cobra.Command, opts *rootOptions, excludes []string, jobs int) (*runEnv, error) {
	cfg, cfgPath, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Exclude = append(cfg.Exclude, excludes...)
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &runEnv{
		cfg:     cfg,
		cfgPath: cfgPath,
		out:     report.New(cmd.OutOrStdout()),
		errOut:  report.New(cmd.ErrOrStderr()),
	}, nil
}

// collect expands targets, reporting exclusions and unreadable paths.
func (e *runEnv) collect(targets []string, keepExplicit bool) []string {
	c := &project.Collector{
		Matcher:           project.NewMatcher(e.cfg.Exclude),
		KeepExplicitFiles: keepExplicit,
		OnExclude:         e.out.Excluding,
		OnError: func(path string, err error) {
			e.errOut.Warning("could not read %s: %s", path, err)
		},
	}
	return c.Collect(targets)
}

// warnUnterminated reports comments and literals left open at the end of a
// file.
func (e *runEnv) warnUnterminated(path string, src []byte, regions []lexer.Region) {
	for _, r := range regions {
		line, col := lexer.LineCol(src, r.Span.Start)
		e.errOut.Warning("%s:%d:%d: unterminated %s", path, line+1, col+1, describeState(r.Kind))
	}
}

func describeState(s lexer.State) string {
	switch s {
	case lexer.BlockComment:
		return "block comment"
	case lexer.String:
		return "string literal"
	case lexer.Char:
		return "character literal"
	}
	return s.String()
}

func readSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return src, nil
}

func failedError(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed", failed, total)
}

func addCommonFlags(cmd *cobra.Command, excludes *[]string, jobs *int) {
	cmd.Flags().StringArrayVarP(excludes, "exclude", "x", nil, "skip paths matching this pattern (repeatable)")
	cmd.Flags().IntVarP(jobs, "jobs", "j", 0, "number of files processed concurrently (default: number of CPUs)")
}
