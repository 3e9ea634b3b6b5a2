package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cnote/batch"
	"github.com/dhamidi/cnote/license"
	"github.com/dhamidi/cnote/project"
	"github.com/dhamidi/cnote/report"
)

var licenseLog = commonlog.GetLogger("cnote.license")

type licenseOutcome struct {
	result license.Result
	diff   string
}

func newLicenseCmd(opts *rootOptions) *cobra.Command {
	var (
		licenseFile string
		check       bool
		showDiff    bool
		excludes    []string
		jobs        int
	)

	cmd := &cobra.Command{
		Use:   "license --license-file <file> <path>...",
		Short: "Add or update the license header of C sources",
		Long: `Make every .c and .h file under the given paths start with the license
text from --license-file, wrapped in a block comment:

  /*
   * <license line>
   */

A leading block comment that differs from it is replaced. Files without
a leading block comment get the header prepended. Files whose first
block comment is never closed are skipped with a warning.

Running the command twice leaves files unchanged the second time.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newRunEnv(cmd, opts, excludes, jobs)
			if err != nil {
				return err
			}

			path := licenseFile
			if path == "" {
				path = project.ResolvePath(env.cfgPath, env.cfg.License.File)
			}
			if path == "" {
				return errors.New("no license file given: use --license-file or set license.file in the project file")
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read license file: %w", err)
			}

			run := &licenseRun{
				env:    env,
				golden: license.BuildHeader(raw),
				check:  check,
				diff:   showDiff,
			}
			return run.execute(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&licenseFile, "license-file", "l", "", "file holding the raw license text")
	cmd.Flags().BoolVar(&check, "check", false, "report files whose header is not current and exit non-zero")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff instead of writing files")
	addCommonFlags(cmd, &excludes, &jobs)

	return cmd
}

type licenseRun struct {
	env    *runEnv
	golden license.Header
	check  bool
	diff   bool
}

func (r *licenseRun) execute(ctx context.Context, targets []string) error {
	paths := r.env.collect(targets, false)
	results := batch.Run(ctx, paths, r.env.cfg.Workers(), r.applyFile)

	changed, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			r.env.errOut.Warning("%s", res.Err)
			continue
		}
		o := res.Value
		switch o.result.Status {
		case license.OK:
			r.env.out.LicenseOK(res.Path)
		case license.Updated, license.Added:
			changed++
			switch {
			case r.check:
				r.env.out.WouldChange(res.Path)
			case o.result.Status == license.Updated:
				r.env.out.UpdatingLicense(res.Path)
			default:
				r.env.out.AddingLicense(res.Path)
			}
		case license.MalformedHeader:
			failed++
			r.env.errOut.Warning("Skipping '%s' (%s)", res.Path, license.ErrMalformedHeader)
			continue
		}
		if r.diff {
			r.env.out.Raw(o.diff)
		}
	}

	r.env.out.Summary(len(results), changed, failed)
	if err := failedError(failed, len(results)); err != nil {
		return err
	}
	if r.check && changed > 0 {
		return fmt.Errorf("%d files need a license update", changed)
	}
	return nil
}

func (r *licenseRun) applyFile(ctx context.Context, path string) (licenseOutcome, error) {
	src, err := readSource(path)
	if err != nil {
		return licenseOutcome{}, err
	}
	o := licenseOutcome{result: license.Apply(r.golden, src)}
	if !o.result.NeedsWrite() || r.check {
		return o, nil
	}
	if r.diff {
		o.diff, err = report.Diff(path, src, o.result.Content)
		return o, err
	}
	if err := project.WriteFile(path, o.result.Content, 0644); err != nil {
		return o, fmt.Errorf("write %s: %w", path, err)
	}
	licenseLog.Debugf("%s: %s", path, o.result.Status)
	return o, nil
}
