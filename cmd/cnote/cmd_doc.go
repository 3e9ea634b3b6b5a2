package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cnote/batch"
	"github.com/dhamidi/cnote/doc"
	"github.com/dhamidi/cnote/project"
)

var docLog = commonlog.GetLogger("cnote.doc")

type fileDocs struct {
	rel     string
	entries []doc.Entry
}

func newDocCmd(opts *rootOptions) *cobra.Command {
	var (
		book     bool
		title    string
		excludes []string
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "doc <src_dir> <out_path>",
		Short: "Generate Markdown documentation from /** */ comments",
		Long: `Scan <src_dir> recursively for .c and .h files, pair every /** ... */
comment with the declaration that follows it, and write Markdown.

By default all entries go into the single file <out_path>; nothing is
written when no entries are found. With --book, <out_path> is a directory
that receives an mdBook tree: book.toml, src/SUMMARY.md, src/README.md and
one page per source file under src/api/, including files without entries.

Supported tags: @brief, @param, @return, @note and @example.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newRunEnv(cmd, opts, excludes, jobs)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				env.cfg.Doc.Title = title
			}
			if book {
				env.cfg.Doc.Mode = project.ModeBook
			}
			run := &docRun{env: env, srcDir: args[0], outPath: args[1]}
			return run.execute(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&book, "book", false, "write an mdBook tree instead of a single file")
	cmd.Flags().StringVar(&title, "title", "", "document title (default \"API Documentation\")")
	addCommonFlags(cmd, &excludes, &jobs)

	return cmd
}

type docRun struct {
	env     *runEnv
	srcDir  string
	outPath string
}

func (r *docRun) execute(ctx context.Context) error {
	info, err := os.Stat(r.srcDir)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source directory: %s is not a directory", r.srcDir)
	}

	r.env.out.Info("Scanning `%s`...", r.srcDir)
	paths := r.env.collect([]string{r.srcDir}, false)
	results := batch.Run(ctx, paths, r.env.cfg.Workers(), r.extractFile)

	var files []fileDocs
	total, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			r.env.errOut.Warning("%s", res.Err)
			continue
		}
		total += len(res.Value.entries)
		files = append(files, res.Value)
	}
	r.env.out.Info("Found %d documentation entries.", total)

	switch {
	case r.env.cfg.Doc.Mode == project.ModeBook:
		err = r.writeBook(files)
	case total == 0:
		r.env.out.Info("No entries found, skipping markdown generation.")
	default:
		err = r.writeSingle(files)
	}
	if err != nil {
		return err
	}
	return failedError(failed, len(results))
}

func (r *docRun) extractFile(ctx context.Context, path string) (fileDocs, error) {
	src, err := readSource(path)
	if err != nil {
		return fileDocs{}, err
	}
	rel, err := filepath.Rel(r.srcDir, path)
	if err != nil {
		rel = path
	}
	entries := doc.Extract(src)
	docLog.Debugf("%s: %d entries", path, len(entries))
	return fileDocs{rel: filepath.ToSlash(rel), entries: entries}, nil
}

func (r *docRun) writeSingle(files []fileDocs) error {
	r.env.out.Info("Generating markdown to `%s`...", r.outPath)
	var all []doc.Entry
	for _, f := range files {
		all = append(all, f.entries...)
	}
	if dir := filepath.Dir(r.outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := project.WriteFile(r.outPath, doc.Document(all, r.env.cfg.Doc.Title), 0644); err != nil {
		return fmt.Errorf("write %s: %w", r.outPath, err)
	}
	return nil
}

// writeBook gives every collected file a summary line and a page, even when
// the file has no entries.
func (r *docRun) writeBook(files []fileDocs) error {
	r.env.out.Info("Generating book to `%s`...", r.outPath)
	apiDir := filepath.Join(r.outPath, "src", "api")
	if err := os.MkdirAll(apiDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", apiDir, err)
	}

	title := r.env.cfg.Doc.Title
	rels := make([]string, len(files))
	for i, f := range files {
		rels[i] = f.rel
	}

	bookTOML, err := doc.BookTOML(title)
	if err != nil {
		return err
	}
	pages := map[string][]byte{
		filepath.Join(r.outPath, "book.toml"):          bookTOML,
		filepath.Join(r.outPath, "src", "SUMMARY.md"): doc.Summary(title, rels),
		filepath.Join(r.outPath, "src", "README.md"):  doc.Readme(title, rels),
	}
	for _, f := range files {
		pages[filepath.Join(apiDir, doc.SanitizeName(f.rel))] = doc.Render(f.entries, f.rel)
	}

	for path, data := range pages {
		if err := project.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
