package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dhamidi/gparse/format"
	"github.com/dhamidi/gparse/groovy"
	"github.com/dhamidi/gparse/parse"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var checkLog = commonlog.GetLogger("gparse.check")

var errTimeout = errors.New("timed out")

// parseFile is replaced in tests.
var parseFile = groovy.ParseFile

func newCheckCmd(cfg *Config) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <path|glob>...",
		Short: "Report syntax errors in Groovy files",
		Long: `Parse every matching file and report its syntax errors. Arguments may be
files, directories (searched with the configured include glob) or
doublestar globs such as 'src/**/*.groovy'. Files are parsed
concurrently; the command fails if any file has errors.

A file that exceeds the timeout is reported as timed out. Its parse keeps
its job slot until it finishes, so at most --jobs parses run at once.`,
		Args: cobra.MinimumNArgs(1),
	}
	over := cfg.bindFlags(cmd.Flags())
	cmd.Flags().IntVarP(&over.Jobs, "jobs", "j", cfg.Jobs, "number of files parsed at once")
	cmd.Flags().DurationVarP(&over.Timeout, "timeout", "t", cfg.Timeout, "timeout per file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.merge(cmd.Flags(), over)
		if err := c.validate(); err != nil {
			return err
		}
		files, err := expandArgs(args, c.Include)
		if err != nil {
			return err
		}
		out := io.Writer(os.Stdout)
		if quiet {
			out = io.Discard
		}
		return runCheck(cmd.Context(), out, files, &c)
	}

	return cmd
}

// expandArgs turns files, directories and glob patterns into a sorted list
// of distinct file names.
func expandArgs(args []string, include string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil {
			if !info.IsDir() {
				add(arg)
				continue
			}
			matches, err := doublestar.Glob(os.DirFS(arg), include, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("search %s: %w", arg, err)
			}
			for _, m := range matches {
				add(filepath.Join(arg, filepath.FromSlash(m)))
			}
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("invalid pattern: %s", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	sort.Strings(files)
	return files, nil
}

type checkResult struct {
	file    string
	src     []byte
	tree    *parse.Tree
	err     error
	elapsed time.Duration
}

func runCheck(ctx context.Context, out io.Writer, files []string, c *Config) error {
	cache, err := parse.NewBlockCache(c.CacheSize)
	if err != nil {
		return err
	}

	results := make([]checkResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for i, file := range files {
		g.Go(func() error {
			results[i] = checkFile(ctx, file, c, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs *multierror.Error
	syntaxErrors := 0
	for _, r := range results {
		switch {
		case r.err != nil:
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.file, r.err))
		case len(r.tree.Errors) > 0:
			syntaxErrors += len(r.tree.Errors)
			if err := format.NewDiagnosticEncoder(out, r.src).Encode(r.tree); err != nil {
				return err
			}
			errs = multierror.Append(errs, fmt.Errorf("%s: %d syntax errors", r.file, len(r.tree.Errors)))
		default:
			checkLog.Debugf("%s: ok in %s", r.file, r.elapsed)
		}
	}
	fmt.Fprintf(out, "%d files checked, %d syntax errors\n", len(files), syntaxErrors)
	return errs.ErrorOrNil()
}

// checkFile parses one file. The parse runs in its own goroutine so a
// slow file is reported once the timeout passes; checkFile still waits for
// the parse to end before returning.
func checkFile(ctx context.Context, file string, c *Config, cache *parse.BlockCache) checkResult {
	src, err := os.ReadFile(file)
	if err != nil {
		return checkResult{file: file, err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	done := make(chan *parse.Tree, 1)
	start := time.Now()
	go func() {
		opts := append(c.options(file), parse.WithBlockCache(cache), parse.WithLogger(checkLog))
		tree := parseFile(file, src, opts...)
		if c.Lazy {
			tree.ExpandAll()
		}
		done <- tree
	}()

	select {
	case tree := <-done:
		return checkResult{file: file, src: src, tree: tree, elapsed: time.Since(start)}
	case <-ctx.Done():
		checkLog.Warningf("%s: %s after %s", file, errTimeout, c.Timeout)
		<-done
		return checkResult{file: file, err: errTimeout}
	}
}
