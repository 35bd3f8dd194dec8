package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/goplus/llcpptpl/cl"
	"github.com/goplus/llcpptpl/config"
	"github.com/goplus/llcpptpl/internal/clangast"
	"github.com/goplus/llcpptpl/internal/clangtool"
	"github.com/goplus/llcpptpl/internal/compdb"
	"github.com/goplus/llcpptpl/internal/cxxwrite"
	"github.com/goplus/llcpptpl/internal/report"
	xerrors "github.com/qiniu/x/errors"
	"golang.org/x/sync/errgroup"
)

const unitCacheSize = 64

// errReported marks an error whose details were already printed.
var errReported = errors.New("analysis failed")

var errColor = color.New(color.FgRed, color.Bold)

type options struct {
	buildPath     string
	extraArgs     []string
	cfgFile       string
	jobs          int
	verbose       bool
	debug         bool
	merge         bool
	emitInstances string
	emitExtern    string
	clang         string
	color         string
}

type parseFunc func(ctx context.Context, conf *clangtool.Config) (*clangast.Unit, error)

type driver struct {
	conf    *config.Config
	table   config.HeaderTable
	db      *compdb.DB // nil without a compilation database
	extra   []string
	jobs    int
	verbose bool
	debug   bool
	parse   parseFunc
	units   *clangtool.Cache[*clangast.Unit]
}

type fileResult struct {
	file    string
	reg     cl.Registry
	matches bytes.Buffer
	err     error
}

func splitAtDash(args []string, dash int) (files, compileArgs []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func run(ctx context.Context, opts *options, files []string, stdout, stderr io.Writer) error {
	d, err := newDriver(opts)
	if err != nil {
		return err
	}
	results := d.analyze(ctx, files)
	return d.emit(opts, results, stdout, stderr)
}

func newDriver(opts *options) (*driver, error) {
	conf, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.clang != "" {
		conf.Clang = opts.clang
	}
	d := &driver{
		conf:    conf,
		table:   config.NewHeaderTable(conf.HeaderMap),
		extra:   opts.extraArgs,
		jobs:    firstPositive(opts.jobs, conf.Jobs, runtime.NumCPU()),
		verbose: opts.verbose,
		debug:   opts.debug,
	}
	if d.debug {
		log.Printf("header table: %d entries, %d jobs", d.table.Len(), d.jobs)
	}
	if opts.buildPath != "" {
		if d.db, err = compdb.Load(opts.buildPath); err != nil {
			return nil, err
		}
		if d.debug {
			log.Printf("compilation database %s: %d commands", opts.buildPath, d.db.Len())
		}
	}
	if d.units, err = clangtool.NewCache[*clangast.Unit](unitCacheSize); err != nil {
		return nil, err
	}
	d.parse = func(ctx context.Context, tc *clangtool.Config) (*clangast.Unit, error) {
		return d.units.Do(clangtool.Key(tc), func() (*clangast.Unit, error) {
			return parseUnit(ctx, tc)
		})
	}
	return d, nil
}

func parseUnit(ctx context.Context, tc *clangtool.Config) (unit *clangast.Unit, err error) {
	err = clangtool.DumpAST(ctx, tc, func(r io.Reader) (err error) {
		unit, err = clangast.Parse(r, tc.File)
		return
	})
	return
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 1
}

// toolConfig returns the clang invocation for file. Flags come from the
// compilation database, then the config file, then the command line.
func (d *driver) toolConfig(file string) (*clangtool.Config, error) {
	tc := &clangtool.Config{Clang: d.conf.Clang, File: file, IsCpp: true}
	if d.db != nil {
		cmd, err := d.db.Lookup(file)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		args, err := cmd.Args()
		if err != nil {
			return nil, err
		}
		tc.File = abs
		tc.Dir = cmd.Directory
		tc.CompileArgs = append(tc.CompileArgs, args...)
	}
	tc.CompileArgs = append(tc.CompileArgs, d.conf.CompileArgs()...)
	tc.CompileArgs = append(tc.CompileArgs, d.extra...)
	return tc, nil
}

// analyze runs every file on its own registry. Results keep the order of
// files whatever the number of jobs.
func (d *driver) analyze(ctx context.Context, files []string) []*fileResult {
	results := make([]*fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(d.jobs)
	for i, file := range files {
		res := &fileResult{file: file}
		results[i] = res
		g.Go(func() error {
			res.reg, res.err = d.analyzeFile(ctx, file, &res.matches)
			return nil
		})
	}
	_ = g.Wait()
	if d.debug {
		log.Printf("analyzed %d files, %d translation units parsed", len(files), d.units.Len())
	}
	return results
}

func (d *driver) analyzeFile(ctx context.Context, file string, matches io.Writer) (cl.Registry, error) {
	tc, err := d.toolConfig(file)
	if err != nil {
		return nil, err
	}
	unit, err := d.parse(ctx, tc)
	if err != nil {
		return nil, err
	}
	conf := &cl.ExtractConfig{Unit: unit, Headers: d.table}
	if d.verbose {
		conf.OnMatch = func(inst *cl.Instantiation) {
			_ = report.WriteMatch(matches, inst)
		}
	}
	return cl.Extract(conf), nil
}

// emit prints the reports of the successful files and the errors of the
// others, then writes the requested C++ files from the union of all
// registries.
func (d *driver) emit(opts *options, results []*fileResult, stdout, stderr io.Writer) error {
	var errs xerrors.List
	merged := cl.NewRegistry()
	var ok []*fileResult
	for _, res := range results {
		if res.matches.Len() > 0 {
			_, _ = res.matches.WriteTo(stderr)
		}
		if res.err != nil {
			printError(stderr, res.err)
			errs.Add(res.err)
			continue
		}
		merged.Merge(res.reg)
		ok = append(ok, res)
	}

	switch {
	case opts.merge:
		if len(ok) > 0 {
			if err := report.Write(stdout, merged); err != nil {
				return err
			}
		}
	default:
		for i, res := range ok {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(stdout)
				}
				fmt.Fprintf(stdout, "// %s\n", res.file)
			}
			if err := report.Write(stdout, res.reg); err != nil {
				return err
			}
		}
	}

	if opts.emitInstances != "" {
		if err := cxxwrite.WriteFile(opts.emitInstances, merged, cxxwrite.WriteInstances); err != nil {
			printError(stderr, err)
			errs.Add(err)
		}
	}
	if opts.emitExtern != "" {
		if err := cxxwrite.WriteFile(opts.emitExtern, merged, cxxwrite.WriteExtern); err != nil {
			printError(stderr, err)
			errs.Add(err)
		}
	}
	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return nil
}

func printError(w io.Writer, err error) {
	errColor.Fprint(w, "error:")
	fmt.Fprintf(w, " %v\n", err)
}
