/*
 * Copyright (c) 2024 The XGo Authors (xgo.dev). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/goplus/llcpptpl/cl"
	"github.com/goplus/llcpptpl/internal/clangast"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var opts options

var rootCmd = &cobra.Command{
	Use:   "llcpptpl [flags] <source>... [-- <compile flags>]",
	Short: "Report the class template instantiations constructed in C++ sources",
	Long: `llcpptpl parses each source with clang and prints, for every class template
instantiated by a constructor call in that source, the canonical instantiated
type and the public header that declares its template.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch opts.color {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			color.NoColor = !isTerminal(os.Stderr)
		default:
			return fmt.Errorf("invalid --color %q, want auto, on or off", opts.color)
		}
		if opts.debug {
			cl.SetDebug(cl.DbgFlagAll)
			clangast.SetDebug(clangast.DbgFlagAll)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		files, compileArgs := splitAtDash(args, cmd.ArgsLenAtDash())
		if len(files) == 0 {
			return fmt.Errorf("no source file, see %s --help", cmd.Name())
		}
		opts.extraArgs = append(opts.extraArgs, compileArgs...)
		return run(cmd.Context(), &opts, files, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func main() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.buildPath, "build-path", "p", "", "directory containing compile_commands.json")
	flags.StringArrayVar(&opts.extraArgs, "extra-arg", nil, "additional argument to append to the compiler command line")
	flags.StringVar(&opts.cfgFile, "config", "", "config file, llcpptpl.cfg (JSON) or *.toml, - reads stdin")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of sources analysed in parallel")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print every accepted construction site to stderr")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.merge, "merge", false, "print one report for all sources")
	flags.StringVar(&opts.emitInstances, "emit-instances", "", "write explicit instantiation definitions to `file`")
	flags.StringVar(&opts.emitExtern, "emit-extern", "", "write extern template declarations to `file`")
	flags.StringVar(&opts.clang, "clang", "", "clang binary")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			printError(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
