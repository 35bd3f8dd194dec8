package clangtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

var ErrParse = errors.New("parse failed")

type Config struct {
	Clang       string // clang binary, "clang" when empty
	File        string
	Dir         string // working directory of the compile command
	CompileArgs []string
	IsCpp       bool
}

func (conf *Config) clang() string {
	if conf.Clang == "" {
		return "clang"
	}
	return conf.Clang
}

// Args returns the clang arguments that dump the AST of conf.File as JSON.
func Args(conf *Config) []string {
	args := defaultArgs(conf.IsCpp)
	args = append(args, "-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-ast-dump=json")
	args = append(args, conf.CompileArgs...)
	return append(args, conf.File)
}

// Key identifies the clang invocation described by conf. Two configs with the
// same key produce the same dump.
func Key(conf *Config) string {
	parts := append([]string{conf.clang(), conf.Dir}, Args(conf)...)
	return strings.Join(parts, "\x00")
}

// DumpAST runs clang on conf.File and streams the JSON dump to fn.
// A non-zero exit status of clang is reported as ErrParse even if fn
// consumed the dump successfully.
func DumpAST(ctx context.Context, conf *Config, fn func(r io.Reader) error) error {
	if conf.File == "" {
		return errors.New("failed to dump ast: no source file")
	}
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, conf.clang(), Args(conf)...)
	cmd.Dir = conf.Dir
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, conf.File, err)
	}

	errFn := fn(stdout)
	// let clang finish writing if fn stopped early
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s: %s", ErrParse, conf.File, msg)
	}
	if errFn != nil {
		return fmt.Errorf("%w: %s: %w", ErrParse, conf.File, errFn)
	}
	return nil
}

func defaultArgs(isCpp bool) []string {
	args := []string{"-x", "c"}
	if isCpp {
		args = []string{"-x", "c++"}
	}
	return args
}
