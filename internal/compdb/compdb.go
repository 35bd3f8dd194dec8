// Package compdb reads a JSON compilation database (compile_commands.json).
package compdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
)

const FileName = "compile_commands.json"

var ErrNoCompileCommand = errors.New("no compile command")

type Command struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Command   string   `json:"command"`
	Output    string   `json:"output"`
}

type DB struct {
	cmds map[string]*Command // absolute, cleaned file path -> first command
}

// Load reads compile_commands.json from buildPath, which is either the
// database file itself or the directory that contains it.
func Load(buildPath string) (*DB, error) {
	file := buildPath
	if fi, err := os.Stat(buildPath); err == nil && fi.IsDir() {
		file = filepath.Join(buildPath, FileName)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read compilation database: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*DB, error) {
	var cmds []*Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("failed to parse compilation database: %w", err)
	}
	db := &DB{cmds: make(map[string]*Command, len(cmds))}
	for _, cmd := range cmds {
		key := cmd.path()
		if _, ok := db.cmds[key]; !ok {
			db.cmds[key] = cmd
		}
	}
	return db, nil
}

func (c *Command) path() string {
	return absPath(c.Directory, c.File)
}

func absPath(dir, file string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	return filepath.Clean(file)
}

func (db *DB) Len() int {
	return len(db.cmds)
}

// Lookup returns the compile command of file. Relative paths are taken
// relative to the current directory.
func (db *DB) Lookup(file string) (*Command, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if cmd, ok := db.cmds[absPath(wd, file)]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNoCompileCommand, file)
}

// Args returns the compiler flags of c, without the compiler itself, the
// source file and the options that select the output.
func (c *Command) Args() ([]string, error) {
	argv := c.Arguments
	if len(argv) == 0 {
		words, err := SplitCommand(c.Command)
		if err != nil {
			return nil, err
		}
		argv = words
	}
	if len(argv) == 0 {
		return nil, nil
	}
	src := c.path()
	var args []string
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-c", arg == "-MD", arg == "-MMD":
		case arg == "-o", arg == "-MF", arg == "-MT", arg == "-MQ":
			i++
		case strings.HasPrefix(arg, "-o") && len(arg) > 2:
		case !strings.HasPrefix(arg, "-") && absPath(c.Directory, arg) == src:
		case arg == "--":
		default:
			args = append(args, arg)
		}
	}
	return args, nil
}

// SplitCommand splits a shell command line into words.
func SplitCommand(cmd string) ([]string, error) {
	words, err := shellwords.Parse(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to split compile command %q: %w", cmd, err)
	}
	return words, nil
}
