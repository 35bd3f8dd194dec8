package config

import (
	"errors"
	"os"
	"strings"

	"github.com/goplus/llgo/xtool/env"
)

const LLCPPTPL_CFG = "llcpptpl.cfg"

// LLCPPTPL_CLANG names the environment variable that overrides the clang binary.
const LLCPPTPL_CLANG = "LLCPPTPL_CLANG"

var ErrConfig = errors.New("config error")

// Config is the content of llcpptpl.cfg (JSON) or an equivalent TOML file.
type Config struct {
	CFlags    string            `json:"cflags,omitempty" toml:"cflags"`
	Std       string            `json:"std,omitempty" toml:"std"`
	Clang     string            `json:"clang,omitempty" toml:"clang"`
	HeaderMap map[string]string `json:"headerMap,omitempty" toml:"headerMap"`
	Jobs      int               `json:"jobs,omitempty" toml:"jobs"`
}

func NewDefault() *Config {
	return &Config{Clang: "clang"}
}

// CompileArgs returns the expanded cflags split into arguments, with the
// language standard appended when one is configured.
func (c *Config) CompileArgs() []string {
	args := strings.Fields(c.CFlags)
	if c.Std != "" {
		args = append(args, "-std="+c.Std)
	}
	return args
}

// ExpandEnv resolves $(cmd) and $VAR references in cflags, e.g.
// "$(pkg-config --cflags fmt)", and applies the clang override from the
// environment.
func (c *Config) ExpandEnv() {
	c.CFlags = env.ExpandEnv(c.CFlags)
	if clang := strings.TrimSpace(os.Getenv(LLCPPTPL_CLANG)); clang != "" {
		c.Clang = clang
	}
	if c.Clang == "" {
		c.Clang = "clang"
	}
}
