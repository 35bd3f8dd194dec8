package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory when there is one.
func LoadEnv() {
	_ = godotenv.Load()
}

// ReadConfFile reads a config file; "-" reads stdin.
func ReadConfFile(cfgFile string) ([]byte, error) {
	if cfgFile == "" {
		cfgFile = LLCPPTPL_CFG
	}
	_, file := filepath.Split(cfgFile)
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(cfgFile)
}

func isTOML(cfgFile string) bool {
	return strings.EqualFold(filepath.Ext(cfgFile), ".toml")
}

// GetConfByByte decodes a config, as TOML when isToml is set and as JSON otherwise.
func GetConfByByte(data []byte, isToml bool) (*Config, error) {
	conf := NewDefault()
	if isToml {
		if _, err := toml.Decode(string(data), conf); err != nil {
			return nil, fmt.Errorf("%w: failed to parse TOML: %v", ErrConfig, err)
		}
		return conf, nil
	}
	if err := json.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrConfig, err)
	}
	return conf, nil
}

func GetConfFromFile(cfgFile string) (*Config, error) {
	data, err := ReadConfFile(cfgFile)
	if err != nil {
		return nil, err
	}
	conf, err := GetConfByByte(data, isTOML(cfgFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgFile, err)
	}
	return conf, nil
}

func GetConfFromStdin() (*Config, error) {
	return GetConfFromFile("-")
}

// Load reads cfgFile and expands its environment references. When cfgFile is
// empty, llcpptpl.cfg in the working directory is used if present and the
// defaults otherwise.
func Load(cfgFile string) (*Config, error) {
	LoadEnv()
	var conf *Config
	if cfgFile == "" {
		if _, err := os.Stat(LLCPPTPL_CFG); err != nil {
			conf = NewDefault()
		} else {
			cfgFile = LLCPPTPL_CFG
		}
	}
	if conf == nil {
		var err error
		if conf, err = GetConfFromFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if conf.Jobs < 0 {
		return nil, fmt.Errorf("%s: %w: jobs must not be negative", cfgFile, ErrConfig)
	}
	conf.ExpandEnv()
	return conf, nil
}
