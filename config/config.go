// Package config loads cmdtree settings from .cmdtree.toml or
// .cmdtree.yaml, a .env file and CMDTREE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Filenames are the names Discover looks for, in order.
var Filenames = []string{".cmdtree.toml", ".cmdtree.yaml", ".cmdtree.yml"}

const (
	EnvConfig         = "CMDTREE_CONFIG"
	EnvSeparator      = "CMDTREE_SEPARATOR"
	EnvSeparatorCount = "CMDTREE_SEPARATOR_COUNT"
	EnvLogLevel       = "CMDTREE_LOG_LEVEL"
)

// logLevels maps level names to commonlog verbosity.
var logLevels = map[string]int{
	"none":     -2,
	"critical": -1,
	"error":    0,
	"warning":  1,
	"notice":   2,
	"info":     3,
	"debug":    4,
}

type Config struct {
	Separator      string   `toml:"separator" yaml:"separator"`
	SeparatorCount int      `toml:"separator_count" yaml:"separator_count"`
	Include        []string `toml:"include" yaml:"include"`
	Exclude        []string `toml:"exclude" yaml:"exclude"`
	CommentPrefix  string   `toml:"comment_prefix" yaml:"comment_prefix"`
	LogLevel       string   `toml:"log_level" yaml:"log_level"`

	path string
}

func Default() *Config {
	return &Config{
		Separator:     " ",
		Include:       []string{"**/*.mcfunction"},
		CommentPrefix: "#",
		LogLevel:      "error",
	}
}

// Load reads the file at path over the defaults. The format follows the
// extension; anything other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// Parse decodes data over the defaults. Unknown keys are an error.
func Parse(data []byte, format Format) (*Config, error) {
	c := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return c, nil
}

// Discover looks for one of Filenames in dir and its parents and loads
// the first found. Without a file it returns the defaults.
func Discover(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}
	for d := abs; ; d = filepath.Dir(d) {
		for _, name := range Filenames {
			candidate := filepath.Join(d, name)
			if _, err := os.Stat(candidate); err == nil {
				return Load(candidate)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("discover config: %w", err)
			}
		}
		if filepath.Dir(d) == d {
			return Default(), nil
		}
	}
}

// LoadEnv loads .env style files into the process environment. Missing
// files are ignored; existing variables are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from CMDTREE_* variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvSeparator); v != "" {
		c.Separator = v
	}
	if v := getenv(EnvSeparatorCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeparatorCount, err)
		}
		c.SeparatorCount = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if utf8.RuneCountInString(c.Separator) != 1 {
		errs = append(errs, fmt.Errorf("separator must be exactly one character, got %q", c.Separator))
	}
	if c.SeparatorCount < 0 {
		errs = append(errs, fmt.Errorf("separator_count must not be negative, got %d", c.SeparatorCount))
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if len(c.Include) == 0 {
		errs = append(errs, errors.New("include must list at least one pattern"))
	}
	return errors.Join(errs...)
}

// ParserOptions returns the parser options these settings describe.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if r, _ := utf8.DecodeRuneInString(c.Separator); r != utf8.RuneError {
		opts = append(opts, parser.WithSeparator(r))
	}
	if c.SeparatorCount > 0 {
		opts = append(opts, parser.WithSeparatorCount(c.SeparatorCount))
	}
	return opts
}

// Verbosity converts LogLevel to a commonlog verbosity.
func (c *Config) Verbosity() int {
	return logLevels[strings.ToLower(c.LogLevel)]
}

// Path is the file the config was loaded from, empty for defaults.
func (c *Config) Path() string {
	return c.path
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}
