package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, " ", c.Separator)
	assert.Equal(t, []string{"**/*.mcfunction"}, c.Include)
	assert.NoError(t, c.Validate())
	assert.Empty(t, c.Path())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".cmdtree.toml", `
separator = ","
separator_count = 1
include = ["functions/**/*.mcfunction"]
exclude = ["**/generated/**"]
log_level = "debug"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ",", c.Separator)
	assert.Equal(t, 1, c.SeparatorCount)
	assert.Equal(t, []string{"functions/**/*.mcfunction"}, c.Include)
	assert.Equal(t, []string{"**/generated/**"}, c.Exclude)
	assert.Equal(t, "#", c.CommentPrefix)
	assert.Equal(t, 4, c.Verbosity())
	assert.Equal(t, path, c.Path())
	assert.NoError(t, c.Validate())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yml", "separator: \"\\t\"\ncomment_prefix: \"//\"\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", c.Separator)
	assert.Equal(t, "//", c.CommentPrefix)
	assert.Equal(t, "error", c.LogLevel)
}

func TestLoadEmptyYAML(t *testing.T) {
	c, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Parse([]byte("separater = \",\"\n"), FormatTOML)
	assert.ErrorContains(t, err, "separater")

	_, err = Parse([]byte("separater: x\n"), FormatYAML)
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".cmdtree.yaml", "separator_count: 2\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, 2, c.SeparatorCount)
	assert.Equal(t, filepath.Join(root, ".cmdtree.yaml"), c.Path())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeparator:      ";",
		EnvSeparatorCount: "3",
		EnvLogLevel:       "info",
	}
	c := Default()
	require.NoError(t, c.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, ";", c.Separator)
	assert.Equal(t, 3, c.SeparatorCount)
	assert.Equal(t, 3, c.Verbosity())

	env[EnvSeparatorCount] = "many"
	assert.Error(t, Default().ApplyEnv(func(k string) string { return env[k] }))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "CMDTREE_TEST_LOADENV=yes\n")
	t.Setenv("CMDTREE_TEST_LOADENV", "")
	os.Unsetenv("CMDTREE_TEST_LOADENV")

	require.NoError(t, LoadEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", os.Getenv("CMDTREE_TEST_LOADENV"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty separator", func(c *Config) { c.Separator = "" }},
		{"long separator", func(c *Config) { c.Separator = "--" }},
		{"negative count", func(c *Config) { c.SeparatorCount = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"no include", func(c *Config) { c.Include = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParserOptions(t *testing.T) {
	c := Default()
	assert.Len(t, c.ParserOptions(), 1)
	c.SeparatorCount = 2
	assert.Len(t, c.ParserOptions(), 2)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, detectFormat("x.YAML"))
	assert.Equal(t, FormatYAML, detectFormat("x.yml"))
	assert.Equal(t, FormatTOML, detectFormat("x.toml"))
	assert.Equal(t, FormatTOML, detectFormat("x"))
	assert.Equal(t, "yaml", FormatYAML.String())
}
