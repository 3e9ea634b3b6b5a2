package project

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Equal(t, "clang-format -i", cfg.Clean.Formatter)
	assert.Equal(t, "API Documentation", cfg.Doc.Title)
	assert.Equal(t, ModeSingle, cfg.Doc.Mode)
	assert.Empty(t, cfg.Exclude)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromTOML(t *testing.T) {
	content := `
jobs = 3
exclude = ["third_party/", "*.gen.h"]

[clean]
formatter = "clang-format -i --fallback-style=LLVM"
style = "file"

[doc]
title = "Widget API"
mode = "book"

[license]
file = "LICENSE_HEADER"
`
	path := filepath.Join(t.TempDir(), ".cnote.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"third_party/", "*.gen.h"}, cfg.Exclude)
	assert.Equal(t, "clang-format -i --fallback-style=LLVM", cfg.Clean.Formatter)
	assert.Equal(t, "file", cfg.Clean.Style)
	assert.Equal(t, "Widget API", cfg.Doc.Title)
	assert.Equal(t, ModeBook, cfg.Doc.Mode)
	assert.Equal(t, "LICENSE_HEADER", cfg.License.File)
}

func TestLoadFromYAML(t *testing.T) {
	content := `
jobs: 2
exclude:
  - vendor/**
clean:
  no_format: true
doc:
  title: Kernel
`
	path := filepath.Join(t.TempDir(), ".cnote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.True(t, cfg.Clean.NoFormat)
	assert.Equal(t, "clang-format -i", cfg.Clean.Formatter)
	assert.Equal(t, "Kernel", cfg.Doc.Title)
	assert.Equal(t, ModeSingle, cfg.Doc.Mode)
}

func TestLoadEmptyYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cnote.yml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialTOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cnote.toml")
	require.NoError(t, os.WriteFile(path, []byte("[doc]\ntitle = \"T\"\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "T", cfg.Doc.Title)
	assert.Equal(t, ModeSingle, cfg.Doc.Mode)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "a.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("jbos = 2\n"), 0644))
	_, err := LoadFile(tomlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jbos")

	yamlPath := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("jbos: 2\n"), 0644))
	_, err = LoadFile(yamlPath)
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"mode.toml":  "[doc]\nmode = \"pdf\"\n",
		"jobs.toml":  "jobs = -1\n",
		"broken.yml": "doc: [\n",
		"config.ini": "jobs = 1\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, path, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfigPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cnote.yaml"), []byte("jobs: 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cnote.toml"), []byte("jobs = 5\n"), 0644))

	path, ok := FindConfig(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".cnote.toml"), path)

	cfg, found, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, path, found)
	assert.Equal(t, 5, cfg.Jobs)
}

func TestWorkers(t *testing.T) {
	cfg := &Config{Jobs: 0}
	assert.Equal(t, runtime.NumCPU(), cfg.Workers())
	cfg.Jobs = 7
	assert.Equal(t, 7, cfg.Workers())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("proj", "LICENSE"), ResolvePath(filepath.Join("proj", ".cnote.toml"), "LICENSE"))
	assert.Equal(t, "LICENSE", ResolvePath("", "LICENSE"))
	assert.Equal(t, "", ResolvePath(".cnote.toml", ""))
	abs := filepath.Join(string(filepath.Separator), "etc", "LICENSE")
	assert.Equal(t, abs, ResolvePath(".cnote.toml", abs))
}
