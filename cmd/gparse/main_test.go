package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dhamidi/gparse/groovy"
	"github.com/dhamidi/gparse/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "custom.yaml"), "max-depth: 50\nlazy: true\ntimeout: 2s\nformat: json\n")
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.MaxDepth)
		assert.True(t, cfg.Lazy)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, defaultConfig().Include, cfg.Include)
	})

	t.Run("missing default file", func(t *testing.T) {
		t.Chdir(dir)
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, *defaultConfig(), cfg)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown format", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "bad.yaml"), "format: xml\n")
		_, err := loadConfig(path)
		assert.ErrorContains(t, err, `unknown format "xml"`)
	})
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "src", "a.groovy"), "")
	b := writeFile(t, filepath.Join(dir, "src", "nested", "b.groovy"), "")
	c := writeFile(t, filepath.Join(dir, "build.gradle"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := expandArgs([]string{dir}, defaultConfig().Include)
	require.NoError(t, err)
	assert.Equal(t, []string{c, a, b}, files)

	files, err = expandArgs([]string{filepath.Join(dir, "src", "**", "*.groovy"), a}, defaultConfig().Include)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	_, err = expandArgs([]string{filepath.Join(dir, "*.java")}, defaultConfig().Include)
	assert.ErrorContains(t, err, "no files match")
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good.groovy"), "def greet(name) {\n  println \"hello $name\"\n}\n")
	bad := writeFile(t, filepath.Join(dir, "bad.groovy"), "println(1, , 2)\n")

	for _, lazy := range []bool{false, true} {
		cfg := defaultConfig()
		cfg.Jobs = 2
		cfg.Lazy = lazy

		var out bytes.Buffer
		err := runCheck(context.Background(), &out, []string{bad, good}, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad+": 1 syntax errors")
		assert.NotContains(t, err.Error(), good)
		assert.Contains(t, out.String(), bad+":1:12: <argument> expected, got ','")
		assert.Contains(t, out.String(), "2 files checked, 1 syntax errors\n")
	}

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &out, []string{good}, defaultConfig()))
	assert.Equal(t, "1 files checked, 0 syntax errors\n", out.String())
}

func TestRunCheckTimeoutKeepsJobLimit(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, filepath.Join(dir, "a.groovy"), "a()\n"),
		writeFile(t, filepath.Join(dir, "b.groovy"), "b()\n"),
		writeFile(t, filepath.Join(dir, "c.groovy"), "c()\n"),
	}

	var running, most atomic.Int32
	orig := parseFile
	parseFile = func(name string, src []byte, opts ...parse.Option) *parse.Tree {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := most.Load()
			if n <= m || most.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		return groovy.ParseFile(name, src, opts...)
	}
	t.Cleanup(func() { parseFile = orig })

	cfg := defaultConfig()
	cfg.Jobs = 1
	cfg.Timeout = 5 * time.Millisecond

	var out bytes.Buffer
	err := runCheck(context.Background(), &out, files, cfg)
	require.Error(t, err)
	for _, f := range files {
		assert.Contains(t, err.Error(), f+": timed out")
	}
	assert.Equal(t, int32(1), most.Load())
	assert.Equal(t, int32(0), running.Load())
}
