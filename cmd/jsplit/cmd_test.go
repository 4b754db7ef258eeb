package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jsplit/app"
	"github.com/ludo-technologies/jsplit/internal/config"
	"github.com/ludo-technologies/jsplit/internal/constants"
	"github.com/ludo-technologies/jsplit/internal/testutil"
	"github.com/ludo-technologies/jsplit/service"
)

const nestedSource = `
function process(items) {
  for (const item of items) {
    if (item.active) {
      if (item.count > 0) {
        console.log(item);
      }
    }
  }
}

function simple() {
  return 1;
}
`

func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "src/process.js", nestedSource)
	return dir
}

// runCLI executes the root command with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, quiet = false, false

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--quiet"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "check", "watch", "init", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()
	for _, name := range []string{"format", "json", "html", "output", "sort", "min-score", "details",
		"suggestions", "cyclomatic-threshold", "cognitive-threshold", "multiplier", "max-candidates",
		"config", "include", "exclude", "recursive", "no-gitignore", "workers"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}
	for short, long := range map[string]string{"f": "format", "o": "output", "s": "sort", "d": "details", "c": "config"} {
		flag := cmd.Flags().ShorthandLookup(short)
		require.NotNil(t, flag, "missing -%s", short)
		assert.Equal(t, long, flag.Name)
	}
}

func TestAnalyzeCmd_NoPathsError(t *testing.T) {
	_, err := runCLI(t, "analyze")
	assert.Error(t, err)
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	dir := projectDir(t)

	out, err := runCLI(t, "analyze", "--json", "--details", dir)
	require.NoError(t, err)

	var decoded struct {
		Functions []struct {
			Name            string            `json:"name"`
			Cognitive       int               `json:"cognitive"`
			Cyclomatic      int               `json:"cyclomatic"`
			MaxNesting      int               `json:"max_nesting"`
			CognitivePoints []json.RawMessage `json:"cognitive_points"`
		} `json:"functions"`
		Summary struct {
			FilesAnalyzed int `json:"files_analyzed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	// sorted by cognitive score, the zero-score function is still reported
	require.Len(t, decoded.Functions, 2)
	assert.Equal(t, "simple", decoded.Functions[1].Name)
	fn := decoded.Functions[0]
	assert.Equal(t, "process", fn.Name)
	assert.Equal(t, 6, fn.Cognitive)
	assert.Equal(t, 4, fn.Cyclomatic)
	assert.Equal(t, 2, fn.MaxNesting)
	assert.Len(t, fn.CognitivePoints, 3)
	assert.Equal(t, 1, decoded.Summary.FilesAnalyzed)
}

func TestAnalyzeCmd_TextToFile(t *testing.T) {
	dir := projectDir(t)
	report := filepath.Join(t.TempDir(), "report.txt")

	out, err := runCLI(t, "analyze", "-o", report, dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(content), "process: cognitive 6, cyclomatic 4, nesting 2")
}

func TestAnalyzeCmd_InvalidFormat(t *testing.T) {
	_, err := runCLI(t, "analyze", "--format", "xml", projectDir(t))
	assert.Error(t, err)
}

func TestAnalyzeCmd_ConfigFile(t *testing.T) {
	dir := projectDir(t)
	testutil.WriteFile(t, dir, "jsplit.config.yaml", "output:\n  format: csv\n")

	out, err := runCLI(t, "analyze", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "file,function,"), out)

	// flags win over the discovered file
	out, err = runCLI(t, "analyze", "--format", "yaml", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "name: process")
}

func TestCheckCmd_Pass(t *testing.T) {
	out, err := runCLI(t, "check", "--max-cognitive", "10", projectDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, "All checks passed")
}

func TestCheckCmd_Violations(t *testing.T) {
	out, err := runCLI(t, "check", "--max-cognitive", "5", "--json", projectDir(t))
	require.Error(t, err)

	var exitErr *CheckExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, constants.ExitCodeViolations, exitErr.Code)

	var decoded struct {
		Passed     bool `json:"passed"`
		Violations []struct {
			Rule   string `json:"rule"`
			Actual int    `json:"actual"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.False(t, decoded.Passed)
	require.Len(t, decoded.Violations, 1)
	assert.Equal(t, "max-cognitive", decoded.Violations[0].Rule)
	assert.Equal(t, 6, decoded.Violations[0].Actual)
}

func TestCheckCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no paths", []string{"check"}},
		{"missing path", []string{"check", filepath.Join(t.TempDir(), "missing")}},
		{"bad format", []string{"check", "--format", "csv", "."}},
		{"missing config", []string{"check", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			var exitErr *CheckExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, constants.ExitCodeError, exitErr.Code)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "jsplit version "))
}

func TestWatchRoots(t *testing.T) {
	dir := projectDir(t)
	file := filepath.Join(dir, "src", "process.js")

	roots := watchRoots([]string{dir, file, filepath.Join(dir, "src")})
	assert.Equal(t, []string{dir, filepath.Join(dir, "src")}, roots)
}

type recordingCache struct {
	*service.ResultCache
	invalidated []string
}

func (c *recordingCache) Invalidate(path string) {
	c.invalidated = append(c.invalidated, path)
	c.ResultCache.Invalidate(path)
}

func TestWatchSession_Changed(t *testing.T) {
	dir := projectDir(t)
	cache := &recordingCache{ResultCache: service.NewResultCache(16)}
	defer cache.Close()

	var out bytes.Buffer
	req := service.RequestFromConfig(config.DefaultConfig())
	req.Paths = []string{dir}
	req.OutputWriter = &out

	session := &watchSession{
		uc:     app.NewAnalyzeUseCase(service.NewAnalyzeService(nil, nil, cache), service.NewOutputFormatter()),
		req:    *req,
		out:    &out,
		logger: newLogger(),
		cache:  cache,
	}

	changed := filepath.Join(dir, "src", "process.js")
	session.changed(context.Background(), []string{changed})

	assert.Equal(t, []string{changed}, cache.invalidated)
	assert.Contains(t, out.String(), "1 file(s) changed")
	assert.Contains(t, out.String(), "process: cognitive 6")
}
