package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jsplit/domain"
)

func TestNewProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(false)
	assert.False(t, pm.IsInteractive())
	assert.IsType(t, SilentProgress{}, pm)
}

func TestIsInteractiveEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.False(t, IsInteractiveEnvironment())

	t.Setenv("CI", "")
	t.Setenv("TERM", "dumb")
	assert.False(t, IsInteractiveEnvironment())
}

func TestSilentProgress(t *testing.T) {
	pm := SilentProgress{}
	task := pm.StartTask("Analyzing files", 100)
	require.NotNil(t, task)

	task.Increment(10)
	task.Describe("src/a.js")
	task.Complete()
	pm.Close()
}

func TestTerminalProgress_RendersToWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewTerminalProgress(&buf)
	assert.True(t, pm.IsInteractive())

	task := pm.StartTask("Analyzing files", 2)
	task.Describe("src/deep/a.js")
	task.Increment(1)
	task.Increment(1)
	task.Complete()
	pm.Close()

	assert.NotEmpty(t, buf.String())
	assert.Empty(t, pm.bars)
}

func TestFileBar_DescribeUsesBaseName(t *testing.T) {
	var buf bytes.Buffer
	task := NewTerminalProgress(&buf).StartTask("Analyzing files", 3)
	task.Describe("src/deep/a.js")
	task.Increment(1)

	assert.Contains(t, buf.String(), "Analyzing files a.js")
	assert.NotContains(t, buf.String(), "src/deep")
}

func TestProgressInterfaces(t *testing.T) {
	var _ domain.ProgressManager = &TerminalProgress{}
	var _ domain.TaskProgress = &fileBar{}
	var _ domain.ProgressManager = SilentProgress{}
	var _ domain.TaskProgress = NoOpTaskProgress{}
}
