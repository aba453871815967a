package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatEditor, "replan", "reason", "doc", "instructions", 4)

	out := buf.String()
	assert.Contains(t, out, "[INFO] [editor] replan reason=doc instructions=4")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestLog_OrphanField(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(func() { defaultLogger = nil })

	Debug(CatConfig, "loaded", "path")

	assert.Contains(t, buf.String(), "path=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelWarn)
	t.Cleanup(func() { defaultLogger = nil })

	Debug(CatRender, "hidden")
	Info(CatRender, "hidden too")
	Warn(CatRender, "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] [render] shown")

	SetMinLevel(LevelDebug)
	Debug(CatRender, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(func() { defaultLogger = nil })

	SetEnabled(false)
	Error(CatMutate, "dropped")
	assert.Empty(t, buf.String())

	SetEnabled(true)
	ErrorErr(CatMutate, "failed", errors.New("boom"), "offset", 3)
	assert.Contains(t, buf.String(), "failed offset=3 error=boom")
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() {
		Info(CatCLI, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestInitWithTeaLog_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := InitWithTeaLog(path, "colortags")
	require.NoError(t, err)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatWatcher, "file changed", "path", "notes.md")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] [watcher] file changed path=notes.md")
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
