package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	Info(CatBridge, "installed sinks", "repositories", 2, "generation", 7)

	line := buf.String()
	require.Contains(t, line, "[INFO] [bridge] installed sinks")
	require.Contains(t, line, "repositories=2")
	require.Contains(t, line, "generation=7")
	require.True(t, strings.HasSuffix(line, "\n"))
}

func TestLog_OrphanKey(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	Warn(CatWallet, "odd", "chain")
	require.Contains(t, buf.String(), "chain=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Error(CatUI, "visible")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "visible")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	SetEnabled(false)

	Error(CatUI, "dropped")
	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	ErrorErr(CatManager, "mount failed", os.ErrNotExist)
	ErrorErr(CatManager, "nil error", nil)

	require.Contains(t, buf.String(), "error=file does not exist")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_WriterSharesDestination(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	_, err := Writer().Write([]byte("from zap\n"))
	require.NoError(t, err)
	require.Equal(t, "from zap\n", buf.String())
}

func TestLog_ListenerReceivesEntries(t *testing.T) {
	InitWriter(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatConfig, "loaded")

	msg := listener.Listen()()
	event, ok := msg.(LogEvent)
	require.True(t, ok)
	require.Contains(t, event.Payload, "[config] loaded")
}

func TestLog_InitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)

	Info(CatConfig, "to file")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("trace"))
	require.Equal(t, LevelWarn, ParseLevel("WARN"))
	require.Equal(t, LevelError, ParseLevel("none"))
	require.Equal(t, LevelInfo, ParseLevel("whatever"))
}
