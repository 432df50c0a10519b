package internal

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn)

	logger.Info("hidden %d", 1)
	logger.Debug("hidden %d", 2)
	logger.Warn("shown %d", 3)
	logger.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "shown 4")
	assert.Equal(t, LogLevelWarn, logger.GetLevel())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelInfo).With("component", "engine")

	logger.Info("computed")
	assert.Contains(t, buf.String(), "component=engine")
}

func TestLogger_WriterClose(t *testing.T) {
	out := &lockedBuffer{}
	root := NewLoggerTo(out, LogLevelInfo)
	ui := root.With("component", "UI")
	api := root.With("component", "API")

	uiWriter := ui.Writer()
	apiWriter := api.Writer()
	assert.Equal(t, 2, root.OpenWriters())

	_, err := io.WriteString(uiWriter, "GET /healthz 200\n")
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("GET /healthz 200"))
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, api.Close())
	assert.Equal(t, 0, root.OpenWriters())

	_, err = io.WriteString(uiWriter, "late\n")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	_, err = io.WriteString(apiWriter, "late\n")
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	root.Info("still logging")
	assert.Contains(t, out.String(), "still logging")
}
