package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/prodcon/logger"
)

// LogBuffer is an io.Writer that collects log output. Writes are
// serialized so one buffer can back loggers used by many goroutines.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Contains reports whether the output contains s.
func (b *LogBuffer) Contains(s string) bool {
	return strings.Contains(b.String(), s)
}

// Lines returns the non-empty output lines.
func (b *LogBuffer) Lines() []string {
	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CaptureLogger returns a JSON logger at level writing to a fresh
// LogBuffer. The captured output is written to the test log if the test
// fails.
func CaptureLogger(t testing.TB, level string) (*logger.Logger, *LogBuffer) {
	t.Helper()
	out := &LogBuffer{}
	log := logger.NewWithWriter(&logger.Config{Level: level, Format: "json"}, "test", out)
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("captured logs:\n%s", out.String())
		}
	})
	return log, out
}
