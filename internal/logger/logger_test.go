package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return buf
}

func TestSilentByDefault(t *testing.T) {
	buf := capture(t)

	Debug("upserting %d items", 50)
	Info("sync run %s", "run-1")
	Warn("dropping batch")

	assert.Empty(t, buf.String())
}

func TestVerboseLevels(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Debug("upserting %d items", 50)
	Info("sync run %s", "run-1")
	Warn("dropping batch")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] upserting 50 items\n")
	assert.Contains(t, out, "[INFO] sync run run-1\n")
	assert.Contains(t, out, "[WARN] dropping batch\n")
}

func TestVerboseCanBeToggledOff(t *testing.T) {
	buf := capture(t)

	SetVerbose(true)
	Debug("first")
	SetVerbose(false)
	Debug("second")

	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
}

func TestConcurrentLogging(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Debug("worker message")
		}()
	}
	wg.Wait()

	assert.Contains(t, buf.String(), "[DEBUG] worker message")
}
