package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance with debug logging captured in
// the returned buffer.
func SetupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp, err := NewApp(logBuffer, appConfig)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("RSPECGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
