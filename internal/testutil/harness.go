package testutil

import (
	"bytes"
	"sync"
	"testing"

	"github.com/specialistvlad/planegraph/internal/app"
	"github.com/specialistvlad/planegraph/internal/manifest"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness is a bootstrapped app plus the log it writes.
type Harness struct {
	App *app.App
	Log *SafeBuffer
}

// Registry is shorthand for h.App.Registry().
func (h *Harness) Registry() *registry.Registry {
	return h.App.Registry()
}

// NewHarness boots an app with debug logging captured in memory. With no
// modules, the core modules are used.
func NewHarness(t *testing.T, modules ...registry.Module) *Harness {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg, err := app.NewConfig(app.Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)

	a, err := app.New(logBuffer, cfg, manifest.NewLoader(), modules...)
	require.NoError(t, err, "app bootstrap failed, log:\n%s", logBuffer.String())

	return &Harness{App: a, Log: logBuffer}
}
