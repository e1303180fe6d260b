package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/specialistvlad/planegraph/internal/manifest"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{name: "defaults", cfg: Config{}},
		{name: "json debug", cfg: Config{LogFormat: "json", LogLevel: "debug"}},
		{name: "bad format", cfg: Config{LogFormat: "xml"}, expectErr: true},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.LogLevel, cfg.LogLevel)
		})
	}
}

func TestNew_CoreModules(t *testing.T) {
	var out bytes.Buffer
	cfg, err := NewConfig(Config{LogLevel: "debug"})
	require.NoError(t, err)

	a, err := New(&out, cfg, manifest.NewLoader())
	require.NoError(t, err)

	reg := a.Registry()
	assert.True(t, reg.Frozen())
	for _, name := range []string{"n.add_nn", "n.neg", "p.add_pp", "p.sum", "p.fill", registry.AssignOpName} {
		_, err := reg.Find(name)
		assert.NoError(t, err, name)
	}
	assert.Same(t, a.Logger(), reg.Logger())
	assert.NotNil(t, a.Context())
	assert.Contains(t, a.Model().Operations, "p.sqrt")
	assert.Contains(t, out.String(), "Registry validation passed.")
}

// extraModule contributes a kernel whose operation is declared in a
// manifest file on disk.
type extraModule struct{}

func (extraModule) Manifest() (string, []byte) { return "", nil }

func (extraModule) Register(r *registry.Registry) {
	r.RegisterKernel("Twice", &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			in := call.Inputs[0].Cty()
			return value.Of(in.Add(in)), nil
		},
	})
}

func TestNew_ManifestPaths(t *testing.T) {
	dir := t.TempDir()
	src := `
		operation "x.twice" {
			kernel = "Twice"
			input "a" { type = number }
			output = number
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.hcl"), []byte(src), 0o644))

	cfg, err := NewConfig(Config{ManifestPaths: []string{dir}, LogLevel: "error"})
	require.NoError(t, err)
	a, err := New(&bytes.Buffer{}, cfg, manifest.NewLoader(), extraModule{})
	require.NoError(t, err)

	id, err := a.Registry().Find("x.twice")
	require.NoError(t, err)
	op, err := a.Registry().Op(id)
	require.NoError(t, err)
	out, err := op.Invoke(a.Context(), &registry.Call{Op: op, Inputs: []value.Value{value.Number(4)}})
	require.NoError(t, err)
	assert.Equal(t, "8", out.String())
}

func TestNew_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	src := `operation "x.broken" { kernel = "Missing" }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hcl"), []byte(src), 0o644))

	cfg, err := NewConfig(Config{ManifestPaths: []string{dir}, LogLevel: "error"})
	require.NoError(t, err)
	_, err = New(&bytes.Buffer{}, cfg, manifest.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kernel 'Missing' which is not registered")
	assert.ErrorIs(t, err, registry.ErrMissingKernel)
}

// failingLoader reports a load error.
type failingLoader struct{ config.Loader }

func (failingLoader) Load(context.Context, ...string) (*config.Model, error) {
	return nil, assert.AnError
}

func TestNew_LoadFailure(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	_, err = New(&bytes.Buffer{}, cfg, failingLoader{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger("warn", "json", &out)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Equal(t, parseLevel("nonsense"), parseLevel("info"))
}
