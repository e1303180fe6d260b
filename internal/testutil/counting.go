package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// ErrKernelFailed is returned by the "t.fail" operation.
var ErrKernelFailed = errors.New("kernel failed on purpose")

const countingManifest = `
operation "t.add" {
  kernel = "CountAdd"
  input "a" { type = number }
  input "b" { type = number }
  output = number
}

operation "t.neg" {
  kernel = "CountNeg"
  input "a" { type = number }
  output = number
}

operation "t.stub" {
  description = "Has no kernel, so it never yields a value."
  input "a" { type = any }
}

operation "t.source" {
  description = "A source without a kernel."
}

operation "t.fail" {
  kernel = "Fail"
  input "a" { type = number }
  output = number
}
`

// CountingModule is a shared, self-contained kernel module for graph tests.
// It counts kernel invocations per operation name.
type CountingModule struct {
	mu    sync.Mutex
	calls map[string]int
}

// NewCountingModule creates a counting module with zeroed counters.
func NewCountingModule() *CountingModule {
	return &CountingModule{calls: make(map[string]int)}
}

// Manifest returns the module's operation declarations.
func (m *CountingModule) Manifest() (string, []byte) {
	return "testutil/counting.hcl", []byte(countingManifest)
}

// Register registers the counting kernels.
func (m *CountingModule) Register(r *registry.Registry) {
	r.RegisterKernel("CountAdd", &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number, cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			m.record(call.Op.Name)
			return value.Of(call.Inputs[0].Cty().Add(call.Inputs[1].Cty())), nil
		},
	})
	r.RegisterKernel("CountNeg", &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			m.record(call.Op.Name)
			return value.Of(call.Inputs[0].Cty().Negate()), nil
		},
	})
	r.RegisterKernel("Fail", &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			m.record(call.Op.Name)
			return value.Empty(), ErrKernelFailed
		},
	})
}

func (m *CountingModule) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

// Calls returns how many times the kernel of op ran.
func (m *CountingModule) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Total returns the number of kernel runs across all operations.
func (m *CountingModule) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}
