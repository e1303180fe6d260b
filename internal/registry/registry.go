package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all kernel modules must implement to be
// registered. Register binds the module's Go kernels; Manifest returns the
// HCL source declaring the module's operations.
type Module interface {
	Register(r *Registry)
	Manifest() (filename string, src []byte)
}

// Registry holds the operation table and the kernel bindings for one
// application instance.
type Registry struct {
	logger *slog.Logger

	ops     []*Operation
	byName  map[string]OpID
	kernels map[string]*RegisteredKernel

	frozen     atomic.Bool
	freezeOnce sync.Once

	constantOp OpID
	assignOp   OpID
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry and by every graph built
// over it.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a registry holding only the builtin operations.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:  slog.Default(),
		byName:  make(map[string]OpID),
		kernels: make(map[string]*RegisteredKernel),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerBuiltins()
	return r
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Define adds an operation. OpIDs are assigned densely in definition order.
func (r *Registry) Define(def *config.OperationDefinition) (OpID, error) {
	if r.frozen.Load() {
		return NoOp, fmt.Errorf("%w: cannot define %q", ErrFrozen, def.Name)
	}
	if def.Name == "" {
		return NoOp, fmt.Errorf("operation name cannot be empty")
	}
	if _, exists := r.byName[def.Name]; exists {
		return NoOp, fmt.Errorf("%w: %q", ErrDuplicateOperation, def.Name)
	}

	op := &Operation{
		ID:          OpID(len(r.ops)),
		Name:        def.Name,
		DisplayName: def.DisplayName,
		Description: def.Description,
		Arity:       def.Arity(),
		Kernel:      def.Kernel,
		OutputType:  def.Output,
	}
	if op.DisplayName == "" {
		op.DisplayName = op.Name
	}
	if op.OutputType == cty.NilType {
		op.OutputType = cty.DynamicPseudoType
	}
	for _, in := range def.Inputs {
		op.InputNames = append(op.InputNames, in.Name)
		op.InputTypes = append(op.InputTypes, in.Type)
	}

	r.ops = append(r.ops, op)
	r.byName[op.Name] = op.ID
	r.logger.Debug("Defined operation.", "op", op.Name, "op_id", op.ID, "arity", op.Arity, "kernel", op.Kernel)
	return op.ID, nil
}

// PopulateDefinitionsFromModel defines every operation of the loaded model.
// Operations are defined in sorted name order so that OpIDs do not depend on
// manifest file order.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) error {
	for _, name := range model.Names() {
		if _, err := r.Define(model.Operations[name]); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves an operation name to its OpID.
func (r *Registry) Find(name string) (OpID, error) {
	id, ok := r.byName[name]
	if !ok {
		return NoOp, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return id, nil
}

// Op returns the operation with the given id.
func (r *Registry) Op(id OpID) (*Operation, error) {
	if int64(id) >= int64(len(r.ops)) {
		return nil, fmt.Errorf("%w: op id %d", ErrUnknownOperation, id)
	}
	return r.ops[id], nil
}

// Operations returns every defined operation in OpID order.
func (r *Registry) Operations() []*Operation {
	out := make([]*Operation, len(r.ops))
	copy(out, r.ops)
	return out
}

// ConstantOp is the operation of constant (source) nodes.
func (r *Registry) ConstantOp() OpID {
	return r.constantOp
}

// AssignOp is the identity operation.
func (r *Registry) AssignOp() OpID {
	return r.assignOp
}

// Freeze seals the registry and binds every operation to its kernel.
// Freezing is idempotent and safe to call from several goroutines.
func (r *Registry) Freeze() {
	r.freezeOnce.Do(func() {
		for _, op := range r.ops {
			if op.Kernel == "" {
				continue
			}
			if k, ok := r.kernels[op.Kernel]; ok {
				op.fn = k.Fn
			}
		}
		r.frozen.Store(true)
		r.logger.Debug("Registry frozen.", "operations", len(r.ops), "kernels", len(r.kernels))
	})
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}
