package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/specialistvlad/planegraph/internal/ctxlog"
	"github.com/specialistvlad/planegraph/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
// A Loader keeps one parser, so it must not be shared between goroutines.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every .hcl file under the given paths and merges all
// operation blocks into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL manifest loader started.", "path_count", len(paths))

	model := config.NewModel()

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decode(ctx, model, file, hclFile); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL manifest loading complete.", "operations", len(model.Operations))
	return model, nil
}

// LoadSource parses one in-memory manifest and merges it into model.
func (l *Loader) LoadSource(ctx context.Context, model *config.Model, filename string, src []byte) error {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.decode(ctx, model, filename, hclFile)
}

func (l *Loader) decode(ctx context.Context, model *config.Model, filename string, file *hcl.File) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, op := range root.Operations {
		def, err := translateOperation(ctx, op, filename)
		if err != nil {
			return err
		}
		if err := model.Add(def); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Decoded manifest.", "file", filename, "operations", len(root.Operations))
	return nil
}
