package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a manifest file may contain.
type fileRoot struct {
	Operations []*Operation `hcl:"operation,block"`
	Remain     hcl.Body     `hcl:",remain"`
}

// Operation is the HCL schema of an `operation` block.
type Operation struct {
	Name        string         `hcl:"name,label"`
	DisplayName string         `hcl:"display_name,optional"`
	Description string         `hcl:"description,optional"`
	Kernel      string         `hcl:"kernel,optional"`
	Inputs      []*Input       `hcl:"input,block"`
	Output      hcl.Expression `hcl:"output,optional"`
}

// Input is the HCL schema of an `input` block inside an operation.
type Input struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}
