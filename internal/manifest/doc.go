// Package manifest is the HCL implementation of config.Loader. It reads
// `operation` blocks from .hcl files or embedded sources and translates
// them into the format-agnostic config.Model.
//
// A manifest looks like:
//
//	operation "p.add_pp" {
//	  display_name = "add"
//	  kernel       = "AddPlanePlane"
//	  input "a" { type = plane }
//	  input "b" { type = plane }
//	  output = plane
//	}
package manifest
