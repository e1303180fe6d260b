package app

import (
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/modules/planeops"
	"github.com/specialistvlad/planegraph/modules/scalarops"
)

// coreModules is the definitive list of all kernel modules compiled into
// the library. They are used when the caller supplies none.
var coreModules = []registry.Module{
	&scalarops.Module{},
	&planeops.Module{},
}
