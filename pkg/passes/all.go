package passes

// Import all pass subpackages to register them with the global registry.
// This file triggers all init() functions in the pass packages. The import
// order here is the default pipeline order.
import (
	_ "github.com/chisellabs/chisel/pkg/passes/arith"
	_ "github.com/chisellabs/chisel/pkg/passes/logic"
	_ "github.com/chisellabs/chisel/pkg/passes/naming"
	_ "github.com/chisellabs/chisel/pkg/passes/structure"
)
