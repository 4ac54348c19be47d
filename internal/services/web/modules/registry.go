// Package modules lists the web modules mounted by default.
package modules

import (
	module "github.com/louisbranch/navecho/internal/services/web/module"
	"github.com/louisbranch/navecho/internal/services/web/modules/about"
	"github.com/louisbranch/navecho/internal/services/web/modules/public"
)

// Module aliases the module interface contract.
type Module = module.Module

// Default returns the stable web modules in mount order.
func Default() []Module {
	return []Module{
		public.New(),
		about.New(),
	}
}
