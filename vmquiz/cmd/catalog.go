package cmd

import (
	"github.com/sarchlab/vmquiz/problem"
	"github.com/sarchlab/vmquiz/sampling"
	"github.com/sarchlab/vmquiz/vms"
)

// newCatalog registers all problem types. They share one random source.
func newCatalog(seed int64) *problem.Catalog {
	src := sampling.NewLockedSource(seed)
	catalog := problem.NewCatalog()

	problem.Register[vms.Seed, vms.Problem](catalog,
		vms.MakeBuilder().WithSource(src).Build())

	return catalog
}
