// Command mdflex is a minimal example driver: it seeds a cubic lattice of
// particles, runs a fixed number of Lennard-Jones iterations through the
// autopas core, and prints the tuner's chosen configuration once it
// settles. Time integration, boundary conditions and file I/O are
// explicitly out of the core's scope; this driver stops at the point
// where a real integrator would take over.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mdflex/autopas"
)

func main() {
	var (
		boxSide    = flag.Float64("box", 10, "cubic box side length")
		spacing    = flag.Float64("spacing", 1.0, "lattice spacing")
		cutoff     = flag.Float64("cutoff", 2.5, "LJ cutoff radius")
		skin       = flag.Float64("skin", 0.3, "verlet skin")
		iterations = flag.Int("iterations", 50, "number of iteratePairwise calls")
	)
	flag.Parse()

	logger := autopas.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	boxMin := [3]float64{0, 0, 0}
	boxMax := [3]float64{*boxSide, *boxSide, *boxSide}

	sim, err := autopas.New(autopas.Options{
		BoxMin: boxMin, BoxMax: boxMax,
		Cutoff: *cutoff, Skin: *skin,
		RebuildFrequency: 10,
		TuningInterval:   20,
		SamplesPerConfig: 3,
		NumWorkers:       autopas.NumConfiguredCPUs(),
		AllowedContainers: []autopas.ContainerOption{
			autopas.ContainerLinkedCells,
			autopas.ContainerVerletLists,
		},
		AllowedTraversals: []autopas.TraversalOption{
			autopas.TraversalC08,
			autopas.TraversalSliced,
			autopas.TraversalVerlet,
		},
		TuningStrategy: autopas.StrategyFullSearch,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}

	seedLattice(sim, boxMin, boxMax, *spacing)

	functor := autopas.NewLJFunctor(1.0, 1.0, *cutoff)

	for i := 0; i < *iterations; i++ {
		if err := sim.IteratePairwise(functor); err != nil {
			fmt.Fprintln(os.Stderr, "iteratePairwise failed:", err)
			os.Exit(1)
		}
		if leaving := sim.UpdateContainer(); len(leaving) > 0 {
			logger.Info("particles left the box", "count", len(leaving))
		}
	}

	fmt.Printf("final configuration: %s\n", sim.CurrentConfiguration())
	fmt.Printf("potential energy: %.6g\n", functor.Upot())
}

func seedLattice(sim *autopas.AutoPas, boxMin, boxMax [3]float64, spacing float64) {
	id := uint64(0)
	for x := boxMin[0] + spacing/2; x < boxMax[0]; x += spacing {
		for y := boxMin[1] + spacing/2; y < boxMax[1]; y += spacing {
			for z := boxMin[2] + spacing/2; z < boxMax[2]; z += spacing {
				id++
				p := autopas.NewParticle(id, [3]float64{x, y, z})
				if err := sim.AddParticle(p); err != nil {
					fmt.Fprintln(os.Stderr, "addParticle failed:", err)
					os.Exit(1)
				}
			}
		}
	}
}
