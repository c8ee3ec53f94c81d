package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/contrib/assembly"
	"github.com/latticeforge/nlist/nlist/pairlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

func newBenchCmd() *cobra.Command {
	var (
		n      int
		box    string
		pbc    string
		cutoff float64
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Build once, then repeat a pair-symmetric assembly across thread counts 1..GOMAXPROCS",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := buildScene(n, box, pbc, cutoff, seed)
			if err != nil {
				return err
			}

			geom, err := nlist.NewCellGeometry(sc.cell, sc.pbc, sc.cutoff)
			if err != nil {
				return fmt.Errorf("nlistbench bench: %w", err)
			}
			lb, err := nlist.NewLinkedBins[int32](geom, sc.positions)
			if err != nil {
				return fmt.Errorf("nlistbench bench: %w", err)
			}
			records := pairlist.Build[float64, int32](geom, lb, sc.positions)
			pl := pairlist.FromRecords(records, sc.n)
			pl.SortBySite()

			comb := assembly.ScalarCombiner[float64]()

			maxProcs := runtime.GOMAXPROCS(0)
			for threads := 1; threads <= maxProcs; threads++ {
				nlist.SetMaxThreads(threads)
				out := make([]float64, pl.N)

				start := time.Now()
				err := assembly.MapPairsSymmetric[float64, int32](pl, comb, func(abs float64, r vec3.Vec3[float64]) float64 {
					return abs
				}, out)
				elapsed := time.Since(start)
				if err != nil {
					return fmt.Errorf("nlistbench bench: %w", err)
				}

				var total float64
				for _, v := range out {
					total += v
				}
				fmt.Printf("threads=%d elapsed=%s total=%.6f\n", threads, elapsed, total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 2000, "number of sites")
	cmd.Flags().StringVar(&box, "box", "20,20,20", "cell edge lengths, comma-separated")
	cmd.Flags().StringVar(&pbc, "pbc", "true,true,true", "periodicity per axis, comma-separated")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 2.5, "neighbour cutoff radius")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for scattering positions")

	return cmd
}
