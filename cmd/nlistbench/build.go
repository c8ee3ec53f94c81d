package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/pairlist"
)

func newBuildCmd() *cobra.Command {
	var (
		n       int
		box     string
		pbc     string
		cutoff  float64
		seed    int64
		sort    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a PairList for N scattered positions and report timing and pair count",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := buildScene(n, box, pbc, cutoff, seed)
			if err != nil {
				return err
			}

			start := time.Now()
			geom, err := nlist.NewCellGeometry(sc.cell, sc.pbc, sc.cutoff)
			if err != nil {
				return fmt.Errorf("nlistbench build: %w", err)
			}
			lb, err := nlist.NewLinkedBins[int32](geom, sc.positions)
			if err != nil {
				return fmt.Errorf("nlistbench build: %w", err)
			}
			records := pairlist.Build[float64, int32](geom, lb, sc.positions)
			pl := pairlist.FromRecords(records, sc.n)
			if sort {
				pl.SortBySite()
			}
			elapsed := time.Since(start)

			fmt.Printf("sites=%d pairs=%d bins=%d elapsed=%s\n", sc.n, pl.Len(), geom.BinCount(), elapsed)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 500, "number of sites")
	cmd.Flags().StringVar(&box, "box", "20,20,20", "cell edge lengths, comma-separated")
	cmd.Flags().StringVar(&pbc, "pbc", "true,true,true", "periodicity per axis, comma-separated")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 2.5, "neighbour cutoff radius")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for scattering positions")
	cmd.Flags().BoolVar(&sort, "sort", true, "sort the pair list by site before reporting")

	return cmd
}
