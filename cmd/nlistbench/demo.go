package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/pairlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the two-particle and single-particle-periodic-self-image scenarios and print the pair list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := demoTwoParticles(); err != nil {
				return err
			}
			fmt.Println()
			return demoPeriodicSelfImages()
		},
	}
}

// demoTwoParticles is the two-particle, non-periodic scenario: two sites
// 1.0 apart in a 10x10x10 box with cutoff 1.5, expected to produce exactly
// one pair in each direction.
func demoTwoParticles() error {
	fmt.Println("scenario: two particles, non-periodic")

	cell := vec3.Mat3[float64]{
		{10, 0, 0},
		{0, 10, 0},
		{0, 0, 10},
	}
	positions := []vec3.Vec3[float64]{
		{0, 0, 0},
		{1, 0, 0},
	}

	geom, err := nlist.NewCellGeometry(cell, nlist.Pbc{false, false, false}, 1.5)
	if err != nil {
		return err
	}
	lb, err := nlist.NewLinkedBins[int32](geom, positions)
	if err != nil {
		return err
	}
	records := pairlist.Build[float64, int32](geom, lb, positions)
	pl := pairlist.FromRecords(records, len(positions))

	pl.PairIter(func(i, j int32, abs float64, r vec3.Vec3[float64]) {
		fmt.Printf("  (i=%d, j=%d, |r|=%.4f, r_vec=%v)\n", i, j, abs, r)
	})
	return nil
}

// demoPeriodicSelfImages is the single-particle, fully-periodic scenario:
// one site in a 2x2x2 periodic box with cutoff 2.1, expected to produce
// exactly 6 periodic self-images, one along each of ±x, ±y, ±z.
func demoPeriodicSelfImages() error {
	fmt.Println("scenario: single particle, periodic self-images")

	cell := vec3.Mat3[float64]{
		{2, 0, 0},
		{0, 2, 0},
		{0, 0, 2},
	}
	positions := []vec3.Vec3[float64]{{0, 0, 0}}

	geom, err := nlist.NewCellGeometry(cell, nlist.Pbc{true, true, true}, 2.1)
	if err != nil {
		return err
	}
	lb, err := nlist.NewLinkedBins[int32](geom, positions)
	if err != nil {
		return err
	}
	records := pairlist.Build[float64, int32](geom, lb, positions)
	pl := pairlist.FromRecords(records, len(positions))

	fmt.Printf("  self-image count: %d\n", pl.Len())
	pl.PairIter(func(i, j int32, abs float64, r vec3.Vec3[float64]) {
		fmt.Printf("  (i=%d, j=%d, |r|=%.4f, r_vec=%v)\n", i, j, abs, r)
	})
	return nil
}
