// Command nlistbench builds, benchmarks and demonstrates nlist neighbour
// lists from the command line.
//
// Usage:
//
//	nlistbench build --n 500 --cutoff 2.5 --box 20,20,20 --pbc true,true,true
//	nlistbench bench --n 2000 --cutoff 2.5 --box 20,20,20
//	nlistbench demo
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "nlistbench",
		Short: "Build, benchmark and demo nlist neighbour lists",
	}
	root.AddCommand(newBuildCmd(), newBenchCmd(), newDemoCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("nlistbench: %v", err)
	}
}
