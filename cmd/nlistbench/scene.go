package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/latticeforge/nlist/nlist"
	"github.com/latticeforge/nlist/nlist/vec3"
)

// scene bundles the inputs build/bench need to run a PairBuilder: an
// orthorhombic (diagonal) cell, periodicity flags, cutoff, and a set of
// uniformly-scattered positions inside the cell.
type scene struct {
	cell     vec3.Mat3[float64]
	pbc      nlist.Pbc
	cutoff   float64
	n        int
	positions []vec3.Vec3[float64]
}

func buildScene(n int, boxFlag, pbcFlag string, cutoff float64, seed int64) (*scene, error) {
	box, err := parseBox(boxFlag)
	if err != nil {
		return nil, err
	}
	pbc, err := parsePbc(pbcFlag)
	if err != nil {
		return nil, err
	}

	cell := vec3.Mat3[float64]{
		{box[0], 0, 0},
		{0, box[1], 0},
		{0, 0, box[2]},
	}

	r := rand.New(rand.NewSource(seed))
	positions := make([]vec3.Vec3[float64], n)
	for i := range positions {
		positions[i] = vec3.Vec3[float64]{
			r.Float64() * box[0],
			r.Float64() * box[1],
			r.Float64() * box[2],
		}
	}

	return &scene{cell: cell, pbc: pbc, cutoff: cutoff, n: n, positions: positions}, nil
}

func parseBox(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("nlistbench: -box wants 3 comma-separated lengths, got %q", s)
	}
	var box [3]float64
	for k, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("nlistbench: -box component %q: %w", p, err)
		}
		box[k] = v
	}
	return box, nil
}

func parsePbc(s string) (nlist.Pbc, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nlist.Pbc{}, fmt.Errorf("nlistbench: -pbc wants 3 comma-separated booleans, got %q", s)
	}
	var pbc nlist.Pbc
	for k, p := range parts {
		v, err := strconv.ParseBool(strings.TrimSpace(p))
		if err != nil {
			return nlist.Pbc{}, fmt.Errorf("nlistbench: -pbc component %q: %w", p, err)
		}
		pbc[k] = v
	}
	return pbc, nil
}
