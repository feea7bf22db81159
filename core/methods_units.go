// SPDX-License-Identifier: MIT

// File: methods_units.go
// Role: Unit insertion and read-only unit queries.

package core

import (
	"fmt"
	"math"
	"sort"
)

// AddUnit inserts u into the graph.
//
// Returns ErrNegativePopulation or ErrBadGeometry for invalid attributes and
// ErrUnitExists when u.ID is already present. Units cannot be replaced.
func (g *Graph) AddUnit(u Unit) error {
	if err := validateUnit(u); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.units[u.ID]; ok {
		return fmt.Errorf("%w: %d", ErrUnitExists, u.ID)
	}
	cp := u
	g.units[u.ID] = &cp
	g.adjacency[u.ID] = make(map[int]int)
	g.population += u.Population

	return nil
}

func validateUnit(u Unit) error {
	if math.IsNaN(u.Population) || math.IsInf(u.Population, 0) || u.Population < 0 {
		return fmt.Errorf("%w: unit %d population %v", ErrNegativePopulation, u.ID, u.Population)
	}
	for _, v := range [...]float64{u.Area, u.Perimeter} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: unit %d area %v perimeter %v", ErrBadGeometry, u.ID, u.Area, u.Perimeter)
		}
	}

	return nil
}

// HasUnit reports whether a unit with the given ID exists.
func (g *Graph) HasUnit(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.units[id]

	return ok
}

// Unit returns a copy of the unit with the given ID.
func (g *Graph) Unit(id int) (Unit, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	u, ok := g.units[id]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %d", ErrUnitNotFound, id)
	}

	return *u, nil
}

// Population returns the population of unit id, or 0 if it does not exist.
func (g *Graph) Population(id int) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if u, ok := g.units[id]; ok {
		return u.Population
	}

	return 0
}

// Units returns all unit IDs in ascending order.
func (g *Graph) Units() []int {
	g.mu.RLock()
	ids := make([]int, 0, len(g.units))
	for id := range g.units {
		ids = append(ids, id)
	}
	g.mu.RUnlock()

	sort.Ints(ids)

	return ids
}

// UnitCount returns the number of units.
func (g *Graph) UnitCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.units)
}

// TotalPopulation returns the sum of all unit populations.
func (g *Graph) TotalPopulation() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.population
}
