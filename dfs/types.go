// Package dfs defines types and options for depth-first search traversal
// over unit adjacency graphs.
package dfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil graph is passed to DFS.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartUnitNotFound indicates that the start unit does not exist.
	ErrStartUnitNotFound = errors.New("dfs: start unit not found")
)

// Graph is the read-only view DFS needs.
type Graph interface {
	HasUnit(id int) bool
	Neighbors(id int) ([]int, error)
	UnitCount() int
}

// Option configures DFS.
type Option func(*Options)

// Options holds the traversal parameters and hooks.
type Options struct {
	// Ctx is checked on entry to every unit.
	Ctx context.Context

	// OnVisit runs in pre-order; an error aborts the traversal.
	OnVisit func(id int) error

	// OnExit runs in post-order, after all descendants; an error aborts.
	OnExit func(id int) error

	// FilterNeighbor skips neighbor ids for which it returns false.
	FilterNeighbor func(id int) bool
}

// DefaultOptions returns a background context and no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a pre-order hook.
func WithOnVisit(fn func(id int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit registers a post-order hook.
func WithOnExit(fn func(id int) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithFilterNeighbor restricts which neighbors are followed.
func WithFilterNeighbor(fn func(id int) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// Result holds the traversal outcome.
type Result struct {
	// Order lists units in post-order: every unit appears after all of
	// its DFS descendants.
	Order []int

	// Depth is the DFS-tree depth of each visited unit.
	Depth map[int]int

	// Parent is the DFS-tree parent of each visited unit except the start.
	Parent map[int]int

	// Visited marks reached units.
	Visited map[int]bool

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}
