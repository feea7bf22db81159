// SPDX-License-Identifier: MIT
// Package: lvdistrict/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w.
//   - Constructors never panic at runtime; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import "errors"

// ErrTooFewUnits indicates that a size parameter (n, rows, cols) is smaller
// than the minimum for the requested constructor.
var ErrTooFewUnits = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic option (random populations)
// requires a *rand.Rand set through WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed wraps failures of a constructor (nil constructor,
// rejected unit, rejected edge).
var ErrConstructFailed = errors.New("builder: construction failed")
