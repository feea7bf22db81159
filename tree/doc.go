// Package tree finds balanced cuts of spanning trees and builds initial
// district plans from them.
//
// A cut of a spanning tree T is one of its edges: removing it leaves two
// subtrees. Given a per-district population target and k districts, a cut
// is balanced when the sides can hold k1 and k-k1 districts with
// populations within eps of target*k1 and target*(k-k1).
//
//   - BalancedCuts(T, pop, target, k, eps): all balanced cuts of T, found by
//     rooting T at its smallest unit and summing subtree populations in a
//     DFS post-order.
//   - Sides(T, cut): the unit sets on either side of a cut.
//   - FindSplit(g, seed, ...): one random spanning tree, one random balanced
//     cut; pure in its seed.
//   - Bipartition(ctx, g, ...): FindSplit with seeds from an rng, up to
//     MaxAttempts trees.
//   - DistrictCuts(T, pop, lo, hi, rest): cuts that leave one side with a
//     single district's population in [lo, hi].
//   - FindDistrict, CarveDistrict: the one-district analogues of FindSplit
//     and Bipartition.
//   - RecursivePartition(ctx, g, k, ideal, tol, rng): the initial plan,
//     carved one district at a time. The window of each district shifts by
//     the surplus already carved so the remainder stays balanced, and a
//     stuck carve restarts the whole plan.
//
// Because both sides of a tree cut are subtrees, every district produced
// here is connected.
package tree
