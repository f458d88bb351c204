// SPDX-License-Identifier: MIT

// Package linkern finds short round trips through 2D and 3D points with the
// Lin-Kernighan local search.
//
// What is inside:
//
//	core/        Node, Instance, Euclidean distance and the cost cache
//	matrix/      row-major Dense storage used for the distance cache
//	tour/        doubly-linked tour: Between, Reverse, ApplyExchange
//	candidates/  k-nearest candidate lists from an R-tree
//	lk/          move search, improvement passes, kicks, multi-run Improve
//	tsp/         Solve dispatcher, nearest-neighbor and Held–Karp baselines,
//	              1-tree lower bound
//	tsplib/      TSPLIB EUC_2D / EUC_3D reader and writer
//	cmd/linkern  command-line solver
//
// Quick example:
//
//	inst, _ := core.NewInstance("square", 2, []core.Node{
//		{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1, Y: 1},
//		{ID: 3, X: 1, Y: 0}, {ID: 4, X: 0, Y: 1},
//	})
//	res, _ := lk.Improve(context.Background(), inst, lk.DefaultOptions())
//	fmt.Println(res.Best) // 4
//
// A tour only changes through tour.ApplyExchange, and a committed move never
// increases its cost. Runs are independent and reproducible from
// Options.Seed, whatever the number of workers.
package linkern
