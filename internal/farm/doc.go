// Package farm runs a module over every pixel of a two-dimensional task
// board using a pool of worker goroutines.
//
// Tasks are numbered row major, ID = Y*XRes + X. Each task carries its own
// random source seeded from the run seed and the task ID, so a board is
// reproducible whatever the worker count or scheduling order.
package farm
