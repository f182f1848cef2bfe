// Package module holds the task-farm modules: the Arnold web MEGNO map and
// the mandelbrot and hello demonstrations.
package module
