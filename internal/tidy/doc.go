// Package tidy composes the sweep and prune commands into one sequential run.
package tidy
