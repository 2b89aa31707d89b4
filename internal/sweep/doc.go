// Package sweep implements dependency-directory cleanup: non-nested
// node_modules directories (and any configured extra target names) are
// collected, confirmed interactively, and removed deepest-first.
package sweep
