// Package prune implements stale branch cleanup: local branches whose
// remote-tracking reference no longer exists on origin are listed, confirmed
// interactively, and force-deleted.
package prune
