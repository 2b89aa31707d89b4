// Package gitrepo exposes repository-level git operations used by the zen
// commands: work-tree detection, branch enumeration, reference existence
// checks, fetching, branch deletion, and commit-log collection.
package gitrepo
