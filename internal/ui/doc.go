// Package ui renders command events, plan listings, and confirmation prompts
// for the zen CLI's human-facing output.
package ui
