// Package pulse implements the contributor statistics command.
//
// It parses git log output (author headers optionally interleaved with
// numstat records), folds the records into per-author totals under a
// selectable metric, and renders a ranked, bar-scaled report.
package pulse
