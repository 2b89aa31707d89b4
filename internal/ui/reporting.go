package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const (
	treeBranchConnectorConstant = "├── "
	treeFinalConnectorConstant  = "└── "
	lineTerminatorConstant      = "\n"
)

// Reporter emits formatted human-facing output to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, args...)
}

// TreeListRenderer draws plan entries as an indented tree with optional per-entry highlighting.
type TreeListRenderer struct {
	reporter Reporter
}

// NewTreeListRenderer constructs a renderer targeting the provided reporter.
func NewTreeListRenderer(reporter Reporter) TreeListRenderer {
	return TreeListRenderer{reporter: reporter}
}

// TreeEntry describes one rendered plan line.
type TreeEntry struct {
	Label       string
	Highlighted bool
}

// Render writes the entries using tree connectors, highlighting flagged entries in yellow.
func (renderer TreeListRenderer) Render(entries []TreeEntry) {
	if renderer.reporter == nil {
		return
	}

	for entryIndex, entry := range entries {
		connector := treeBranchConnectorConstant
		if entryIndex == len(entries)-1 {
			connector = treeFinalConnectorConstant
		}

		label := entry.Label
		if entry.Highlighted {
			label = color.YellowString(entry.Label)
		}

		renderer.reporter.Printf("%s%s%s", connector, label, lineTerminatorConstant)
	}
}
