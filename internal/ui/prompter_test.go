package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/ui"
)

func TestConfirmInterpretsResponses(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		confirmed bool
	}{
		{name: "ShortAffirmative", input: "y\n", confirmed: true},
		{name: "LongAffirmative", input: "yes\n", confirmed: true},
		{name: "UppercaseAffirmative", input: "YES\n", confirmed: true},
		{name: "PaddedAffirmative", input: "  y  \n", confirmed: true},
		{name: "ExplicitDecline", input: "n\n", confirmed: false},
		{name: "EmptyResponseDeclines", input: "\n", confirmed: false},
		{name: "ClosedInputDeclines", input: "", confirmed: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := ui.NewIOConfirmationPrompter(strings.NewReader(testCase.input), outputBuffer)

			confirmed, confirmError := prompter.Confirm("Proceed? [y/N]: ")

			require.NoError(t, confirmError)
			require.Equal(t, testCase.confirmed, confirmed)
			require.Equal(t, "Proceed? [y/N]: ", outputBuffer.String())
		})
	}
}

func TestTreeListRendererUsesConnectors(t *testing.T) {
	outputBuffer := &bytes.Buffer{}
	renderer := ui.NewTreeListRenderer(ui.NewWriterReporter(outputBuffer))

	renderer.Render([]ui.TreeEntry{
		{Label: "feature-x"},
		{Label: "feature-y"},
		{Label: "feature-z"},
	})

	renderedOutput := outputBuffer.String()
	renderedLines := strings.Split(strings.TrimRight(renderedOutput, "\n"), "\n")
	require.Len(t, renderedLines, 3)
	require.Equal(t, "├── feature-x", renderedLines[0])
	require.Equal(t, "├── feature-y", renderedLines[1])
	require.Equal(t, "└── feature-z", renderedLines[2])
}
