package pulse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/pulse"
)

func TestParseIdentity(t *testing.T) {
	testCases := []struct {
		name          string
		headerLine    string
		expectedName  string
		expectedEmail string
	}{
		{
			name:          "NameAndEmail",
			headerLine:    "Jane Doe<jane@x.com>",
			expectedName:  "Jane Doe",
			expectedEmail: "jane@x.com",
		},
		{
			name:          "NameOnly",
			headerLine:    "Solo Name",
			expectedName:  "Solo Name",
			expectedEmail: "",
		},
		{
			name:          "SurroundingWhitespace",
			headerLine:    "  Jane Doe <jane@x.com>  ",
			expectedName:  "Jane Doe",
			expectedEmail: "jane@x.com",
		},
		{
			name:          "MisorderedBrackets",
			headerLine:    "odd>name<",
			expectedName:  "odd>name<",
			expectedEmail: "",
		},
		{
			name:          "EmptyEmail",
			headerLine:    "Jane Doe<>",
			expectedName:  "Jane Doe",
			expectedEmail: "",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			parsedIdentity := pulse.ParseIdentity(testCase.headerLine)
			require.Equal(t, testCase.expectedName, parsedIdentity.Name)
			require.Equal(t, testCase.expectedEmail, parsedIdentity.Email)
		})
	}
}

func TestParseLinesClassification(t *testing.T) {
	parser := pulse.NewRecordParser()

	recordEvents := parser.ParseLines([]string{
		"Jane Doe<jane@x.com>",
		"10\t2\tmain.go",
		"-\t-\tassets/logo.png",
		"",
		"Solo Name",
		"3\tnot-a-number\tREADME.md",
	})

	require.Len(t, recordEvents, 5)

	require.Equal(t, pulse.RecordEventAuthorHeader, recordEvents[0].Kind)
	require.Equal(t, pulse.Identity{Name: "Jane Doe", Email: "jane@x.com"}, recordEvents[0].Author)

	require.Equal(t, pulse.RecordEventStatLine, recordEvents[1].Kind)
	require.Equal(t, uint64(10), recordEvents[1].LinesAdded)
	require.Equal(t, uint64(2), recordEvents[1].LinesRemoved)

	require.Equal(t, pulse.RecordEventStatLine, recordEvents[2].Kind)
	require.Equal(t, uint64(0), recordEvents[2].LinesAdded)
	require.Equal(t, uint64(0), recordEvents[2].LinesRemoved)

	require.Equal(t, pulse.RecordEventAuthorHeader, recordEvents[3].Kind)
	require.Equal(t, pulse.Identity{Name: "Solo Name"}, recordEvents[3].Author)

	require.Equal(t, pulse.RecordEventStatLine, recordEvents[4].Kind)
	require.Equal(t, uint64(3), recordEvents[4].LinesAdded)
	require.Equal(t, uint64(0), recordEvents[4].LinesRemoved)
}

func TestParseLinesSingleTokenHeaderlikeLineIsHeader(t *testing.T) {
	parser := pulse.NewRecordParser()

	recordEvents := parser.ParseLines([]string{"justonetoken"})

	require.Len(t, recordEvents, 1)
	require.Equal(t, pulse.RecordEventAuthorHeader, recordEvents[0].Kind)
	require.Equal(t, "justonetoken", recordEvents[0].Author.Name)
}

func TestParseLinesNeverFailsOnDrift(t *testing.T) {
	parser := pulse.NewRecordParser()

	recordEvents := parser.ParseLines([]string{
		"18446744073709551616\t1\toverflow.go",
		"1",
		"   ",
		"\t\t",
	})

	// The overflowing token degrades to zero; the one-token stat line and
	// blank lines are dropped.
	require.Len(t, recordEvents, 1)
	require.Equal(t, pulse.RecordEventStatLine, recordEvents[0].Kind)
	require.Equal(t, uint64(0), recordEvents[0].LinesAdded)
	require.Equal(t, uint64(1), recordEvents[0].LinesRemoved)
}
