package pulse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/pulse"
)

func TestRankTotalsOrdersByTotalDescending(t *testing.T) {
	contributionTotals := map[pulse.Identity]uint64{
		{Name: "Jane Doe", Email: "jane@x.com"}: 9,
		{Name: "Solo Name"}:                     3,
		{Name: "Ada Lovelace", Email: "ada@x.com"}: 27,
	}

	rankedEntries := pulse.RankTotals(contributionTotals)

	require.Len(t, rankedEntries, 3)
	require.Equal(t, "Ada Lovelace", rankedEntries[0].Author.Name)
	require.Equal(t, "Jane Doe", rankedEntries[1].Author.Name)
	require.Equal(t, "Solo Name", rankedEntries[2].Author.Name)
	for entryIndex, rankedEntry := range rankedEntries {
		require.Equal(t, entryIndex+1, rankedEntry.Position)
	}
}

func TestRankTotalsBreaksTiesByNameThenEmail(t *testing.T) {
	contributionTotals := map[pulse.Identity]uint64{
		{Name: "Jane Doe", Email: "jane@y.com"}: 5,
		{Name: "Jane Doe", Email: "jane@x.com"}: 5,
		{Name: "Ada Lovelace", Email: "ada@x.com"}: 5,
	}

	rankedEntries := pulse.RankTotals(contributionTotals)

	require.Len(t, rankedEntries, 3)
	require.Equal(t, pulse.Identity{Name: "Ada Lovelace", Email: "ada@x.com"}, rankedEntries[0].Author)
	require.Equal(t, pulse.Identity{Name: "Jane Doe", Email: "jane@x.com"}, rankedEntries[1].Author)
	require.Equal(t, pulse.Identity{Name: "Jane Doe", Email: "jane@y.com"}, rankedEntries[2].Author)
}

func TestRankTotalsBarLengthsAreProportionalAndMonotonic(t *testing.T) {
	contributionTotals := map[pulse.Identity]uint64{
		{Name: "Top", Email: "top@x.com"}:       60,
		{Name: "Half", Email: "half@x.com"}:     30,
		{Name: "Sliver", Email: "sliver@x.com"}: 1,
	}

	rankedEntries := pulse.RankTotals(contributionTotals)

	require.Equal(t, pulse.MaximumBarLength, rankedEntries[0].BarLength)
	require.Equal(t, 15, rankedEntries[1].BarLength)
	require.Equal(t, 1, rankedEntries[2].BarLength)
	for entryIndex := 1; entryIndex < len(rankedEntries); entryIndex++ {
		require.LessOrEqual(t, rankedEntries[entryIndex].BarLength, rankedEntries[entryIndex-1].BarLength)
	}
}

func TestRankTotalsEmptyTableYieldsNoEntries(t *testing.T) {
	rankedEntries := pulse.RankTotals(map[pulse.Identity]uint64{})

	require.Empty(t, rankedEntries)
}

func TestFormatEmailForDisplayTruncatesLongAddresses(t *testing.T) {
	testCases := []struct {
		name         string
		emailAddress string
		expected     string
	}{
		{name: "ShortAddressUnchanged", emailAddress: "jane@x.com", expected: "jane@x.com"},
		{name: "BoundaryAddressUnchanged", emailAddress: strings.Repeat("a", 25), expected: strings.Repeat("a", 25)},
		{name: "LongAddressTruncated", emailAddress: "extremely.long.address@example-domain.com", expected: "extremely.long.address" + "..."},
		{name: "MultibyteBoundaryUnchanged", emailAddress: strings.Repeat("ü", 25), expected: strings.Repeat("ü", 25)},
		{name: "MultibyteAddressTruncatedOnRuneBoundary", emailAddress: "jürgen@müller-längsfeld.example.de", expected: "jürgen@müller-längsfel" + "..."},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, pulse.FormatEmailForDisplay(testCase.emailAddress))
		})
	}
}

func TestRenderBarUsesFullBlockGlyphs(t *testing.T) {
	require.Equal(t, "", pulse.RenderBar(0))
	require.Equal(t, strings.Repeat("█", 4), pulse.RenderBar(4))
}
