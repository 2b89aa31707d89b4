package pulse

import (
	"math"
	"sort"
	"strings"
)

const (
	// MaximumBarLength is the bar width assigned to the top-ranked entry.
	MaximumBarLength = 30

	emailDisplayLimitConstant    = 25
	emailTruncatedLengthConstant = 22
	emailEllipsisMarkerConstant  = "..."
)

// RankedEntry is one row of the final contributor report.
type RankedEntry struct {
	Author    Identity
	Total     uint64
	Position  int
	BarLength int
}

// RankTotals orders the totals descending and derives proportional bar lengths.
//
// Ties are broken ascending by author name, then email, so the report is
// deterministic for identical inputs.
func RankTotals(totals map[Identity]uint64) []RankedEntry {
	rankedEntries := make([]RankedEntry, 0, len(totals))
	for authorIdentity, contributionTotal := range totals {
		rankedEntries = append(rankedEntries, RankedEntry{Author: authorIdentity, Total: contributionTotal})
	}

	sort.SliceStable(rankedEntries, func(firstIndex int, secondIndex int) bool {
		firstEntry := rankedEntries[firstIndex]
		secondEntry := rankedEntries[secondIndex]
		if firstEntry.Total != secondEntry.Total {
			return firstEntry.Total > secondEntry.Total
		}
		if firstEntry.Author.Name != secondEntry.Author.Name {
			return firstEntry.Author.Name < secondEntry.Author.Name
		}
		return firstEntry.Author.Email < secondEntry.Author.Email
	})

	if len(rankedEntries) == 0 {
		return rankedEntries
	}

	maximumTotal := rankedEntries[0].Total
	for entryIndex := range rankedEntries {
		rankedEntries[entryIndex].Position = entryIndex + 1
		rankedEntries[entryIndex].BarLength = proportionalBarLength(rankedEntries[entryIndex].Total, maximumTotal)
	}

	return rankedEntries
}

func proportionalBarLength(contributionTotal uint64, maximumTotal uint64) int {
	if maximumTotal == 0 {
		return 0
	}
	return int(math.Round(float64(contributionTotal) / float64(maximumTotal) * float64(MaximumBarLength)))
}

// FormatEmailForDisplay truncates long email addresses for table rendering.
// Limits are counted in runes so multibyte addresses are never cut mid-rune.
func FormatEmailForDisplay(emailAddress string) string {
	emailRunes := []rune(emailAddress)
	if len(emailRunes) <= emailDisplayLimitConstant {
		return emailAddress
	}
	return string(emailRunes[:emailTruncatedLengthConstant]) + emailEllipsisMarkerConstant
}

// RenderBar draws a bar of the requested length using full-block glyphs.
func RenderBar(barLength int) string {
	if barLength <= 0 {
		return ""
	}
	return strings.Repeat("█", barLength)
}
