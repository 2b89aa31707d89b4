package pulse

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zen-cli/zen/internal/ui"
)

const (
	rankColumnHeaderConstant         = "RANK"
	authorColumnHeaderConstant       = "AUTHOR"
	emailColumnHeaderConstant        = "EMAIL"
	contributionColumnHeaderConstant = "CONTRIBUTION"
	commitsColumnHeaderConstant      = "COMMITS"
	linesChangedColumnHeaderConstant = "LINES"
	reportFooterTemplateConstant     = "%s contributors, %s %s"
	commitsFooterUnitConstant        = "commits"
	linesChangedFooterUnitConstant   = "lines changed"
	reportLineTerminatorConstant     = "\n"
)

// ReportRenderer draws the ranked contributor table.
type ReportRenderer struct {
	reporter ui.Reporter
}

// NewReportRenderer constructs a renderer targeting the provided reporter.
func NewReportRenderer(reporter ui.Reporter) ReportRenderer {
	return ReportRenderer{reporter: reporter}
}

// Render writes the ranked entries as a table with proportional contribution bars.
func (renderer ReportRenderer) Render(rankedEntries []RankedEntry, metric RankingMetric) {
	if renderer.reporter == nil || len(rankedEntries) == 0 {
		return
	}

	totalColumnHeader := commitsColumnHeaderConstant
	footerUnit := commitsFooterUnitConstant
	if metric == RankingMetricLinesChanged {
		totalColumnHeader = linesChangedColumnHeaderConstant
		footerUnit = linesChangedFooterUnitConstant
	}

	tableWriter := table.NewWriter()
	tableWriter.SetStyle(table.StyleLight)
	tableWriter.Style().Options.SeparateRows = false
	tableWriter.Style().Options.SeparateColumns = true
	tableWriter.Style().Options.DrawBorder = false

	tableWriter.AppendHeader(table.Row{
		rankColumnHeaderConstant,
		authorColumnHeaderConstant,
		emailColumnHeaderConstant,
		contributionColumnHeaderConstant,
		totalColumnHeader,
	})

	contributionSum := uint64(0)
	for _, rankedEntry := range rankedEntries {
		contributionSum += rankedEntry.Total
		tableWriter.AppendRow(table.Row{
			color.YellowString("%d", rankedEntry.Position),
			rankedEntry.Author.Name,
			FormatEmailForDisplay(rankedEntry.Author.Email),
			color.CyanString(RenderBar(rankedEntry.BarLength)),
			humanize.Comma(int64(rankedEntry.Total)),
		})
	}

	tableWriter.AppendFooter(table.Row{fmt.Sprintf(
		reportFooterTemplateConstant,
		humanize.Comma(int64(len(rankedEntries))),
		humanize.Comma(int64(contributionSum)),
		footerUnit,
	)})

	renderer.reporter.Printf("%s%s", tableWriter.Render(), reportLineTerminatorConstant)
}
