package pulse

// RankingMetric selects the contribution measure used for aggregation.
type RankingMetric string

// Supported ranking metrics.
const (
	RankingMetricCommits      RankingMetric = "commits"
	RankingMetricLinesChanged RankingMetric = "lines"
)

// Aggregator folds record events into per-identity totals in a single pass.
//
// Its only mutable state is the totals table and the most recently seen
// author header. An identity is inserted only once it has a positive
// contribution, so every table entry carries a total of at least one.
type Aggregator struct {
	metric          RankingMetric
	totals          map[Identity]uint64
	currentIdentity Identity
	identityActive  bool
}

// NewAggregator constructs an Aggregator for the requested metric.
func NewAggregator(metric RankingMetric) *Aggregator {
	return &Aggregator{
		metric: metric,
		totals: make(map[Identity]uint64),
	}
}

// Consume folds one record event into the totals table.
func (aggregator *Aggregator) Consume(recordEvent RecordEvent) {
	switch recordEvent.Kind {
	case RecordEventAuthorHeader:
		aggregator.currentIdentity = recordEvent.Author
		aggregator.identityActive = true
		if aggregator.metric == RankingMetricCommits {
			aggregator.totals[recordEvent.Author]++
		}
	case RecordEventStatLine:
		if aggregator.metric != RankingMetricLinesChanged {
			return
		}
		if !aggregator.identityActive {
			return
		}
		changedLineCount := recordEvent.LinesAdded + recordEvent.LinesRemoved
		if changedLineCount == 0 {
			return
		}
		aggregator.totals[aggregator.currentIdentity] += changedLineCount
	}
}

// Totals exposes the accumulated per-identity totals.
func (aggregator *Aggregator) Totals() map[Identity]uint64 {
	return aggregator.totals
}

// AggregateLogLines parses the raw lines and folds them under the metric in one pass.
func AggregateLogLines(logLines []string, metric RankingMetric) map[Identity]uint64 {
	recordParser := NewRecordParser()
	aggregator := NewAggregator(metric)
	for _, recordEvent := range recordParser.ParseLines(logLines) {
		aggregator.Consume(recordEvent)
	}
	return aggregator.Totals()
}
