package pulse

import (
	"strconv"
	"strings"
)

const (
	emailOpeningDelimiterConstant = "<"
	emailClosingDelimiterConstant = ">"
	binaryStatMarkerConstant      = '-'
	minimumStatTokenCountConstant = 2
)

// Identity identifies an author by display name and email address.
//
// Two identities are equal only when both fields match exactly; no
// normalization or case folding is applied.
type Identity struct {
	Name  string
	Email string
}

// RecordEventKind classifies a parsed log line.
type RecordEventKind int

// Supported record event kinds.
const (
	RecordEventAuthorHeader RecordEventKind = iota
	RecordEventStatLine
)

// RecordEvent is one typed observation extracted from a log line.
type RecordEvent struct {
	Kind         RecordEventKind
	Author       Identity
	LinesAdded   uint64
	LinesRemoved uint64
}

// RecordParser converts raw git log lines into typed record events.
//
// The parser never fails: malformed numeric fields degrade to zero and
// unattributable lines are dropped, so log format drift cannot crash the
// command.
type RecordParser struct{}

// NewRecordParser constructs a RecordParser.
func NewRecordParser() RecordParser {
	return RecordParser{}
}

// ParseLines scans the ordered lines and returns the event sequence.
func (parser RecordParser) ParseLines(logLines []string) []RecordEvent {
	recordEvents := make([]RecordEvent, 0, len(logLines))
	for _, logLine := range logLines {
		recordEvent, lineRecognized := parser.parseLine(logLine)
		if !lineRecognized {
			continue
		}
		recordEvents = append(recordEvents, recordEvent)
	}
	return recordEvents
}

func (parser RecordParser) parseLine(logLine string) (RecordEvent, bool) {
	trimmedLine := strings.TrimSpace(logLine)
	if len(trimmedLine) == 0 {
		return RecordEvent{}, false
	}

	leadingCharacter := rune(trimmedLine[0])
	if leadingCharacter >= '0' && leadingCharacter <= '9' || leadingCharacter == binaryStatMarkerConstant {
		return parser.parseStatLine(trimmedLine)
	}

	return RecordEvent{Kind: RecordEventAuthorHeader, Author: ParseIdentity(trimmedLine)}, true
}

func (parser RecordParser) parseStatLine(trimmedLine string) (RecordEvent, bool) {
	statTokens := strings.Fields(trimmedLine)
	if len(statTokens) < minimumStatTokenCountConstant {
		return RecordEvent{}, false
	}

	return RecordEvent{
		Kind:         RecordEventStatLine,
		LinesAdded:   parseCountToken(statTokens[0]),
		LinesRemoved: parseCountToken(statTokens[1]),
	}, true
}

// ParseIdentity extracts an Identity from a Name<email> header line.
//
// Missing or misordered angle brackets fall back to treating the whole
// trimmed line as the display name with an empty email.
func ParseIdentity(headerLine string) Identity {
	trimmedHeader := strings.TrimSpace(headerLine)

	openingIndex := strings.Index(trimmedHeader, emailOpeningDelimiterConstant)
	if openingIndex < 0 {
		return Identity{Name: trimmedHeader}
	}

	closingOffset := strings.Index(trimmedHeader[openingIndex+1:], emailClosingDelimiterConstant)
	if closingOffset < 0 {
		return Identity{Name: trimmedHeader}
	}

	return Identity{
		Name:  strings.TrimSpace(trimmedHeader[:openingIndex]),
		Email: trimmedHeader[openingIndex+1 : openingIndex+1+closingOffset],
	}
}

func parseCountToken(countToken string) uint64 {
	parsedCount, parseError := strconv.ParseUint(countToken, 10, 64)
	if parseError != nil {
		return 0
	}
	return parsedCount
}
