package pulse

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/ui"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	reporterMissingMessageConstant          = "reporter not configured"
	authorHeaderPrettyFormatConstant        = "%aN<%aE>"
	gatheringMessageConstant                = "Gathering contributor statistics..."
	noCommitsMessageConstant                = "No commits found in this repository."
	topContributorsMessageConstant          = "Top contributors:"
	commitLogCollectedMessageConstant       = "commit log collected"
	logFieldLineCountConstant               = "line_count"
	logFieldMetricConstant                  = "metric"
	logFieldAuthorCountConstant             = "author_count"
	reportMessageSuffixConstant             = "\n"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrReporterNotConfigured indicates the reporter dependency was missing.
var ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)

// RepositoryLogSource exposes the git operations the pulse service consumes.
type RepositoryLogSource interface {
	CheckIsRepository(executionContext context.Context, repositoryPath string) error
	CollectCommitLog(executionContext context.Context, repositoryPath string, prettyFormat string, includeNumstat bool) ([]string, error)
}

// Dependencies enumerates the collaborators required by the pulse service.
type Dependencies struct {
	Logger            *zap.Logger
	RepositoryManager RepositoryLogSource
	Reporter          ui.Reporter
}

// Options configures one pulse run.
type Options struct {
	WorkingDirectory string
	RankByLines      bool
}

// Service coordinates contribution aggregation and report rendering.
type Service struct {
	logger            *zap.Logger
	repositoryManager RepositoryLogSource
	reporter          ui.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.Reporter == nil {
		return nil, ErrReporterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:            logger,
		repositoryManager: dependencies.RepositoryManager,
		reporter:          dependencies.Reporter,
	}, nil
}

// Report aggregates the repository history and renders the ranked contributor table.
func (service *Service) Report(executionContext context.Context, options Options) error {
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)

	if repositoryError := service.repositoryManager.CheckIsRepository(executionContext, workingDirectory); repositoryError != nil {
		return repositoryError
	}

	service.reporter.Printf("%s%s", gatheringMessageConstant, reportMessageSuffixConstant)

	rankingMetric := RankingMetricCommits
	if options.RankByLines {
		rankingMetric = RankingMetricLinesChanged
	}

	logLines, collectionError := service.repositoryManager.CollectCommitLog(
		executionContext,
		workingDirectory,
		authorHeaderPrettyFormatConstant,
		rankingMetric == RankingMetricLinesChanged,
	)
	if collectionError != nil {
		return collectionError
	}

	service.logger.Debug(
		commitLogCollectedMessageConstant,
		zap.Int(logFieldLineCountConstant, len(logLines)),
		zap.String(logFieldMetricConstant, string(rankingMetric)),
	)

	contributionTotals := AggregateLogLines(logLines, rankingMetric)
	if len(contributionTotals) == 0 {
		service.reporter.Printf("%s%s", noCommitsMessageConstant, reportMessageSuffixConstant)
		return nil
	}

	rankedEntries := RankTotals(contributionTotals)
	service.logger.Debug(
		topContributorsMessageConstant,
		zap.Int(logFieldAuthorCountConstant, len(rankedEntries)),
	)

	service.reporter.Printf("%s%s", topContributorsMessageConstant, reportMessageSuffixConstant)
	NewReportRenderer(service.reporter).Render(rankedEntries, rankingMetric)

	return nil
}
