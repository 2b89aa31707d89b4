package prune

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/gitrepo"
	"github.com/zen-cli/zen/internal/ui"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	prompterMissingMessageConstant          = "confirmation prompter not configured"
	reporterMissingMessageConstant          = "reporter not configured"
	checkingMessageConstant                 = "Checking for stale local branches..."
	noStaleBranchesMessageConstant          = "No stale branches found."
	stalePlanHeaderTemplateConstant         = "Found %d stale branches:"
	confirmationPromptConstant              = "\nDelete these branches? [y/N]: "
	cancellationMessageConstant             = "Operation cancelled."
	completionMessageConstant               = "All stale branches pruned."
	currentBranchLabelTemplateConstant      = "%s (current branch)"
	skippingCurrentBranchTemplateConstant   = "Skipping current branch %q"
	deletionFailureTemplateConstant         = "failed to delete branch %q: %w"
	fetchFailureLogMessageConstant          = "remote fetch failed; staleness may reflect outdated remote state"
	currentBranchLookupFailedLogConstant    = "could not identify current branch; deletion skip guard disabled"
	branchDeletedLogMessageConstant         = "stale branch deleted"
	logFieldBranchNameConstant              = "branch"
	messageLineSuffixConstant               = "\n"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrReporterNotConfigured indicates the reporter dependency was missing.
var ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)

// BranchStore exposes the git operations the prune service consumes.
type BranchStore interface {
	CheckIsRepository(executionContext context.Context, repositoryPath string) error
	FetchPrune(executionContext context.Context, repositoryPath string) error
	ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error)
	RemoteReferenceExists(executionContext context.Context, repositoryPath string, referenceName string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	DeleteBranch(executionContext context.Context, repositoryPath string, branchName string) error
}

// Dependencies enumerates the collaborators required by the prune service.
type Dependencies struct {
	Logger            *zap.Logger
	RepositoryManager BranchStore
	Prompter          ui.ConfirmationPrompter
	Reporter          ui.Reporter
}

// Options configures one prune run.
type Options struct {
	WorkingDirectory  string
	ProtectedBranches []string
	DryRun            bool
	AssumeYes         bool
}

// Service coordinates stale branch detection and deletion.
type Service struct {
	logger            *zap.Logger
	repositoryManager BranchStore
	prompter          ui.ConfirmationPrompter
	reporter          ui.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
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
		prompter:          dependencies.Prompter,
		reporter:          dependencies.Reporter,
	}, nil
}

// Prune detects stale local branches, confirms with the user, and deletes them.
func (service *Service) Prune(executionContext context.Context, options Options) error {
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)

	if repositoryError := service.repositoryManager.CheckIsRepository(executionContext, workingDirectory); repositoryError != nil {
		return repositoryError
	}

	service.reporter.Printf("%s%s", checkingMessageConstant, messageLineSuffixConstant)

	if fetchError := service.repositoryManager.FetchPrune(executionContext, workingDirectory); fetchError != nil {
		service.logger.Warn(fetchFailureLogMessageConstant, zap.Error(fetchError))
	}

	staleBranches, detectionError := service.DetectStaleBranches(executionContext, workingDirectory, options.ProtectedBranches)
	if detectionError != nil {
		return detectionError
	}

	if len(staleBranches) == 0 {
		service.reporter.Printf("%s%s", noStaleBranchesMessageConstant, messageLineSuffixConstant)
		return nil
	}

	currentBranch, currentBranchError := service.repositoryManager.GetCurrentBranch(executionContext, workingDirectory)
	if currentBranchError != nil {
		service.logger.Warn(currentBranchLookupFailedLogConstant, zap.Error(currentBranchError))
		currentBranch = ""
	}

	service.reporter.Printf(stalePlanHeaderTemplateConstant+messageLineSuffixConstant, len(staleBranches))
	service.renderPlan(staleBranches, currentBranch)

	if options.DryRun {
		return nil
	}

	if !options.AssumeYes {
		confirmed, confirmationError := service.prompter.Confirm(confirmationPromptConstant)
		if confirmationError != nil {
			return confirmationError
		}
		if !confirmed {
			service.reporter.Printf("%s%s", cancellationMessageConstant, messageLineSuffixConstant)
			return nil
		}
	}

	for _, staleBranch := range staleBranches {
		if staleBranch == currentBranch {
			service.reporter.Printf(skippingCurrentBranchTemplateConstant+messageLineSuffixConstant, staleBranch)
			continue
		}

		if deletionError := service.repositoryManager.DeleteBranch(executionContext, workingDirectory, staleBranch); deletionError != nil {
			return fmt.Errorf(deletionFailureTemplateConstant, staleBranch, deletionError)
		}
		service.logger.Info(branchDeletedLogMessageConstant, zap.String(logFieldBranchNameConstant, staleBranch))
	}

	service.reporter.Printf("%s%s", completionMessageConstant, messageLineSuffixConstant)
	return nil
}

// DetectStaleBranches computes the local branches lacking an origin remote-tracking reference.
//
// The default protected branches are excluded regardless of the provided
// list, so main and master are never reported as stale.
func (service *Service) DetectStaleBranches(executionContext context.Context, workingDirectory string, protectedBranches []string) ([]string, error) {
	localBranches, listingError := service.repositoryManager.ListLocalBranches(executionContext, workingDirectory)
	if listingError != nil {
		return nil, listingError
	}

	protectedSet := make(map[string]struct{}, len(protectedBranches)+len(DefaultProtectedBranches))
	for _, defaultBranch := range DefaultProtectedBranches {
		protectedSet[defaultBranch] = struct{}{}
	}
	for _, protectedBranch := range protectedBranches {
		protectedSet[protectedBranch] = struct{}{}
	}

	var staleBranches []string
	for _, localBranch := range localBranches {
		if _, isProtected := protectedSet[localBranch]; isProtected {
			continue
		}

		remoteExists, existenceError := service.repositoryManager.RemoteReferenceExists(
			executionContext,
			workingDirectory,
			gitrepo.RemoteTrackingReference(localBranch),
		)
		if existenceError != nil {
			return nil, existenceError
		}
		if !remoteExists {
			staleBranches = append(staleBranches, localBranch)
		}
	}

	return staleBranches, nil
}

func (service *Service) renderPlan(staleBranches []string, currentBranch string) {
	planEntries := make([]ui.TreeEntry, 0, len(staleBranches))
	for _, staleBranch := range staleBranches {
		entryLabel := staleBranch
		isCurrent := staleBranch == currentBranch
		if isCurrent {
			entryLabel = fmt.Sprintf(currentBranchLabelTemplateConstant, staleBranch)
		}
		planEntries = append(planEntries, ui.TreeEntry{Label: entryLabel, Highlighted: isCurrent})
	}
	ui.NewTreeListRenderer(service.reporter).Render(planEntries)
}
