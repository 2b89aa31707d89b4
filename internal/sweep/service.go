package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/ui"
)

const (
	fileSystemMissingMessageConstant   = "filesystem not configured"
	prompterMissingMessageConstant     = "confirmation prompter not configured"
	reporterMissingMessageConstant     = "reporter not configured"
	scanningMessageConstant            = "Scanning for dependency directories..."
	noTargetsMessageConstant           = "No dependency directories found."
	sweepPlanHeaderTemplateConstant    = "Found %d directories to delete:"
	planEntryLabelTemplateConstant     = "%s (%s)"
	confirmationPromptConstant         = "\nDelete these directories? [y/N]: "
	cancellationMessageConstant        = "Operation cancelled."
	completionTemplateConstant         = "Removed %d directories, reclaimed %s."
	removalFailureTemplateConstant     = "failed to delete %q: %w"
	directoryRemovedLogMessageConstant = "dependency directory removed"
	logFieldPathConstant               = "path"
	logFieldSizeConstant               = "size_bytes"
	messageLineSuffixConstant          = "\n"
)

// ErrFileSystemNotConfigured indicates the filesystem dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrReporterNotConfigured indicates the reporter dependency was missing.
var ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)

// Dependencies enumerates the collaborators required by the sweep service.
type Dependencies struct {
	Logger     *zap.Logger
	FileSystem FileSystem
	Prompter   ui.ConfirmationPrompter
	Reporter   ui.Reporter
}

// Options configures one sweep run.
type Options struct {
	WorkingDirectory string
	TargetNames      []string
	DryRun           bool
	AssumeYes        bool
}

// Service coordinates dependency-directory discovery and removal.
type Service struct {
	logger     *zap.Logger
	fileSystem FileSystem
	prompter   ui.ConfirmationPrompter
	reporter   ui.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
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
		logger:     logger,
		fileSystem: dependencies.FileSystem,
		prompter:   dependencies.Prompter,
		reporter:   dependencies.Reporter,
	}, nil
}

// Sweep locates non-nested target directories, confirms with the user, and removes them.
func (service *Service) Sweep(executionContext context.Context, options Options) error {
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)
	if len(workingDirectory) == 0 {
		workingDirectory = "."
	}

	service.reporter.Printf("%s%s", scanningMessageConstant, messageLineSuffixConstant)

	targetScanner := NewTargetScanner(options.TargetNames)
	targetDirectories, scanError := targetScanner.Scan(workingDirectory)
	if scanError != nil {
		return scanError
	}

	if len(targetDirectories) == 0 {
		service.reporter.Printf("%s%s", noTargetsMessageConstant, messageLineSuffixConstant)
		return nil
	}

	targetSizes := make(map[string]uint64, len(targetDirectories))
	for _, targetDirectory := range targetDirectories {
		targetSizes[targetDirectory] = DirectorySize(targetDirectory)
	}

	service.reporter.Printf(sweepPlanHeaderTemplateConstant+messageLineSuffixConstant, len(targetDirectories))
	service.renderPlan(workingDirectory, targetDirectories, targetSizes)

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

	var reclaimedBytes uint64
	removedCount := 0
	for _, targetDirectory := range OrderDeepestFirst(targetDirectories) {
		if _, statError := service.fileSystem.Stat(targetDirectory); statError != nil {
			if os.IsNotExist(statError) {
				continue
			}
		}

		if removalError := service.fileSystem.RemoveAll(targetDirectory); removalError != nil {
			return fmt.Errorf(removalFailureTemplateConstant, targetDirectory, removalError)
		}

		reclaimedBytes += targetSizes[targetDirectory]
		removedCount++
		service.logger.Info(
			directoryRemovedLogMessageConstant,
			zap.String(logFieldPathConstant, targetDirectory),
			zap.Uint64(logFieldSizeConstant, targetSizes[targetDirectory]),
		)
	}

	service.reporter.Printf(completionTemplateConstant+messageLineSuffixConstant, removedCount, humanize.Bytes(reclaimedBytes))
	return nil
}

func (service *Service) renderPlan(workingDirectory string, targetDirectories []string, targetSizes map[string]uint64) {
	planEntries := make([]ui.TreeEntry, 0, len(targetDirectories))
	for _, targetDirectory := range targetDirectories {
		displayPath := targetDirectory
		if relativePath, relativeError := filepath.Rel(workingDirectory, targetDirectory); relativeError == nil {
			displayPath = relativePath
		}
		planEntries = append(planEntries, ui.TreeEntry{
			Label: fmt.Sprintf(planEntryLabelTemplateConstant, displayPath, humanize.Bytes(targetSizes[targetDirectory])),
		})
	}
	ui.NewTreeListRenderer(service.reporter).Render(planEntries)
}
