package tidy

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/execshell"
	"github.com/zen-cli/zen/internal/gitrepo"
	"github.com/zen-cli/zen/internal/prune"
	"github.com/zen-cli/zen/internal/sweep"
	"github.com/zen-cli/zen/internal/ui"
	"github.com/zen-cli/zen/internal/utils"
)

const (
	commandUseConstant                    = "tidy"
	commandShortDescriptionConstant       = "Run sweep and prune in sequence"
	commandLongDescriptionConstant        = "tidy removes dependency directories first and then deletes stale local branches, prompting before each destructive phase."
	commandExecutionErrorTemplateConstant = "tidy failed: %w"
	unexpectedArgumentsMessageConstant    = "tidy does not accept positional arguments"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview deletions without making changes"
	flagYesNameConstant                   = "yes"
	flagYesDescriptionConstant            = "Skip the confirmation prompts"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command combining sweep and prune.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	SweepConfigurationProvider   func() sweep.CommandConfiguration
	PruneConfigurationProvider   func() prune.CommandConfiguration
	HumanReadableLoggingProvider func() bool
	WorkingDirectory             string
}

// Build constructs the tidy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)
	command.Flags().Bool(flagYesNameConstant, false, flagYesDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	workingDirectory := builder.resolveWorkingDirectory()
	dryRun, _ := command.Flags().GetBool(flagDryRunNameConstant)
	assumeYes, _ := command.Flags().GetBool(flagYesNameConstant)

	prompter := ui.NewIOConfirmationPrompter(command.InOrStdin(), utils.NewFlushingWriter(command.OutOrStdout()))
	reporter := ui.NewWriterReporter(command.OutOrStdout())

	sweepConfiguration := builder.resolveSweepConfiguration()
	sweepService, sweepServiceError := sweep.NewService(sweep.Dependencies{
		Logger:     logger,
		FileSystem: sweep.NewOSFileSystem(),
		Prompter:   prompter,
		Reporter:   reporter,
	})
	if sweepServiceError != nil {
		return sweepServiceError
	}

	sweepError := sweepService.Sweep(command.Context(), sweep.Options{
		WorkingDirectory: workingDirectory,
		TargetNames:      sweepConfiguration.TargetNames,
		DryRun:           dryRun || sweepConfiguration.DryRun,
		AssumeYes:        assumeYes,
	})
	if sweepError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, sweepError)
	}

	repositoryManager, managerError := builder.resolveRepositoryManager(logger)
	if managerError != nil {
		return managerError
	}

	pruneConfiguration := builder.resolvePruneConfiguration()
	pruneService, pruneServiceError := prune.NewService(prune.Dependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		Prompter:          prompter,
		Reporter:          reporter,
	})
	if pruneServiceError != nil {
		return pruneServiceError
	}

	pruneError := pruneService.Prune(command.Context(), prune.Options{
		WorkingDirectory:  workingDirectory,
		ProtectedBranches: pruneConfiguration.ProtectedBranches,
		DryRun:            dryRun || pruneConfiguration.DryRun,
		AssumeYes:         assumeYes,
	})
	if pruneError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, pruneError)
	}

	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveSweepConfiguration() sweep.CommandConfiguration {
	configuration := sweep.DefaultCommandConfiguration()
	if builder.SweepConfigurationProvider != nil {
		configuration = builder.SweepConfigurationProvider()
	}
	if len(configuration.TargetNames) == 0 {
		configuration.TargetNames = append([]string{}, sweep.DefaultTargetNames...)
	}
	return configuration
}

func (builder *CommandBuilder) resolvePruneConfiguration() prune.CommandConfiguration {
	configuration := prune.DefaultCommandConfiguration()
	if builder.PruneConfigurationProvider != nil {
		configuration = builder.PruneConfigurationProvider()
	}
	if len(configuration.ProtectedBranches) == 0 {
		configuration.ProtectedBranches = append([]string{}, prune.DefaultProtectedBranches...)
	}
	return configuration
}

func (builder *CommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveRepositoryManager(logger *zap.Logger) (prune.BranchStore, error) {
	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.resolveHumanReadableLogging())
	if executorError != nil {
		return nil, executorError
	}
	shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (builder *CommandBuilder) resolveWorkingDirectory() string {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "."
	}
	return workingDirectory
}
