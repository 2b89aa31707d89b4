package prune

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/execshell"
	"github.com/zen-cli/zen/internal/gitrepo"
	"github.com/zen-cli/zen/internal/ui"
	"github.com/zen-cli/zen/internal/utils"
)

const (
	commandUseConstant                    = "prune"
	commandShortDescriptionConstant       = "Delete local branches that no longer exist on origin"
	commandLongDescriptionConstant        = "prune fetches remote state, lists local branches whose origin remote-tracking reference is gone, and deletes them after confirmation."
	commandExecutionErrorTemplateConstant = "prune failed: %w"
	unexpectedArgumentsMessageConstant    = "prune does not accept positional arguments"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview deletions without making changes"
	flagYesNameConstant                   = "yes"
	flagYesDescriptionConstant            = "Skip the confirmation prompt"
	configurationSourceLogMessageConstant = "configuration file applied"
	logFieldConfigurationFileConstant     = "config_file"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for stale branch cleanup.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	RepositoryManager            BranchStore
	Prompter                     ui.ConfirmationPrompter
	Reporter                     ui.Reporter
	WorkingDirectory             string
}

// Build constructs the prune command.
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
	if configurationFilePath, pathRecorded := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); pathRecorded && len(configurationFilePath) > 0 {
		logger.Debug(configurationSourceLogMessageConstant, zap.String(logFieldConfigurationFileConstant, configurationFilePath))
	}
	configuration := builder.resolveConfiguration().sanitize()

	dryRun := configuration.DryRun
	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}
	assumeYes, _ := command.Flags().GetBool(flagYesNameConstant)

	repositoryManager, managerError := builder.resolveRepositoryManager(logger)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(Dependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		Prompter:          builder.resolvePrompter(command),
		Reporter:          builder.resolveReporter(command),
	})
	if serviceError != nil {
		return serviceError
	}

	pruneError := service.Prune(command.Context(), Options{
		WorkingDirectory:  builder.resolveWorkingDirectory(),
		ProtectedBranches: configuration.ProtectedBranches,
		DryRun:            dryRun,
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

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveRepositoryManager(logger *zap.Logger) (BranchStore, error) {
	if builder.RepositoryManager != nil {
		return builder.RepositoryManager, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.resolveHumanReadableLogging())
	if executorError != nil {
		return nil, executorError
	}
	shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) ui.ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), utils.NewFlushingWriter(command.OutOrStdout()))
}

func (builder *CommandBuilder) resolveReporter(command *cobra.Command) ui.Reporter {
	if builder.Reporter != nil {
		return builder.Reporter
	}
	return ui.NewWriterReporter(command.OutOrStdout())
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
