package pulse

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
	commandUseConstant                    = "pulse"
	commandShortDescriptionConstant       = "Show contributors ranked by commits or lines changed"
	commandLongDescriptionConstant        = "pulse aggregates the repository history into per-author totals and renders a ranked, bar-scaled contributor report."
	commandExecutionErrorTemplateConstant = "pulse failed: %w"
	unexpectedArgumentsMessageConstant    = "pulse does not accept positional arguments"
	flagLinesNameConstant                 = "lines"
	flagLinesDescriptionConstant          = "Rank contributors by lines changed instead of commit count"
	configurationSourceLogMessageConstant = "configuration file applied"
	logFieldConfigurationFileConstant     = "config_file"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for contributor statistics.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	RepositoryManager            RepositoryLogSource
	Reporter                     ui.Reporter
	WorkingDirectory             string
}

// Build constructs the pulse command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagLinesNameConstant, false, flagLinesDescriptionConstant)

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

	rankByLines := builder.resolveConfiguration().RankByLines
	if command.Flags().Changed(flagLinesNameConstant) {
		flagValue, _ := command.Flags().GetBool(flagLinesNameConstant)
		rankByLines = flagValue
	}

	repositoryManager, managerError := builder.resolveRepositoryManager(logger)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(Dependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		Reporter:          builder.resolveReporter(command),
	})
	if serviceError != nil {
		return serviceError
	}

	reportError := service.Report(command.Context(), Options{
		WorkingDirectory: builder.resolveWorkingDirectory(),
		RankByLines:      rankByLines,
	})
	if reportError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, reportError)
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

func (builder *CommandBuilder) resolveRepositoryManager(logger *zap.Logger) (RepositoryLogSource, error) {
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
