package sweep

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-cli/zen/internal/ui"
	"github.com/zen-cli/zen/internal/utils"
)

const (
	commandUseConstant                    = "sweep"
	commandShortDescriptionConstant       = "Delete all node_modules directories recursively"
	commandLongDescriptionConstant        = "sweep walks the working directory for non-nested dependency directories and removes them after confirmation."
	commandExecutionErrorTemplateConstant = "sweep failed: %w"
	unexpectedArgumentsMessageConstant    = "sweep does not accept positional arguments"
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

// CommandBuilder assembles the Cobra command for dependency-directory cleanup.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystem            FileSystem
	Prompter              ui.ConfirmationPrompter
	Reporter              ui.Reporter
	WorkingDirectory      string
}

// Build constructs the sweep command.
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

	service, serviceError := NewService(Dependencies{
		Logger:     logger,
		FileSystem: builder.resolveFileSystem(),
		Prompter:   builder.resolvePrompter(command),
		Reporter:   builder.resolveReporter(command),
	})
	if serviceError != nil {
		return serviceError
	}

	sweepError := service.Sweep(command.Context(), Options{
		WorkingDirectory: builder.resolveWorkingDirectory(),
		TargetNames:      configuration.TargetNames,
		DryRun:           dryRun,
		AssumeYes:        assumeYes,
	})
	if sweepError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, sweepError)
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

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return NewOSFileSystem()
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
