package execshell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	commandRunnerMissingMessageConstant  = "command runner not configured"
	loggerMissingMessageConstant         = "logger not configured"
	commandFailureTemplateConstant       = "%s exited with code %d%s"
	standardErrorSuffixTemplateConstant  = ": %s"
	executionFailureTemplateConstant     = "unable to run %s: %w"
	emptyStandardErrorSuffixConstant     = ""
	structuredCommandFieldNameConstant   = "command"
	structuredExitCodeFieldNameConstant  = "exit_code"
	structuredDirectoryFieldNameConstant = "working_directory"
)

// ToolName identifies a supported executable.
type ToolName string

// ToolGit is the only external tool zen invokes.
const ToolGit ToolName = "git"

// CommandDetails describes one invocation of an external tool. All zen
// invocations are non-interactive; there is no standard input channel.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand combines a ToolName with invocation details.
type ShellCommand struct {
	Name    ToolName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandEventObserver receives git invocation lifecycle notifications so the
// console layer can narrate what zen is doing.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardingCommandEventObserver is installed until a real observer registers.
type discardingCommandEventObserver struct{}

func (discardingCommandEventObserver) CommandStarted(ShellCommand) {}

func (discardingCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardingCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

// ErrCommandRunnerNotConfigured indicates the executor was built without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerMissingMessageConstant)

// ErrLoggerNotConfigured indicates the executor was built without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error implements the error interface.
func (failure *CommandFailedError) Error() string {
	standardErrorSuffix := emptyStandardErrorSuffixConstant
	if len(failure.Result.StandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, failure.Result.StandardError)
	}
	return fmt.Sprintf(commandFailureTemplateConstant, formatCommandLabel(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// ShellExecutor coordinates command execution, logging, and event observation.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	eventObserver        CommandEventObserver
	messageFormatter     CommandMessageFormatter
	humanReadableLogging bool
}

// NewShellExecutor constructs a ShellExecutor from the provided collaborators.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	return &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		eventObserver:        discardingCommandEventObserver{},
		messageFormatter:     CommandMessageFormatter{},
		humanReadableLogging: humanReadableLogging,
	}, nil
}

// SetCommandEventObserver registers an observer receiving command lifecycle events.
func (executor *ShellExecutor) SetCommandEventObserver(observer CommandEventObserver) {
	if executor == nil {
		return
	}
	if observer == nil {
		executor.eventObserver = discardingCommandEventObserver{}
		return
	}
	executor.eventObserver = observer
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: ToolGit, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.eventObserver.CommandStarted(command)
	executor.logStart(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executor.eventObserver.CommandExecutionFailed(command, runError)
		executor.logExecutionFailure(command, runError)
		return ExecutionResult{}, fmt.Errorf(executionFailureTemplateConstant, formatCommandLabel(command), runError)
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	executor.logCompletion(command, executionResult)

	if executionResult.ExitCode != 0 {
		return executionResult, &CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

func (executor *ShellExecutor) logStart(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Debug(executor.messageFormatter.BuildStartedMessage(command))
		return
	}
	executor.logger.Debug(
		executor.messageFormatter.BuildStartedMessage(command),
		zap.String(structuredCommandFieldNameConstant, formatCommandLabel(command)),
		zap.String(structuredDirectoryFieldNameConstant, command.Details.WorkingDirectory),
	)
}

func (executor *ShellExecutor) logCompletion(command ShellCommand, result ExecutionResult) {
	if result.ExitCode == 0 {
		executor.logger.Debug(executor.messageFormatter.BuildSuccessMessage(command))
		return
	}
	executor.logger.Debug(
		executor.messageFormatter.BuildFailureMessage(command, result),
		zap.Int(structuredExitCodeFieldNameConstant, result.ExitCode),
	)
}

func (executor *ShellExecutor) logExecutionFailure(command ShellCommand, failure error) {
	executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure))
}
