package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	messageStandardErrorSuffixTemplate      = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitWorkTreeFlagConstant             = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant            = "--abbrev-ref"
	gitLogSubcommandNameConstant        = "log"
	gitFetchSubcommandNameConstant      = "fetch"
	gitBranchSubcommandNameConstant     = "branch"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitShowRefSubcommandNameConstant    = "show-ref"
)

const (
	gitWorkTreeStartTemplateConstant            = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant          = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant          = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant = "Could not analyze %s: %s"
	gitCurrentBranchStartTemplateConstant       = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant     = "Identified current branch in %s"
	gitCurrentBranchFailureTemplateConstant     = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureConstant    = "Unable to identify current branch in %s: %s"
	gitLogStartTemplateConstant                 = "Collecting commit history in %s"
	gitLogSuccessTemplateConstant               = "Collected commit history in %s"
	gitLogFailureTemplateConstant               = "Failed to collect commit history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant      = "Unable to collect commit history in %s: %s"
	gitFetchStartTemplateConstant               = "Fetching remote state in %s"
	gitFetchSuccessTemplateConstant             = "Fetched remote state in %s"
	gitFetchFailureTemplateConstant             = "Failed to fetch remote state in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant    = "Unable to fetch remote state in %s: %s"
	gitBranchListStartTemplateConstant          = "Listing local branches in %s"
	gitBranchListSuccessTemplateConstant        = "Listed local branches in %s"
	gitBranchListFailureTemplateConstant        = "Failed to list local branches in %s (exit code %d%s)"
	gitBranchListExecutionFailureConstant       = "Unable to list local branches in %s: %s"
	gitBranchDeleteStartTemplateConstant        = "Removing local branch %s in %s"
	gitBranchDeleteSuccessTemplateConstant      = "Removed local branch %s in %s"
	gitBranchDeleteFailureTemplateConstant      = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeleteExecutionFailureConstant     = "Unable to remove local branch %s in %s: %s"
	gitShowRefStartTemplateConstant             = "Checking reference %s in %s"
	gitShowRefSuccessTemplateConstant           = "Checked reference %s in %s"
	gitShowRefFailureTemplateConstant           = "Reference %s not found in %s (exit code %d%s)"
	gitShowRefExecutionFailureConstant          = "Unable to check reference %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages describing command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == ToolGit && len(command.Details.Arguments) > 0 {
		switch command.Details.Arguments[0] {
		case gitRevParseSubcommandNameConstant:
			return formatter.describeGitRevParseMessage(command, result, failure, stage)
		case gitLogSubcommandNameConstant:
			return formatter.describeByDirectory(command, result, failure, stage,
				gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant)
		case gitFetchSubcommandNameConstant:
			return formatter.describeByDirectory(command, result, failure, stage,
				gitFetchStartTemplateConstant, gitFetchSuccessTemplateConstant, gitFetchFailureTemplateConstant, gitFetchExecutionFailureTemplateConstant)
		case gitForEachRefSubcommandNameConstant:
			return formatter.describeByDirectory(command, result, failure, stage,
				gitBranchListStartTemplateConstant, gitBranchListSuccessTemplateConstant, gitBranchListFailureTemplateConstant, gitBranchListExecutionFailureConstant)
		case gitBranchSubcommandNameConstant:
			return formatter.describeGitBranchMessage(command, result, failure, stage)
		case gitShowRefSubcommandNameConstant:
			return formatter.describeGitShowRefMessage(command, result, failure, stage)
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	if containsArgument(command.Details.Arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}
	if containsArgument(command.Details.Arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.extractLastArgument(command.Details.Arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchDeleteStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchDeleteSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchDeleteFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitBranchDeleteExecutionFailureConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitShowRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	referenceName := formatter.extractLastArgument(command.Details.Arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitShowRefStartTemplateConstant, referenceName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitShowRefSuccessTemplateConstant, referenceName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitShowRefFailureTemplateConstant, referenceName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitShowRefExecutionFailureConstant, referenceName, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeByDirectory(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatCommandLabel(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)

	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(messageStandardErrorSuffixTemplate, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractLastArgument(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex >= 0; argumentIndex-- {
		if !strings.HasPrefix(arguments[argumentIndex], "-") {
			return arguments[argumentIndex]
		}
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if argument == value {
			return true
		}
	}
	return false
}
