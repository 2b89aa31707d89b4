package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zen-cli/zen/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	notARepositoryMessageConstant               = "not a git repository (or any of the parent directories)"
	repositoryCheckErrorTemplateConstant        = "failed to analyze repository: %w"
	currentBranchErrorTemplateConstant          = "failed to identify current branch: %w"
	branchListingErrorTemplateConstant          = "failed to list local branches: %w"
	referenceCheckErrorTemplateConstant         = "failed to check reference %q: %w"
	branchDeletionErrorTemplateConstant         = "failed to delete branch %q: %w"
	commitLogErrorTemplateConstant              = "failed to collect commit history: %w"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitWorkTreeFlagConstant                     = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitHeadReferenceConstant                    = "HEAD"
	gitForEachRefSubcommandConstant             = "for-each-ref"
	gitRefnameShortFormatFlagConstant           = "--format=%(refname:short)"
	gitLocalBranchNamespaceConstant             = "refs/heads"
	gitShowRefSubcommandConstant                = "show-ref"
	gitVerifyFlagConstant                       = "--verify"
	gitQuietFlagConstant                        = "--quiet"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchPruneFlagConstant                   = "--prune"
	gitBranchSubcommandConstant                 = "branch"
	gitForceDeleteFlagConstant                  = "-D"
	gitLogSubcommandConstant                    = "log"
	gitPrettyFlagTemplateConstant               = "--pretty=%s"
	gitNumstatFlagConstant                      = "--numstat"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	// RemoteTrackingReferenceTemplateConstant builds the remote-tracking reference path for a branch name.
	RemoteTrackingReferenceTemplateConstant = "refs/remotes/origin/%s"
)

// ErrGitExecutorNotConfigured indicates the repository manager was built without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrNotARepository indicates the working directory is not inside a git work tree.
var ErrNotARepository = errors.New(notARepositoryMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager coordinates repository-level git operations.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsRepository confirms the path lies inside a git work tree, returning ErrNotARepository otherwise.
func (manager *RepositoryManager) CheckIsRepository(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError == nil {
		return nil
	}

	commandFailure := &execshell.CommandFailedError{}
	if errors.As(executionError, &commandFailure) {
		return ErrNotARepository
	}
	return fmt.Errorf(repositoryCheckErrorTemplateConstant, executionError)
}

// GetCurrentBranch reports the branch currently checked out at the repository path.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ListLocalBranches enumerates the short names of all local branches.
func (manager *RepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitForEachRefSubcommandConstant, gitRefnameShortFormatFlagConstant, gitLocalBranchNamespaceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(branchListingErrorTemplateConstant, executionError)
	}

	return splitOutputLines(executionResult.StandardOutput), nil
}

// RemoteReferenceExists reports whether the given fully-qualified reference is present.
func (manager *RepositoryManager) RemoteReferenceExists(executionContext context.Context, repositoryPath string, referenceName string) (bool, error) {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitShowRefSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, referenceName},
		WorkingDirectory: repositoryPath,
	})
	if executionError == nil {
		return true, nil
	}

	commandFailure := &execshell.CommandFailedError{}
	if errors.As(executionError, &commandFailure) {
		return false, nil
	}
	return false, fmt.Errorf(referenceCheckErrorTemplateConstant, referenceName, executionError)
}

// FetchPrune refreshes remote-tracking references, pruning deleted ones.
func (manager *RepositoryManager) FetchPrune(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant, gitQuietFlagConstant},
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
	return executionError
}

// DeleteBranch force-deletes the named local branch.
func (manager *RepositoryManager) DeleteBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitForceDeleteFlagConstant, branchName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(branchDeletionErrorTemplateConstant, branchName, executionError)
	}
	return nil
}

// CollectCommitLog returns the raw lines produced by git log with the requested pretty format.
//
// A non-zero exit (for example a repository without commits) yields an empty
// line set rather than an error so empty histories remain a normal outcome.
func (manager *RepositoryManager) CollectCommitLog(executionContext context.Context, repositoryPath string, prettyFormat string, includeNumstat bool) ([]string, error) {
	logArguments := []string{gitLogSubcommandConstant, fmt.Sprintf(gitPrettyFlagTemplateConstant, prettyFormat)}
	if includeNumstat {
		logArguments = append(logArguments, gitNumstatFlagConstant)
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        logArguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		commandFailure := &execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return nil, nil
		}
		return nil, fmt.Errorf(commitLogErrorTemplateConstant, executionError)
	}

	return splitOutputLines(executionResult.StandardOutput), nil
}

// RemoteTrackingReference builds the origin remote-tracking reference path for a branch name.
func RemoteTrackingReference(branchName string) string {
	return fmt.Sprintf(RemoteTrackingReferenceTemplateConstant, branchName)
}

func splitOutputLines(commandOutput string) []string {
	trimmedOutput := strings.TrimSpace(commandOutput)
	if len(trimmedOutput) == 0 {
		return nil
	}

	rawLines := strings.Split(strings.ReplaceAll(commandOutput, "\r\n", "\n"), "\n")
	outputLines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		if len(strings.TrimSpace(rawLine)) == 0 {
			continue
		}
		outputLines = append(outputLines, rawLine)
	}
	return outputLines
}
