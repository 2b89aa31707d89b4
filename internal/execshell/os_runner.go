package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// OSCommandRunner executes git invocations through os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by the host operating system.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run launches the command, captures both output streams, and translates a
// non-zero exit into an ExecutionResult so callers can treat exit codes as
// signals rather than failures.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), append([]string{}, command.Details.Arguments...)...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}
	executable.Env = mergedEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

// mergedEnvironment layers command-specific variables over the process
// environment. A nil overlay returns nil so os/exec inherits the process
// environment untouched.
func mergedEnvironment(overlayVariables map[string]string) []string {
	if len(overlayVariables) == 0 {
		return nil
	}
	merged := append([]string{}, os.Environ()...)
	for variableName, variableValue := range overlayVariables {
		merged = append(merged, fmt.Sprintf("%s=%s", variableName, variableValue))
	}
	return merged
}
