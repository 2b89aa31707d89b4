package utils

import "context"

// commandContextKey keeps zen context values from colliding with keys set by
// other packages sharing the same context chain.
type commandContextKey string

const resolvedConfigurationPathKeyConstant = commandContextKey("zen.resolvedConfigurationPath")

// CommandContextAccessor reads and writes the zen values carried on a command
// execution context. The root command records the configuration file it
// resolved so subcommands can report which file shaped their settings.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the resolved configuration file path on
// the returned context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, resolvedConfigurationPathKeyConstant, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path recorded on the
// context, along with whether one was recorded at all.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	recordedPath, pathRecorded := executionContext.Value(resolvedConfigurationPathKeyConstant).(string)
	return recordedPath, pathRecorded
}
