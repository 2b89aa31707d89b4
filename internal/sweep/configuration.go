package sweep

import "strings"

const (
	targetsConfigurationKeySuffixConstant = ".targets"
	dryRunConfigurationKeySuffixConstant  = ".dry_run"
)

// DefaultTargetNames lists the directory names sweep removes out of the box.
var DefaultTargetNames = []string{"node_modules"}

// CommandConfiguration captures configuration values for the sweep command.
type CommandConfiguration struct {
	TargetNames []string `mapstructure:"targets"`
	DryRun      bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for sweep.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		TargetNames: append([]string{}, DefaultTargetNames...),
		DryRun:      false,
	}
}

// DefaultConfigurationValues exposes viper defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + targetsConfigurationKeySuffixConstant: append([]string{}, DefaultTargetNames...),
		configurationKeyPrefix + dryRunConfigurationKeySuffixConstant:  false,
	}
}

// sanitize trims configured target names and restores defaults when the list is empty.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitizedTargets := make([]string, 0, len(configuration.TargetNames))
	for _, candidateTarget := range configuration.TargetNames {
		trimmedTarget := strings.TrimSpace(candidateTarget)
		if len(trimmedTarget) == 0 {
			continue
		}
		sanitizedTargets = append(sanitizedTargets, trimmedTarget)
	}

	if len(sanitizedTargets) == 0 {
		sanitizedTargets = append([]string{}, DefaultTargetNames...)
	}

	sanitized.TargetNames = sanitizedTargets
	return sanitized
}
