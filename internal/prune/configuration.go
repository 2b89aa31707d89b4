package prune

import "strings"

const (
	protectedConfigurationKeySuffixConstant = ".protected"
	dryRunConfigurationKeySuffixConstant    = ".dry_run"
)

// DefaultProtectedBranches lists the branch names prune never deletes.
var DefaultProtectedBranches = []string{"main", "master"}

// CommandConfiguration captures configuration values for the prune command.
type CommandConfiguration struct {
	ProtectedBranches []string `mapstructure:"protected"`
	DryRun            bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for prune.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProtectedBranches: append([]string{}, DefaultProtectedBranches...),
		DryRun:            false,
	}
}

// DefaultConfigurationValues exposes viper defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + protectedConfigurationKeySuffixConstant: append([]string{}, DefaultProtectedBranches...),
		configurationKeyPrefix + dryRunConfigurationKeySuffixConstant:    false,
	}
}

// sanitize trims configured branch names and unions in the default
// protected set. Configured lists extend the defaults, never replace them.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitizedBranches := make([]string, 0, len(configuration.ProtectedBranches)+len(DefaultProtectedBranches))
	seenBranches := make(map[string]struct{}, len(configuration.ProtectedBranches)+len(DefaultProtectedBranches))
	for _, candidateBranch := range configuration.ProtectedBranches {
		trimmedBranch := strings.TrimSpace(candidateBranch)
		if len(trimmedBranch) == 0 {
			continue
		}
		if _, alreadySeen := seenBranches[trimmedBranch]; alreadySeen {
			continue
		}
		seenBranches[trimmedBranch] = struct{}{}
		sanitizedBranches = append(sanitizedBranches, trimmedBranch)
	}

	for _, defaultBranch := range DefaultProtectedBranches {
		if _, alreadySeen := seenBranches[defaultBranch]; alreadySeen {
			continue
		}
		seenBranches[defaultBranch] = struct{}{}
		sanitizedBranches = append(sanitizedBranches, defaultBranch)
	}

	sanitized.ProtectedBranches = sanitizedBranches
	return sanitized
}
