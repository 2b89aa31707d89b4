package pulse

const (
	linesConfigurationKeySuffixConstant = ".lines"
)

// CommandConfiguration captures configuration values for the pulse command.
type CommandConfiguration struct {
	RankByLines bool `mapstructure:"lines"`
}

// DefaultCommandConfiguration provides baseline configuration values for pulse.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RankByLines: false}
}

// DefaultConfigurationValues exposes viper defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + linesConfigurationKeySuffixConstant: false,
	}
}
