package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zen-cli/zen/internal/prune"
	"github.com/zen-cli/zen/internal/sweep"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Pulse struct {
			Lines bool `yaml:"lines"`
		} `yaml:"pulse"`
		Prune struct {
			Protected []string `yaml:"protected"`
			DryRun    bool     `yaml:"dry_run"`
		} `yaml:"prune"`
		Sweep struct {
			Targets []string `yaml:"targets"`
			DryRun  bool     `yaml:"dry_run"`
		} `yaml:"sweep"`
	} `yaml:"tools"`
}

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	unmarshalError := yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration)
	require.NoError(testInstance, unmarshalError)

	require.Equal(testInstance, "info", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", applicationConfiguration.Common.LogFormat)
	require.False(testInstance, applicationConfiguration.Tools.Pulse.Lines)
	require.Equal(testInstance, prune.DefaultProtectedBranches, applicationConfiguration.Tools.Prune.Protected)
	require.Equal(testInstance, sweep.DefaultTargetNames, applicationConfiguration.Tools.Sweep.Targets)
	require.False(testInstance, applicationConfiguration.Tools.Prune.DryRun)
	require.False(testInstance, applicationConfiguration.Tools.Sweep.DryRun)
}
