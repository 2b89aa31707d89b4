package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/utils"
)

func TestCreateLoggerSupportedCombinations(t *testing.T) {
	factory := utils.NewLoggerFactory()

	testCases := []struct {
		name      string
		logLevel  utils.LogLevel
		logFormat utils.LogFormat
	}{
		{name: "DebugStructured", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatStructured},
		{name: "InfoConsole", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatConsole},
		{name: "WarnStructured", logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatStructured},
		{name: "ErrorConsole", logLevel: utils.LogLevelError, logFormat: utils.LogFormatConsole},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			logger, creationError := factory.CreateLogger(testCase.logLevel, testCase.logFormat)

			require.NoError(t, creationError)
			require.NotNil(t, logger)
		})
	}
}

func TestCreateLoggerRejectsUnsupportedValues(t *testing.T) {
	factory := utils.NewLoggerFactory()

	_, levelError := factory.CreateLogger(utils.LogLevel("verbose"), utils.LogFormatStructured)
	require.ErrorContains(t, levelError, "unsupported log level: verbose")

	_, formatError := factory.CreateLogger(utils.LogLevelInfo, utils.LogFormat("xml"))
	require.ErrorContains(t, formatError, "unsupported log format: xml")
}
