package prune

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zen-cli/zen/internal/utils"
)

// quietBranchStore reports a repository with no local branches so run
// completes without prompting.
type quietBranchStore struct{}

func (quietBranchStore) CheckIsRepository(context.Context, string) error { return nil }

func (quietBranchStore) FetchPrune(context.Context, string) error { return nil }

func (quietBranchStore) ListLocalBranches(context.Context, string) ([]string, error) {
	return nil, nil
}

func (quietBranchStore) RemoteReferenceExists(context.Context, string, string) (bool, error) {
	return false, nil
}

func (quietBranchStore) GetCurrentBranch(context.Context, string) (string, error) {
	return "main", nil
}

func (quietBranchStore) DeleteBranch(context.Context, string, string) error { return nil }

func newObservedCommandBuilder(t *testing.T) (*CommandBuilder, *observer.ObservedLogs) {
	t.Helper()
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	builder := &CommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.New(observedCore) },
		RepositoryManager: quietBranchStore{},
		WorkingDirectory:  ".",
	}
	return builder, observedLogs
}

func TestRunLogsResolvedConfigurationFilePath(t *testing.T) {
	builder, observedLogs := newObservedCommandBuilder(t)

	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	decoratedContext := utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), "/repo/config.yaml")
	command.SetContext(decoratedContext)

	require.NoError(t, builder.run(command, nil))

	matchingEntries := observedLogs.FilterMessage(configurationSourceLogMessageConstant).All()
	require.Len(t, matchingEntries, 1)
	require.Equal(t, "/repo/config.yaml", matchingEntries[0].ContextMap()[logFieldConfigurationFileConstant])
}

func TestRunSkipsConfigurationLogWithoutRecordedPath(t *testing.T) {
	builder, observedLogs := newObservedCommandBuilder(t)

	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetContext(context.Background())

	require.NoError(t, builder.run(command, nil))

	require.Empty(t, observedLogs.FilterMessage(configurationSourceLogMessageConstant).All())
}
