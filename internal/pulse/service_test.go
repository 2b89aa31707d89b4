package pulse_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/pulse"
	"github.com/zen-cli/zen/internal/ui"
)

type stubRepositoryLogSource struct {
	repositoryError        error
	logLines               []string
	collectionError        error
	requestedPrettyFormat  string
	requestedNumstat       bool
	requestedRepositoryDir string
}

func (stub *stubRepositoryLogSource) CheckIsRepository(_ context.Context, repositoryPath string) error {
	stub.requestedRepositoryDir = repositoryPath
	return stub.repositoryError
}

func (stub *stubRepositoryLogSource) CollectCommitLog(_ context.Context, _ string, prettyFormat string, includeNumstat bool) ([]string, error) {
	stub.requestedPrettyFormat = prettyFormat
	stub.requestedNumstat = includeNumstat
	return stub.logLines, stub.collectionError
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	outputBuffer := &bytes.Buffer{}

	_, missingManagerError := pulse.NewService(pulse.Dependencies{Reporter: ui.NewWriterReporter(outputBuffer)})
	require.ErrorIs(t, missingManagerError, pulse.ErrRepositoryManagerNotConfigured)

	_, missingReporterError := pulse.NewService(pulse.Dependencies{RepositoryManager: &stubRepositoryLogSource{}})
	require.ErrorIs(t, missingReporterError, pulse.ErrReporterNotConfigured)
}

func TestReportFailsOutsideRepository(t *testing.T) {
	repositoryFailure := errors.New("not a git repository (or any of the parent directories)")
	logSource := &stubRepositoryLogSource{repositoryError: repositoryFailure}
	outputBuffer := &bytes.Buffer{}

	service, serviceError := pulse.NewService(pulse.Dependencies{
		RepositoryManager: logSource,
		Reporter:          ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)

	reportError := service.Report(context.Background(), pulse.Options{WorkingDirectory: "/tmp/elsewhere"})

	require.ErrorIs(t, reportError, repositoryFailure)
	require.Empty(t, outputBuffer.String())
	require.Equal(t, "/tmp/elsewhere", logSource.requestedRepositoryDir)
}

func TestReportEmptyHistoryPrintsNoCommitsMessage(t *testing.T) {
	logSource := &stubRepositoryLogSource{}
	outputBuffer := &bytes.Buffer{}

	service, serviceError := pulse.NewService(pulse.Dependencies{
		RepositoryManager: logSource,
		Reporter:          ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)

	reportError := service.Report(context.Background(), pulse.Options{WorkingDirectory: "."})

	require.NoError(t, reportError)
	require.Contains(t, outputBuffer.String(), "No commits found in this repository.")
}

func TestReportCommitModeOmitsNumstat(t *testing.T) {
	logSource := &stubRepositoryLogSource{logLines: []string{"Jane Doe<jane@x.com>"}}
	outputBuffer := &bytes.Buffer{}

	service, serviceError := pulse.NewService(pulse.Dependencies{
		RepositoryManager: logSource,
		Reporter:          ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)

	reportError := service.Report(context.Background(), pulse.Options{WorkingDirectory: "."})

	require.NoError(t, reportError)
	require.Equal(t, "%aN<%aE>", logSource.requestedPrettyFormat)
	require.False(t, logSource.requestedNumstat)
	require.Contains(t, outputBuffer.String(), "Top contributors:")
	require.Contains(t, outputBuffer.String(), "Jane Doe")
	require.Contains(t, outputBuffer.String(), "COMMITS")
}

func TestReportLinesModeRequestsNumstat(t *testing.T) {
	logSource := &stubRepositoryLogSource{logLines: []string{
		"Jane Doe<jane@x.com>",
		"12\t3\tmain.go",
	}}
	outputBuffer := &bytes.Buffer{}

	service, serviceError := pulse.NewService(pulse.Dependencies{
		RepositoryManager: logSource,
		Reporter:          ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)

	reportError := service.Report(context.Background(), pulse.Options{WorkingDirectory: ".", RankByLines: true})

	require.NoError(t, reportError)
	require.True(t, logSource.requestedNumstat)
	require.Contains(t, outputBuffer.String(), "LINES")
	require.Contains(t, outputBuffer.String(), "15")
}

func TestReportPropagatesCollectionFailure(t *testing.T) {
	collectionFailure := fmt.Errorf("unable to run git: %w", errors.New("executable not found"))
	logSource := &stubRepositoryLogSource{collectionError: collectionFailure}
	outputBuffer := &bytes.Buffer{}

	service, serviceError := pulse.NewService(pulse.Dependencies{
		RepositoryManager: logSource,
		Reporter:          ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)

	reportError := service.Report(context.Background(), pulse.Options{WorkingDirectory: "."})

	require.ErrorIs(t, reportError, collectionFailure)
}
