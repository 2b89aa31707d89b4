package sweep_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zen-cli/zen/internal/sweep"
	"github.com/zen-cli/zen/internal/ui"
)

type stubFileSystem struct {
	missingPaths    map[string]struct{}
	removalFailures map[string]error
	removedPaths    []string
}

func newStubFileSystem() *stubFileSystem {
	return &stubFileSystem{
		missingPaths:    make(map[string]struct{}),
		removalFailures: make(map[string]error),
	}
}

func (stub *stubFileSystem) Stat(path string) (fs.FileInfo, error) {
	if _, isMissing := stub.missingPaths[path]; isMissing {
		return nil, os.ErrNotExist
	}
	return os.Stat(path)
}

func (stub *stubFileSystem) RemoveAll(path string) error {
	if removalError, failureConfigured := stub.removalFailures[path]; failureConfigured {
		return removalError
	}
	stub.removedPaths = append(stub.removedPaths, path)
	return nil
}

type stubConfirmationPrompter struct {
	response bool
	err      error
	prompted bool
}

func (stub *stubConfirmationPrompter) Confirm(_ string) (bool, error) {
	stub.prompted = true
	return stub.response, stub.err
}

func newSweepService(t *testing.T, fileSystem sweep.FileSystem, prompter *stubConfirmationPrompter, outputBuffer *bytes.Buffer) *sweep.Service {
	t.Helper()
	service, serviceError := sweep.NewService(sweep.Dependencies{
		FileSystem: fileSystem,
		Prompter:   prompter,
		Reporter:   ui.NewWriterReporter(outputBuffer),
	})
	require.NoError(t, serviceError)
	return service
}

func TestSweepWithoutTargetsSkipsPrompt(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath, "src/pkg")
	prompter := &stubConfirmationPrompter{}
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, newStubFileSystem(), prompter, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
	})

	require.NoError(t, sweepError)
	require.False(t, prompter.prompted)
	require.Contains(t, outputBuffer.String(), "No dependency directories found.")
}

func TestSweepRemovesConfirmedTargetsDeepestFirst(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath,
		"app/node_modules",
		"app/packages/site/node_modules",
	)
	fileSystem := newStubFileSystem()
	prompter := &stubConfirmationPrompter{response: true}
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, fileSystem, prompter, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
	})

	require.NoError(t, sweepError)
	require.True(t, prompter.prompted)
	require.Equal(t, []string{
		filepath.Join(rootPath, "app", "packages", "site", "node_modules"),
		filepath.Join(rootPath, "app", "node_modules"),
	}, fileSystem.removedPaths)
	require.Contains(t, outputBuffer.String(), "Found 2 directories to delete:")
	require.Contains(t, outputBuffer.String(), "Removed 2 directories")
}

func TestSweepDeclinedConfirmationCancelsRemoval(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath, "app/node_modules")
	fileSystem := newStubFileSystem()
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, fileSystem, &stubConfirmationPrompter{response: false}, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
	})

	require.NoError(t, sweepError)
	require.Empty(t, fileSystem.removedPaths)
	require.Contains(t, outputBuffer.String(), "Operation cancelled.")
}

func TestSweepDryRunListsWithoutPromptingOrRemoving(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath, "app/node_modules")
	fileSystem := newStubFileSystem()
	prompter := &stubConfirmationPrompter{response: true}
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, fileSystem, prompter, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
		DryRun:           true,
	})

	require.NoError(t, sweepError)
	require.False(t, prompter.prompted)
	require.Empty(t, fileSystem.removedPaths)
	require.Contains(t, outputBuffer.String(), "Found 1 directories to delete:")
}

func TestSweepTreatsVanishedTargetAsNoOp(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath,
		"app/node_modules",
		"lib/node_modules",
	)
	vanishedPath := filepath.Join(rootPath, "app", "node_modules")
	fileSystem := newStubFileSystem()
	fileSystem.missingPaths[vanishedPath] = struct{}{}
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, fileSystem, &stubConfirmationPrompter{}, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
		AssumeYes:        true,
	})

	require.NoError(t, sweepError)
	require.Equal(t, []string{filepath.Join(rootPath, "lib", "node_modules")}, fileSystem.removedPaths)
	require.Contains(t, outputBuffer.String(), "Removed 1 directories")
}

func TestSweepAbortsOnFirstRemovalFailure(t *testing.T) {
	rootPath := t.TempDir()
	createDirectoryTree(t, rootPath,
		"app/node_modules",
		"app/packages/site/node_modules",
	)
	deepestPath := filepath.Join(rootPath, "app", "packages", "site", "node_modules")
	removalFailure := errors.New("directory is open in another process")
	fileSystem := newStubFileSystem()
	fileSystem.removalFailures[deepestPath] = removalFailure
	outputBuffer := &bytes.Buffer{}
	service := newSweepService(t, fileSystem, &stubConfirmationPrompter{}, outputBuffer)

	sweepError := service.Sweep(context.Background(), sweep.Options{
		WorkingDirectory: rootPath,
		TargetNames:      []string{"node_modules"},
		AssumeYes:        true,
	})

	require.ErrorIs(t, sweepError, removalFailure)
	require.ErrorContains(t, sweepError, "failed to delete")
	require.Empty(t, fileSystem.removedPaths)
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	outputBuffer := &bytes.Buffer{}

	_, missingFileSystemError := sweep.NewService(sweep.Dependencies{
		Prompter: &stubConfirmationPrompter{},
		Reporter: ui.NewWriterReporter(outputBuffer),
	})
	require.ErrorIs(t, missingFileSystemError, sweep.ErrFileSystemNotConfigured)

	_, missingPrompterError := sweep.NewService(sweep.Dependencies{
		FileSystem: newStubFileSystem(),
		Reporter:   ui.NewWriterReporter(outputBuffer),
	})
	require.ErrorIs(t, missingPrompterError, sweep.ErrPrompterNotConfigured)

	_, missingReporterError := sweep.NewService(sweep.Dependencies{
		FileSystem: newStubFileSystem(),
		Prompter:   &stubConfirmationPrompter{},
	})
	require.ErrorIs(t, missingReporterError, sweep.ErrReporterNotConfigured)
}
