package sweep

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem exposes the filesystem operations the sweep service requires.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	RemoveAll(path string) error
}

// OSFileSystem implements FileSystem using the operating system facilities.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// Stat reports file information for the path.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// RemoveAll removes the path and any children it contains.
func (OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// DirectorySize sums the sizes of all regular files beneath the directory.
// Unreadable entries are skipped so reporting stays best-effort.
func DirectorySize(directoryPath string) uint64 {
	var totalSize uint64
	_ = filepath.WalkDir(directoryPath, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil || directoryEntry.IsDir() {
			return nil
		}
		fileInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			return nil
		}
		totalSize += uint64(fileInformation.Size())
		return nil
	})
	return totalSize
}
