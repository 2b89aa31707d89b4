package sweep

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// TargetScanner locates directories whose name matches a configured target set.
type TargetScanner struct {
	targetNames map[string]struct{}
}

// NewTargetScanner constructs a scanner for the provided directory names.
func NewTargetScanner(targetNames []string) *TargetScanner {
	targetSet := make(map[string]struct{}, len(targetNames))
	for _, targetName := range targetNames {
		trimmedName := strings.TrimSpace(targetName)
		if len(trimmedName) == 0 {
			continue
		}
		targetSet[trimmedName] = struct{}{}
	}
	return &TargetScanner{targetNames: targetSet}
}

// Scan walks the root and returns matching directories that are not nested
// inside another match. The walk does not descend into matched directories,
// and candidates with a matching strict ancestor are excluded so their
// removal is subsumed by the ancestor's.
func (scanner *TargetScanner) Scan(rootPath string) ([]string, error) {
	var matchedDirectories []string

	walkError := filepath.WalkDir(rootPath, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return nil
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if _, isTarget := scanner.targetNames[directoryEntry.Name()]; !isTarget {
			return nil
		}

		if !scanner.hasMatchingAncestor(currentPath) {
			matchedDirectories = append(matchedDirectories, currentPath)
		}
		return fs.SkipDir
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(matchedDirectories)
	return matchedDirectories, nil
}

func (scanner *TargetScanner) hasMatchingAncestor(candidatePath string) bool {
	ancestorPath := filepath.Dir(candidatePath)
	for {
		if _, isTarget := scanner.targetNames[filepath.Base(ancestorPath)]; isTarget {
			return true
		}
		parentPath := filepath.Dir(ancestorPath)
		if parentPath == ancestorPath {
			return false
		}
		ancestorPath = parentPath
	}
}

// OrderDeepestFirst sorts the paths by descending path-component count so
// children are processed before their ancestors; ties order ascending by path.
func OrderDeepestFirst(targetPaths []string) []string {
	orderedPaths := append([]string{}, targetPaths...)
	sort.SliceStable(orderedPaths, func(firstIndex int, secondIndex int) bool {
		firstDepth := pathComponentCount(orderedPaths[firstIndex])
		secondDepth := pathComponentCount(orderedPaths[secondIndex])
		if firstDepth != secondDepth {
			return firstDepth > secondDepth
		}
		return orderedPaths[firstIndex] < orderedPaths[secondIndex]
	})
	return orderedPaths
}

func pathComponentCount(targetPath string) int {
	cleanedPath := filepath.Clean(targetPath)
	return len(strings.Split(cleanedPath, string(filepath.Separator)))
}
