package buildindex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// UnknownCreated is substituted when filesystem metadata cannot be read.
const UnknownCreated = "Unknown"

var buildIDPattern = regexp.MustCompile(`^\d{5}$`)

// Build is one scanned build directory.
type Build struct {
	ID        string
	Path      string
	FileCount int
	Created   string // YYYY-MM-DD HH:MM:SS, or UnknownCreated
}

// Scan returns the build directories directly under root, newest-numbered
// first. A missing root is created empty rather than treated as an error.
func Scan(root, artifactExt string) ([]Build, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("create builds dir %s: %w", root, err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read builds dir %s: %w", root, err)
	}

	var builds []Build
	for _, entry := range entries {
		if !entry.IsDir() || !buildIDPattern.MatchString(entry.Name()) {
			continue
		}

		path := filepath.Join(root, entry.Name())

		count, err := countArtifacts(path, artifactExt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		created := UnknownCreated
		if info, err := entry.Info(); err == nil {
			created = info.ModTime().Format("2006-01-02 15:04:05")
		}

		builds = append(builds, Build{
			ID:        entry.Name(),
			Path:      path,
			FileCount: count,
			Created:   created,
		})
	}

	// Fixed-width zero-padded IDs sort the same lexicographically and
	// numerically, so string comparison gives newest-first directly.
	sort.Slice(builds, func(i, j int) bool {
		return builds[i].ID > builds[j].ID
	})

	return builds, nil
}

func countArtifacts(dir, ext string) (int, error) {
	files, err := listArtifacts(dir, ext)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// listArtifacts returns artifact file names directly inside dir, sorted
// ascending. Subdirectories are never descended into.
func listArtifacts(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// NextID returns the next available build identifier: the highest existing
// numeric ID plus one, zero-padded to five digits. "00001" when no builds
// exist. IDs past 99999 overflow into six digits; freed IDs are not reused.
func NextID(builds []Build) string {
	maxID := 0
	for _, b := range builds {
		if n, err := strconv.Atoi(b.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("%05d", maxID+1)
}

// Pluralize returns singular when n is exactly 1, plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
