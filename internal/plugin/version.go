package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/types"
)

// VersionResolver is the fallback version-resolution service consulted
// when neither the report plugin request nor the build declares a
// version for a plugin.
type VersionResolver interface {
	// Resolve returns the version to use for the given plugin.
	Resolve(ctx context.Context, p *model.Plugin, s *model.Session) (string, error)
}

// repositoryVersionResolver resolves against the installed manifest
// repository, picking the highest installed version.
type repositoryVersionResolver struct {
	repoDir string
	logger  *slog.Logger
}

// NewRepositoryVersionResolver creates a VersionResolver scanning the
// manifest repository under repoDir.
func NewRepositoryVersionResolver(repoDir string, logger *slog.Logger) VersionResolver {
	return &repositoryVersionResolver{
		repoDir: repoDir,
		logger:  logger,
	}
}

func (r *repositoryVersionResolver) Resolve(ctx context.Context, p *model.Plugin, s *model.Session) (string, error) {
	dir := filepath.Join(r.repoDir, p.GroupID, p.ArtifactID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", types.WrapError(types.VERSION_NOT_INSTALLED,
			fmt.Sprintf("no installed versions of %s", p.Key()), err)
	}

	best := ""
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := entry.Name()
		if err := validateVersion(candidate); err != nil {
			r.logger.Debug("skipping malformed version directory",
				"plugin", p.Key().String(), "dir", candidate)
			continue
		}
		if best == "" || CompareVersions(candidate, best) > 0 {
			best = candidate
		}
	}

	if best == "" {
		return "", types.NewErrorf(types.VERSION_NOT_INSTALLED,
			"no installed versions of %s", p.Key())
	}

	r.logger.Debug("resolved version from repository",
		"plugin", p.Key().String(), "version", best)
	return best, nil
}

// CompareVersions compares two version strings.
// Returns:
//   - -1 if v1 < v2
//   - 0 if v1 == v2
//   - 1 if v1 > v2
//
// Both versions must be major.minor.patch; the "v" prefix is handled
// automatically (v1.0.0 == 1.0.0).
func CompareVersions(v1, v2 string) int {
	parts1 := parseVersionParts(normalizeVersion(v1))
	parts2 := parseVersionParts(normalizeVersion(v2))

	for i := 0; i < 3; i++ {
		if parts1[i] < parts2[i] {
			return -1
		}
		if parts1[i] > parts2[i] {
			return 1
		}
	}

	return 0
}

// normalizeVersion removes the "v" prefix from a version string if present.
func normalizeVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}

// parseVersionParts parses a version string into [major, minor, patch].
// Returns [0, 0, 0] if parsing fails (should not happen after validation).
func parseVersionParts(version string) [3]int {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return [3]int{}
	}

	var result [3]int
	for i := 0; i < 3; i++ {
		val, err := strconv.Atoi(parts[i])
		if err != nil {
			return [3]int{}
		}
		result[i] = val
	}

	return result
}

// validateVersion checks if a version string is a valid
// major.minor.patch version, with an optional "v" prefix.
func validateVersion(version string) error {
	version = normalizeVersion(version)

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return fmt.Errorf("version must be in format major.minor.patch, got %s", version)
	}

	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("version component %d is empty", i)
		}
		val, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("version component %d is not a valid number: %s", i, part)
		}
		if val < 0 {
			return fmt.Errorf("version component %d must be non-negative, got %d", i, val)
		}
	}

	return nil
}
