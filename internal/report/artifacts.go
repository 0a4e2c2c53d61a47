package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

func DefaultChecksumsPath(outJSONPath string) string {
	if strings.TrimSpace(outJSONPath) == "" {
		outJSONPath = "report.json"
	}
	return filepath.Join(filepath.Dir(outJSONPath), "checksums.sha256")
}

// Digest is the hex SHA-256 of an uploaded artifact.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// WriteChecksums writes a sha256sum-compatible file covering the given
// report outputs, sorted by path.
func WriteChecksums(checksumsPath string, artifactPaths []string) error {
	clean := make([]string, 0, len(artifactPaths))
	for _, p := range artifactPaths {
		if strings.TrimSpace(p) != "" {
			clean = append(clean, p)
		}
	}
	sort.Strings(clean)

	lines := make([]string, 0, len(clean))
	for _, p := range clean {
		b, err := os.ReadFile(p)
		if err != nil {
			return errors.Wrapf(err, "checksum read failed for %s", p)
		}
		lines = append(lines, fmt.Sprintf("%s  %s", Digest(b), filepath.Base(p)))
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := ensureDir(checksumsPath); err != nil {
		return err
	}
	return os.WriteFile(checksumsPath, []byte(content), 0o644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return errors.Wrapf(err, "create %s", dir)
	}
	return nil
}
