// =============================================================================
// Store Sales Analyzer - File Utilities
// =============================================================================
//
// Small file-handling helpers shared by the CLI and the HTTP viewer:
//   - Output directory management
//   - Output file naming with {timestamp} and {uuid} placeholders
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and any parents) if it does not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// BuildOutputName expands the output file-name format.
//
// Placeholders:
//   - {timestamp} : current time as YYYYMMDD_HHMMSS
//   - {uuid}      : a random UUID
//
// A format without placeholders passes through unchanged, giving a fixed
// artifact name that later runs overwrite.
func BuildOutputName(format string) string {
	name := format
	if strings.Contains(name, "{timestamp}") {
		name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	}
	if strings.Contains(name, "{uuid}") {
		name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	}
	return name
}

// OutputPath joins the output directory with an expanded file name, creating
// the directory first.
func OutputPath(dir, format string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, BuildOutputName(format)), nil
}
