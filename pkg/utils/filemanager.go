// =============================================================================
// Sales Analytics - File Manager
// =============================================================================
//
// This module handles the file system concerns around the pipeline:
//   - Directory management (input, output, archive)
//   - Feed file discovery
//   - Output file naming with placeholder templates
//   - Archival of processed feed files
//
// The pipeline itself never touches the file system beyond what this
// module exposes; the core packages deal purely in values.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// feedExtensions are the file extensions recognized as sales feeds.
var feedExtensions = []string{".txt", ".csv", ".xlsx"}

// FileManager handles file system operations for the pipeline.
type FileManager struct {
	// InputDir is the directory scanned for feed files.
	InputDir string

	// OutputDir is the directory where reports and dumps are written.
	OutputDir string

	// ArchiveDir is the directory where processed feeds are moved.
	ArchiveDir string
}

// NewFileManager creates a new FileManager.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all managed directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// DISCOVERY
// =============================================================================

// DiscoverFeedFiles finds all feed files in the input directory.
//
// RETURNS:
//   - Paths of regular files with a recognized feed extension, sorted by
//     name for a deterministic processing order.
func (fm *FileManager) DiscoverFeedFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, allowed := range feedExtensions {
			if ext == allowed {
				files = append(files, filepath.Join(fm.InputDir, entry.Name()))
				break
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name from a template.
//
// PARAMETERS:
//   - format: The name template. Supported placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {feed}      - Base name of the source feed file, extension stripped
//   - feedPath: The source feed path backing the {feed} placeholder.
//
// EXAMPLE:
//
//	GenerateOutputFileName("sales_report_{feed}.txt", "input/dec.txt")
//	-> "sales_report_dec.txt"
func GenerateOutputFileName(format, feedPath string) string {
	feedBase := strings.TrimSuffix(filepath.Base(feedPath), filepath.Ext(feedPath))

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": time.Now().Format("20060102_150405"),
		"{feed}":      feedBase,
	}

	name := format
	for placeholder, value := range replacements {
		name = strings.ReplaceAll(name, placeholder, value)
	}

	return name
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveFeedFile moves a processed feed file into the archive directory.
// The archived copy gets a timestamp prefix so repeated deliveries of the
// same file name never collide.
//
// RETURNS:
//   - The path of the archived file.
//   - An error if the move fails.
func (fm *FileManager) ArchiveFeedFile(feedPath string) (string, error) {
	archivePath := filepath.Join(
		fm.ArchiveDir,
		time.Now().Format("20060102_150405")+"_"+filepath.Base(feedPath),
	)

	if err := os.Rename(feedPath, archivePath); err != nil {
		// Rename fails across file systems; fall back to copy + remove.
		if err := copyFile(feedPath, archivePath); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", feedPath, err)
		}
		if err := os.Remove(feedPath); err != nil {
			return "", fmt.Errorf("failed to remove %s after archiving: %w", feedPath, err)
		}
	}

	return archivePath, nil
}

// copyFile copies a file's contents, preserving nothing but the bytes.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}

// =============================================================================
// HELPERS
// =============================================================================

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
