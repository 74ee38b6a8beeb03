package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dupmap/dupmap/pkg/config"
	"github.com/dupmap/dupmap/pkg/parser"
)

// Scanner finds source files in a directory tree.
type Scanner struct {
	config *config.Config
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanDir recursively scans a directory for supported source files.
// Files are returned in directory traversal order. Paths containing an
// excluded marker anywhere (substring match) are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 256)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if s.config.ShouldExclude(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}

		return nil
	})

	return files, walkErr
}

// ScanFile checks if a single file should be analyzed.
func (s *Scanner) ScanFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if s.config.ShouldExclude(path) {
		return false, nil
	}
	return parser.DetectLanguage(path) != parser.LangUnknown, nil
}
