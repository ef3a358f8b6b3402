package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Supported file extensions for input and output documents.
var (
	inputExts  = map[string]bool{".csv": true, ".xlsx": true}
	outputExts = map[string]bool{".pptx": true}
)

// ValidateInputPath checks that path names a readable tabular format.
// Existence is checked later by the importer so that the OS error is preserved.
func ValidateInputPath(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !inputExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported input format %q (must be .csv or .xlsx)", ext)
	}
	return nil
}

// ValidateOutputPath checks that path names a presentation document.
func ValidateOutputPath(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !outputExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported output format %q (must be .pptx)", ext)
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
