package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNodeNameLength bounds node names accepted from the command line.
const maxNodeNameLength = 256

// ValidateNodeName validates a node name given as a root selection.
//
// Names come straight from captured snapshots, so almost anything is allowed.
// The rules only reject input that cannot be a real node name:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}

	if len(name) > maxNodeNameLength {
		return New(ErrCodeInvalidInput, "node name too long (max %d characters)", maxNodeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}

	return nil
}

// HistoryFormat identifies the encoding of a snapshot history file.
type HistoryFormat string

// Supported history encodings.
const (
	HistoryJSON HistoryFormat = "json"
	HistoryYAML HistoryFormat = "yaml"
)

// ValidateHistoryFilename checks that a history file has a supported
// extension and returns its encoding.
func ValidateHistoryFilename(path string) (HistoryFormat, error) {
	if path == "" {
		return "", New(ErrCodeInvalidPath, "history path cannot be empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return HistoryJSON, nil
	case ".yaml", ".yml":
		return HistoryYAML, nil
	default:
		return "", New(ErrCodeInvalidHistory, "unsupported history file %q (want .json, .yaml or .yml)", filepath.Base(path))
	}
}

// ValidateOutputPath validates a path artifacts will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path names a directory: %q", path)
	}

	return nil
}
