// Package ioutils provides file system utilities for birdsound-dl.
//
// This package contains functions for:
//   - Folder name sanitization
//   - Filename derivation
//   - File writing
//   - Directory creation
package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// AudioExtensions lists the file extensions recognized as playable audio.
var AudioExtensions = []string{".mp3", ".wav"}

// HasAudioExtension reports whether name ends, case-insensitively, in one of
// AudioExtensions.
func HasAudioExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AudioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Parent directories are created.
//
// Example:
//
//	err := WriteFile(ctx, "/data/bird_sounds/report.json", body)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeTaxonName maps a taxon name to a folder name.
//
// Every rune that is not a letter or a number (digits, superscripts,
// vulgar fractions) is replaced with an
// underscore, one for one, so the result has the same rune count as the
// input. The mapping depends on the name alone and is idempotent.
//
// Distinct names can collide ("Larus fuscus" and "Larus-fuscus" both map
// to "Larus_fuscus"); callers that care must detect this themselves.
//
// Example:
//
//	SanitizeTaxonName("Turdus merula")          // "Turdus_merula"
//	SanitizeTaxonName("Parus major (L., 1758)") // "Parus_major__L___1758_"
func SanitizeTaxonName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return '_'
	}, name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
