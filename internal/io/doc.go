// Package ioutils provides file system and naming utilities.
//
// This package contains functions for:
//   - Taxon folder naming
//   - Audio filename derivation from URLs
//   - File writing
//   - Directory creation
//
// # Folder Names
//
// Use SanitizeTaxonName to turn a scientific name into a folder name:
//
//	dir := ioutils.SanitizeTaxonName("Turdus merula") // Returns "Turdus_merula"
//
// # File Names
//
// DeriveFilename picks the name an audio URL is saved under:
//
//	ioutils.DeriveFilename("https://example.org/a/call.wav", 3) // "call.wav"
//	ioutils.DeriveFilename("https://example.org/media/42", 3)   // "audio_3.mp3"
//
// # File Operations
//
//	err := ioutils.EnsureDir("/data/bird_sounds/Turdus_merula")
//	err = ioutils.WriteFile(ctx, "/data/report.json", data)
package ioutils
