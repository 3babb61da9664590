// Package config provides configuration management for birdsound-dl.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get the documented defaults:
//
//	settings := config.DefaultSettings()
//	// Reads occurrence.txt
//	// Keeps taxa with at least 10 audio files
//	// Writes to bird_sounds/<taxon>/
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.MinFilesPerTaxon = 25
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Dataset path and column names
//   - Minimum files per taxon
//   - Output root and concurrency limits
//   - HTTP timeout, user agent and proxy
//   - ID3 tagging
//   - Playlist generation
package config
