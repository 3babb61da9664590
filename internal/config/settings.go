package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/birdsound-dl/internal/http"
	"github.com/handiism/birdsound-dl/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Input settings
	DatasetPath     string   `json:"dataset_path"`
	TaxonField      string   `json:"taxon_field"`
	ReferenceFields []string `json:"reference_fields"`

	// Selection settings
	MinFilesPerTaxon int `json:"min_files_per_taxon"`

	// Download settings
	OutputRoot                 string `json:"output_root"`
	MaxConcurrentTaxaDownload  int    `json:"max_concurrent_taxa"`
	MaxConcurrentFilesDownload int    `json:"max_concurrent_files"`
	ProbeFileSizes             bool   `json:"probe_file_sizes"`

	// HTTP settings
	RequestTimeoutSeconds float64 `json:"request_timeout_seconds"`
	UserAgent             string  `json:"user_agent"`
	ProxyURL              string  `json:"proxy_url"`

	// Tag settings
	TagAudio bool   `json:"tag_audio"`
	TagAlbum string `json:"tag_album"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DatasetPath:     "occurrence.txt",
		TaxonField:      "scientificName",
		ReferenceFields: []string{"references", "associatedMedia"},

		MinFilesPerTaxon: 10,

		OutputRoot:                 "bird_sounds",
		MaxConcurrentTaxaDownload:  2,
		MaxConcurrentFilesDownload: 4,
		ProbeFileSizes:             false,

		RequestTimeoutSeconds: 0,
		UserAgent:             "birdsound-dl",

		TagAudio: false,
		TagAlbum: "Bird sounds",

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file.
// A missing file yields the defaults; keys absent from the file keep their
// default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, settings.Validate()
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings describe a runnable job.
func (s *Settings) Validate() error {
	switch {
	case strings.TrimSpace(s.TaxonField) == "":
		return fmt.Errorf("taxon_field must not be empty")
	case strings.TrimSpace(s.OutputRoot) == "":
		return fmt.Errorf("output_root must not be empty")
	case s.MinFilesPerTaxon < 0:
		return fmt.Errorf("min_files_per_taxon must not be negative, got %d", s.MinFilesPerTaxon)
	case s.MaxConcurrentTaxaDownload < 1:
		return fmt.Errorf("max_concurrent_taxa must be at least 1, got %d", s.MaxConcurrentTaxaDownload)
	case s.MaxConcurrentFilesDownload < 1:
		return fmt.Errorf("max_concurrent_files must be at least 1, got %d", s.MaxConcurrentFilesDownload)
	case s.RequestTimeoutSeconds < 0:
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}
	switch s.PlaylistFormat {
	case "m3u", "pls":
	default:
		return fmt.Errorf("playlist_format must be m3u or pls, got %q", s.PlaylistFormat)
	}
	return nil
}

// ToClientOptions converts settings to HTTP client options.
func (s *Settings) ToClientOptions() http.Options {
	return http.Options{
		UserAgent: s.UserAgent,
		Timeout:   time.Duration(s.RequestTimeoutSeconds * float64(time.Second)),
		ProxyURL:  s.ProxyURL,
	}
}

// ToPlaylistFormat converts the playlist format name.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}
