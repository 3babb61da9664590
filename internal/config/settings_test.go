package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/handiism/birdsound-dl/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MinFilesPerTaxon != 10 {
		t.Errorf("MinFilesPerTaxon = %d, want 10", s.MinFilesPerTaxon)
	}
	if !reflect.DeepEqual(s.ReferenceFields, []string{"references", "associatedMedia"}) {
		t.Errorf("ReferenceFields = %v", s.ReferenceFields)
	}
	if s.OutputRoot != "bird_sounds" {
		t.Errorf("OutputRoot = %q, want bird_sounds", s.OutputRoot)
	}
	if s.TaxonField != "scientificName" {
		t.Errorf("TaxonField = %q", s.TaxonField)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Error("missing file should yield defaults")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"min_files_per_taxon": 3, "reference_fields": ["associatedMedia"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.MinFilesPerTaxon != 3 {
		t.Errorf("MinFilesPerTaxon = %d, want 3", s.MinFilesPerTaxon)
	}
	if !reflect.DeepEqual(s.ReferenceFields, []string{"associatedMedia"}) {
		t.Errorf("ReferenceFields = %v", s.ReferenceFields)
	}
	if s.OutputRoot != "bird_sounds" {
		t.Errorf("OutputRoot should keep default, got %q", s.OutputRoot)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"min_files_per_taxon": `},
		{"negative minimum", `{"min_files_per_taxon": -1}`},
		{"zero workers", `{"max_concurrent_files": 0}`},
		{"bad playlist format", `{"playlist_format": "wpl"}`},
		{"empty output root", `{"output_root": " "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	s := DefaultSettings()
	s.TagAudio = true
	s.PlaylistFormat = "pls"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, s) {
		t.Errorf("loaded = %+v, want %+v", loaded, s)
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.RequestTimeoutSeconds = 1.5
	s.PlaylistFormat = "pls"

	opts := s.ToClientOptions()
	if opts.Timeout != 1500*time.Millisecond {
		t.Errorf("Timeout = %v", opts.Timeout)
	}
	if opts.UserAgent != "birdsound-dl" {
		t.Errorf("UserAgent = %q", opts.UserAgent)
	}
	if s.ToPlaylistFormat() != model.PlaylistFormatPLS {
		t.Error("expected PLS")
	}
}
