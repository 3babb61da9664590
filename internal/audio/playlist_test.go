package audio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/birdsound-dl/internal/model"
)

var testFiles = []string{"XC1001.mp3", "audio_3.mp3", "call.wav"}

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist("Turdus merula", testFiles)

	if content != "XC1001.mp3\naudio_3.mp3\ncall.wav\n" {
		t.Errorf("M3U content = %q", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist("Turdus merula", testFiles)

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Turdus merula - call\ncall.wav\n") {
		t.Errorf("Extended M3U should contain #EXTINF before each entry: %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist("Corvus corax", testFiles)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=audio_3.mp3\n") {
		t.Error("PLS should contain File2=")
	}
	if !strings.Contains(content, "Title1=Corvus corax - XC1001\n") {
		t.Error("PLS should contain titles")
	}
	if !strings.Contains(content, "NumberOfEntries=3\n") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistCreator_CreateEntries(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreateEntries([]PlaylistEntry{
		{Taxon: "Larus fuscus", File: "a.mp3"},
		{Taxon: "Larus-fuscus", File: "b.mp3"},
	})

	if !strings.Contains(content, "Title1=Larus fuscus - a\n") || !strings.Contains(content, "Title2=Larus-fuscus - b\n") {
		t.Errorf("PLS should title each entry with its own taxon: %q", content)
	}
	if !strings.Contains(content, "NumberOfEntries=2\n") {
		t.Error("PLS should count every entry")
	}
}

func TestPlaylistCreator_Empty(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)
	if content := creator.CreatePlaylist("x", nil); !strings.Contains(content, "NumberOfEntries=0") {
		t.Errorf("empty PLS = %q", content)
	}
}

func TestPlaylistCreator_PlaylistPath(t *testing.T) {
	folder := filepath.Join("bird_sounds", "Turdus_merula")

	m3u := NewPlaylistCreator(model.PlaylistFormatM3U, true)
	if got, want := m3u.PlaylistPath(folder), filepath.Join(folder, "Turdus_merula.m3u"); got != want {
		t.Errorf("PlaylistPath = %q, want %q", got, want)
	}

	pls := NewPlaylistCreator(model.PlaylistFormatPLS, true)
	if got, want := pls.PlaylistPath(folder), filepath.Join(folder, "Turdus_merula.pls"); got != want {
		t.Errorf("PlaylistPath = %q, want %q", got, want)
	}
}
