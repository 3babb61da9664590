package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func writeUntagged(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not really mpeg frames"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCanTag(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a/XC1.mp3", true},
		{"a/XC1.MP3", true},
		{"a/XC1.wav", false},
		{"a/XC1", false},
	}
	for _, tt := range tests {
		if got := CanTag(tt.path); got != tt.want {
			t.Errorf("CanTag(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTagger_SaveTags(t *testing.T) {
	path := writeUntagged(t, "XC1001.mp3")

	tagger := NewTagger(nil)
	if err := tagger.SaveTags(path, "Turdus merula", "https://example.org/XC1001.mp3"); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "XC1001" {
		t.Errorf("Title = %q, want %q", got, "XC1001")
	}
	if got := tag.Artist(); got != "Turdus merula" {
		t.Errorf("Artist = %q, want %q", got, "Turdus merula")
	}
	if got := tag.Album(); got != "Bird sounds" {
		t.Errorf("Album = %q, want %q", got, "Bird sounds")
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d comment frames, want 1", len(comments))
	}
	cf, ok := comments[0].(id3v2.CommentFrame)
	if !ok {
		t.Fatalf("comment frame has type %T", comments[0])
	}
	if cf.Text != "https://example.org/XC1001.mp3" {
		t.Errorf("comment = %q", cf.Text)
	}
}

func TestTagger_SaveTagsTwiceKeepsOneComment(t *testing.T) {
	path := writeUntagged(t, "call.mp3")
	tagger := NewTagger(nil)

	for i := 0; i < 2; i++ {
		if err := tagger.SaveTags(path, "Corvus corax", "https://example.org/call.mp3"); err != nil {
			t.Fatalf("SaveTags #%d: %v", i, err)
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if n := len(tag.GetFrames(tag.CommonID("Comments"))); n != 1 {
		t.Errorf("got %d comment frames, want 1", n)
	}
}

func TestTagger_DoNotModify(t *testing.T) {
	path := writeUntagged(t, "keep.mp3")

	first := NewTagger(nil)
	if err := first.SaveTags(path, "Corvus corax", "u"); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	second := NewTagger(&TagConfig{
		Title:    TagDoNotModify,
		Artist:   TagEmpty,
		Album:    TagDoNotModify,
		Comments: TagDoNotModify,
	})
	if err := second.SaveTags(path, "ignored", "ignored"); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "keep" {
		t.Errorf("Title = %q, want %q", got, "keep")
	}
	if got := tag.Artist(); got != "" {
		t.Errorf("Artist = %q, want empty", got)
	}
}

func TestTagger_MissingFile(t *testing.T) {
	tagger := NewTagger(nil)
	if err := tagger.SaveTags(filepath.Join(t.TempDir(), "absent.mp3"), "x", "y"); err == nil {
		t.Error("expected error for missing file")
	}
}
