package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify sets the tag from the recording's taxon and source.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    AlbumName: "Bird sounds",
//	    Title:     TagModify,      // File stem
//	    Artist:    TagModify,      // Taxon name
//	    Album:     TagModify,      // AlbumName
//	    Comments:  TagDoNotModify, // Keep whatever the archive embedded
//	}
type TagConfig struct {
	// AlbumName is written to TALB when Album is TagModify.
	AlbumName string

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Comments controls the COMM (Comments) frame, which holds the source URL.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// set and the album is "Bird sounds".
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		AlbumName: "Bird sounds",
		Title:     TagModify,
		Artist:    TagModify,
		Album:     TagModify,
		Comments:  TagModify,
	}
}

// Tagger writes ID3 tags to downloaded MP3 recordings.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(path, "Turdus merula", sourceURL); err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// CanTag reports whether path is a file the tagger handles. Only .mp3 files
// carry ID3 tags; WAV and other containers are left untouched.
func CanTag(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// SaveTags writes ID3 tags to the MP3 file at path.
//
// The title is the filename without extension, the artist is the taxon and
// the comment is sourceURL. Files without a tag get a fresh one. Returns an
// error if the file cannot be opened or saved.
func (t *Tagger) SaveTags(path, taxon, sourceURL string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(stem)
	}

	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(taxon)
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(t.config.AlbumName)
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		tag.DeleteFrames(tag.CommonID("Comments"))
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "source",
			Text:        sourceURL,
		})
	}

	return tag.Save()
}
