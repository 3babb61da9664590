// Package audio provides post-download services for recordings: ID3 tag
// writing and per-taxon playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to MP3 recordings:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	if audio.CanTag(path) {
//	    err := tagger.SaveTags(path, "Turdus merula", sourceURL)
//	}
//
// The tagger sets the title (file stem), artist (taxon), album and a
// comment holding the source URL.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(taxon, []string{"a.mp3", "b.wav"})
//	os.WriteFile(creator.PlaylistPath(folder), []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio
