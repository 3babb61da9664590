package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/birdsound-dl/internal/model"
)

// PlaylistCreator generates a playlist for one taxon folder.
//
// Entries are plain filenames, so the playlist must live in the same
// folder as the recordings. Durations are not known without decoding the
// audio and are written as -1 (unknown), which both formats allow.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist("Turdus merula", []string{"1.mp3", "2.wav"})
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Turdus merula - 1
//	// 1.mp3
//	// #EXTINF:-1,Turdus merula - 2
//	// 2.wav
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only applies to M3U and adds #EXTINF lines.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// PlaylistEntry is one file of a playlist and the taxon it was recorded for.
type PlaylistEntry struct {
	Taxon string
	File  string
}

// CreatePlaylist generates playlist content listing files in order.
func (p *PlaylistCreator) CreatePlaylist(taxon string, files []string) string {
	entries := make([]PlaylistEntry, len(files))
	for i, file := range files {
		entries[i] = PlaylistEntry{Taxon: taxon, File: file}
	}
	return p.CreateEntries(entries)
}

// CreateEntries generates playlist content for entries that may belong to
// different taxa, as happens when taxa share a folder.
func (p *PlaylistCreator) CreateEntries(entries []PlaylistEntry) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

// PlaylistPath returns where the playlist of a taxon folder is written:
// <folder>/<folder name><ext>.
func (p *PlaylistCreator) PlaylistPath(folder string) string {
	return filepath.Join(folder, filepath.Base(folder)+p.format.Extension())
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Taxon - filename1
//	filename1.mp3
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", e.Taxon, entryTitle(e.File)))
		}
		sb.WriteString(e.File + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Taxon - filename1
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.File))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, e.Taxon, entryTitle(e.File)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// entryTitle is the filename without its extension.
func entryTitle(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
