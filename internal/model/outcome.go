package model

import (
	"errors"
	"fmt"
)

// Error kinds. Only ErrInputUnreadable ends a run; the others are
// recorded against a single item and processing continues.
var (
	// ErrInputUnreadable means the dataset is missing or cannot be parsed.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrResolutionFailed means a metadata pointer yielded no audio URL.
	ErrResolutionFailed = errors.New("resolution failed")

	// ErrNoMedia means a metadata document was fetched and parsed but
	// carries no media element.
	ErrNoMedia = fmt.Errorf("%w: no media element", ErrResolutionFailed)

	// ErrDownloadFailed means fetching or writing one audio file failed.
	ErrDownloadFailed = errors.New("download failed")
)

// DownloadOutcome is the result of downloading a single URL.
type DownloadOutcome struct {
	// Taxon is the taxon the URL was grouped under.
	Taxon string

	// URL is the source URL.
	URL string

	// Index is the URL's position within its taxon group.
	Index int

	// Path is the target file path. Set even on failure once it is known.
	Path string

	// Bytes is the number of bytes written to Path.
	Bytes int64

	// Err is nil on success and matches ErrDownloadFailed otherwise.
	Err error
}

// OK reports whether the download succeeded.
func (o DownloadOutcome) OK() bool {
	return o.Err == nil
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS
)

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}

// ParsePlaylistFormat maps a settings value ("m3u", "pls") to a PlaylistFormat.
// Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch s {
	case "pls":
		return PlaylistFormatPLS
	default:
		return PlaylistFormatM3U
	}
}
