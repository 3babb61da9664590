package dwca

import (
	"net/url"

	ioutils "github.com/handiism/birdsound-dl/internal/io"
)

// ReferenceKind tells how a reference value leads to audio.
type ReferenceKind int

const (
	// DirectAudio means the reference is itself a playable audio URL.
	DirectAudio ReferenceKind = iota

	// MetadataPointer means the reference points at a metadata document
	// that has to be fetched to find the audio URL.
	MetadataPointer
)

func (k ReferenceKind) String() string {
	switch k {
	case DirectAudio:
		return "direct audio"
	case MetadataPointer:
		return "metadata pointer"
	default:
		return "unknown"
	}
}

// Classify decides whether ref is a direct audio URL or a metadata pointer.
//
// The URL path is inspected so that a query string or fragment does not
// hide the extension. References that do not parse as URLs are matched
// on the raw string.
func Classify(ref string) ReferenceKind {
	p := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		p = u.Path
	}
	if ioutils.HasAudioExtension(p) {
		return DirectAudio
	}
	return MetadataPointer
}
