package ioutils

import (
	"fmt"
	"net/url"
	"path"
)

// DeriveFilename returns the filename an audio URL is saved under.
//
// The last element of the URL path, still percent-encoded, is used when it
// carries a known audio extension. Otherwise, including when the URL does not parse, the name
// falls back to "audio_<index>.mp3", where index is the URL's position in
// its taxon group.
func DeriveFilename(rawURL string, index int) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.EscapedPath()); HasAudioExtension(name) {
			return name
		}
	}
	return fmt.Sprintf("audio_%d.mp3", index)
}
