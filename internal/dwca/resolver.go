package dwca

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/birdsound-dl/internal/model"
	"golang.org/x/net/html/charset"
)

// DwCNamespace is the Darwin Core terms namespace.
const DwCNamespace = "http://rs.tdwg.org/dwc/terms/"

// mediaElement is the element that carries the audio URL.
var mediaElement = xml.Name{Space: DwCNamespace, Local: "associatedMedia"}

// Getter fetches a document. Implementations return an error for any
// non-success status.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Resolver turns a metadata pointer into the audio URL it embeds.
//
// Each call issues exactly one request. There is no retry and no cache.
type Resolver struct {
	getter Getter
}

// NewResolver creates a Resolver that fetches documents with g.
func NewResolver(g Getter) *Resolver {
	return &Resolver{getter: g}
}

// Resolve fetches pointerURL and returns the text of its first
// dwc:associatedMedia element.
//
// All failures (transport, non-success status, malformed XML, no media
// element) are returned as errors matching model.ErrResolutionFailed. A
// document without a usable element matches model.ErrNoMedia as well.
func (r *Resolver) Resolve(ctx context.Context, pointerURL string) (string, error) {
	body, err := r.getter.Get(ctx, pointerURL)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %w", model.ErrResolutionFailed, pointerURL, err)
	}

	media, err := findMedia(body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", pointerURL, err)
	}
	return media, nil
}

// findMedia scans the whole document, so a syntax error anywhere fails the
// lookup even when the element was already seen.
func findMedia(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		media string
		found bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: parse: %w", model.ErrResolutionFailed, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || found || start.Name != mediaElement {
			continue
		}
		var el struct {
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&el, &start); err != nil {
			return "", fmt.Errorf("%w: parse: %w", model.ErrResolutionFailed, err)
		}
		media = strings.TrimSpace(el.Text)
		found = true
	}

	if media == "" {
		return "", model.ErrNoMedia
	}
	return media, nil
}
