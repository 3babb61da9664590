package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/birdsound-dl/internal/audio"
	ioutils "github.com/handiism/birdsound-dl/internal/io"
	"github.com/handiism/birdsound-dl/internal/model"
	"golang.org/x/sync/errgroup"
)

// FileDownloader streams one URL to a file. *http.Client implements it.
type FileDownloader interface {
	DownloadFile(ctx context.Context, rawURL, destPath string, onProgress func(written, total int64)) (int64, error)
}

// Fetcher downloads the files of one taxon into its folder.
//
// Example usage:
//
//	f := NewFetcher(client, "bird_sounds", 4)
//	f.Tagger = audio.NewTagger(nil)
//	outcomes := f.Fetch(ctx, "Turdus merula", urls)
type Fetcher struct {
	client FileDownloader
	root   string
	limit  int

	// Tagger, when set, tags every downloaded .mp3 file.
	Tagger *audio.Tagger

	// Playlist, when set, writes a playlist of the successful files.
	Playlist *audio.PlaylistCreator

	// OnProgress receives log events.
	OnProgress func(ProgressEvent)

	// OnBytes is called with the number of bytes received since the last call.
	OnBytes func(delta int64)

	// OnOutcome is called once per URL when its download ends.
	OnOutcome func(model.DownloadOutcome)

	mu        sync.Mutex
	playlists map[string][]audio.PlaylistEntry // by playlist path
}

// NewFetcher creates a Fetcher writing below root with at most limit
// concurrent downloads per taxon.
func NewFetcher(client FileDownloader, root string, limit int) *Fetcher {
	if limit < 1 {
		limit = 1
	}
	return &Fetcher{
		client:    client,
		root:      root,
		limit:     limit,
		playlists: make(map[string][]audio.PlaylistEntry),
	}
}

// Folder returns the folder a taxon's files are written to.
func (f *Fetcher) Folder(taxon string) string {
	return filepath.Join(f.root, ioutils.SanitizeTaxonName(taxon))
}

// Fetch downloads urls into the taxon's folder and returns one outcome per
// URL, in the order of urls.
//
// The folder is created before any download starts. A failed URL does not
// stop the others. URLs that map to the same file are downloaded one after
// another in the given order, so the last one wins.
func (f *Fetcher) Fetch(ctx context.Context, taxon string, urls []string) []model.DownloadOutcome {
	folder := f.Folder(taxon)

	outcomes := make([]model.DownloadOutcome, len(urls))
	for i, u := range urls {
		outcomes[i] = model.DownloadOutcome{
			Taxon: taxon,
			URL:   u,
			Index: i,
			Path:  filepath.Join(folder, ioutils.DeriveFilename(u, i)),
		}
	}

	if err := ioutils.EnsureDir(folder); err != nil {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory %s: %v", folder, err), Level: LevelError})
		for i := range outcomes {
			outcomes[i].Err = fmt.Errorf("%w: create %s: %w", model.ErrDownloadFailed, folder, err)
			f.outcome(outcomes[i])
		}
		return outcomes
	}

	var paths []string
	byPath := make(map[string][]int)
	for i, o := range outcomes {
		if _, ok := byPath[o.Path]; !ok {
			paths = append(paths, o.Path)
		}
		byPath[o.Path] = append(byPath[o.Path], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.limit)

	var failed int32
	for _, p := range paths {
		indexes := byPath[p]
		g.Go(func() error {
			for _, i := range indexes {
				if !f.fetchOne(gctx, &outcomes[i]) {
					atomic.AddInt32(&failed, 1)
				}
			}
			return nil // Continue with other files
		})
	}
	_ = g.Wait()

	if f.Playlist != nil {
		f.writePlaylist(ctx, taxon, folder, outcomes)
	}

	if failed == 0 {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded %d files for %s", len(urls), taxon), Level: LevelSuccess})
	} else {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, %d of %d files failed", taxon, failed, len(urls)), Level: LevelWarning})
	}

	return outcomes
}

func (f *Fetcher) fetchOne(ctx context.Context, o *model.DownloadOutcome) bool {
	var last int64
	n, err := f.client.DownloadFile(ctx, o.URL, o.Path, func(written, total int64) {
		if f.OnBytes != nil {
			f.OnBytes(written - last)
		}
		last = written
	})
	o.Bytes = n

	if err != nil {
		o.Err = fmt.Errorf("%w: %s: %w", model.ErrDownloadFailed, o.URL, err)
		f.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", o.URL, err), Level: LevelError})
		f.outcome(*o)
		return false
	}

	if f.Tagger != nil && audio.CanTag(o.Path) {
		if err := f.Tagger.SaveTags(o.Path, o.Taxon, o.URL); err != nil {
			f.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(o.Path), err), Level: LevelWarning})
		}
	}

	f.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", o.Path), Level: LevelVerbose})
	f.outcome(*o)
	return true
}

// writePlaylist lists each successfully written file once, in URL order.
//
// Taxa sharing a folder share its playlist: entries of earlier taxa are
// kept, except files this taxon overwrote, which move to the end.
func (f *Fetcher) writePlaylist(ctx context.Context, taxon, folder string, outcomes []model.DownloadOutcome) {
	seen := make(map[string]bool)
	var added []audio.PlaylistEntry
	for _, o := range outcomes {
		file := filepath.Base(o.Path)
		if !o.OK() || seen[file] {
			continue
		}
		seen[file] = true
		added = append(added, audio.PlaylistEntry{Taxon: taxon, File: file})
	}
	if len(added) == 0 {
		return
	}

	path := f.Playlist.PlaylistPath(folder)

	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []audio.PlaylistEntry
	for _, e := range f.playlists[path] {
		if !seen[e.File] {
			entries = append(entries, e)
		}
	}
	entries = append(entries, added...)
	f.playlists[path] = entries

	content := f.Playlist.CreateEntries(entries)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	f.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", taxon), Level: LevelVerbose})
}

func (f *Fetcher) outcome(o model.DownloadOutcome) {
	if f.OnOutcome != nil {
		f.OnOutcome(o)
	}
}

func (f *Fetcher) progress(event ProgressEvent) {
	if f.OnProgress != nil {
		f.OnProgress(event)
	}
}
