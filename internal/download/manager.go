package download

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/birdsound-dl/internal/audio"
	"github.com/handiism/birdsound-dl/internal/config"
	"github.com/handiism/birdsound-dl/internal/dwca"
	"github.com/handiism/birdsound-dl/internal/http"
	ioutils "github.com/handiism/birdsound-dl/internal/io"
	"github.com/handiism/birdsound-dl/internal/model"
	"golang.org/x/sync/errgroup"
)

// Manager coordinates a whole run: read the dataset, group the audio
// candidates by taxon, then download every retained taxon.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	extractor  *dwca.Extractor
	fetcher    *Fetcher

	datasetPath string
	groups      *model.TaxonGroups
	outcomes    map[string][]model.DownloadOutcome

	records            int
	candidates         int
	resolutionFailures int
	startedAt          time.Time
	finishedAt         time.Time

	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	processedFiles  int32
	failedFiles     int32
	downloadedBytes int64

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager from validated settings.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	client, err := http.NewClient(settings.ToClientOptions())
	if err != nil {
		return nil, err
	}
	return newManager(settings, client, onProgress), nil
}

func newManager(settings *config.Settings, client *http.Client, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		httpClient: client,
		groups:     model.NewTaxonGroups(),
		outcomes:   make(map[string][]model.DownloadOutcome),
		onProgress: onProgress,
	}

	m.extractor = dwca.NewExtractor(dwca.NewResolver(client), settings.TaxonField, settings.ReferenceFields)
	m.extractor.OnResolveError = func(rec model.OccurrenceRecord, ref string, err error) {
		m.resolutionFailures++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Row %d: no audio for %s: %v", rec.Row, ref, err), Level: LevelWarning})
	}
	m.extractor.OnRecord = func(rec model.OccurrenceRecord, produced int) {
		m.records++
		m.candidates += produced
		if m.records%1000 == 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Read %d records, %d audio URLs so far", m.records, m.candidates), Level: LevelVerbose})
		}
	}

	m.fetcher = NewFetcher(client, settings.OutputRoot, settings.MaxConcurrentFilesDownload)
	m.fetcher.OnProgress = m.progress
	m.fetcher.OnBytes = func(delta int64) {
		atomic.AddInt64(&m.receivedBytes, delta)
	}
	m.fetcher.OnOutcome = func(o model.DownloadOutcome) {
		atomic.AddInt32(&m.processedFiles, 1)
		if o.OK() {
			atomic.AddInt64(&m.downloadedBytes, o.Bytes)
		} else {
			atomic.AddInt32(&m.failedFiles, 1)
		}
	}
	if settings.TagAudio {
		cfg := audio.DefaultTagConfig()
		cfg.AlbumName = settings.TagAlbum
		m.fetcher.Tagger = audio.NewTagger(cfg)
	}
	if settings.CreatePlaylist {
		m.fetcher.Playlist = audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended)
	}

	return m
}

// Initialize reads the dataset at datasetPath (settings.DatasetPath when
// empty) and builds the retained taxon groups.
//
// The returned error matches model.ErrInputUnreadable when the dataset
// cannot be opened or parsed. Metadata pointers that do not resolve are
// reported and skipped.
func (m *Manager) Initialize(ctx context.Context, datasetPath string) error {
	if datasetPath == "" {
		datasetPath = m.settings.DatasetPath
	}
	m.datasetPath = datasetPath
	m.startedAt = time.Now()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Reading dataset: %s", datasetPath), Level: LevelInfo})

	ds, err := dwca.OpenDataset(datasetPath)
	if err != nil {
		return err
	}
	defer ds.Close()

	candidates, err := m.extractor.Extract(ctx, ds)
	if err != nil {
		return err
	}

	m.mu.Lock()
	all := model.GroupByTaxon(candidates, 0)
	m.groups = model.GroupByTaxon(candidates, m.settings.MinFilesPerTaxon)
	m.mu.Unlock()

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d audio URLs for %d taxa in %d records", len(candidates), all.Len(), m.records),
		Level:   LevelInfo,
	})
	if dropped := all.Len() - m.groups.Len(); dropped > 0 {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Skipping %d taxa with fewer than %d files", dropped, m.settings.MinFilesPerTaxon),
			Level:   LevelVerbose,
		})
	}
	for _, g := range m.groups.All() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found taxon: %s (%d files)", g.Taxon, len(g.URLs)), Level: LevelInfo})
	}

	atomic.StoreInt32(&m.totalFiles, int32(m.groups.TotalURLs()))

	if m.settings.ProbeFileSizes {
		m.calculateTotals(ctx)
	}

	return nil
}

// StartDownloads downloads every retained taxon.
//
// The output root is created first, even when no taxon is retained.
// Taxa whose folder names collide are downloaded one after another, other
// taxa run concurrently up to MaxConcurrentTaxaDownload. Download failures
// are recorded as outcomes; the only error returned is the context's.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if err := ioutils.EnsureDir(m.settings.OutputRoot); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating output folder %s: %v", m.settings.OutputRoot, err), Level: LevelError})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentTaxaDownload)

	for _, bucket := range m.buckets() {
		bucket := bucket
		g.Go(func() error {
			for _, group := range bucket {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes := m.fetcher.Fetch(gctx, group.Taxon, group.URLs)

				m.mu.Lock()
				m.outcomes[group.Taxon] = outcomes
				m.mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()

	m.mu.Lock()
	m.finishedAt = time.Now()
	m.mu.Unlock()

	return err
}

// buckets splits the retained groups by folder, in first-appearance order.
func (m *Manager) buckets() [][]*model.TaxonGroup {
	var (
		order []string
		byDir = make(map[string][]*model.TaxonGroup)
	)
	for _, g := range m.Groups() {
		dir := m.fetcher.Folder(g.Taxon)
		if _, ok := byDir[dir]; !ok {
			order = append(order, dir)
		}
		byDir[dir] = append(byDir[dir], g)
	}

	buckets := make([][]*model.TaxonGroup, 0, len(order))
	for _, dir := range order {
		bucket := byDir[dir]
		if len(bucket) > 1 {
			names := make([]string, len(bucket))
			for i, g := range bucket {
				names[i] = g.Taxon
			}
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Taxa %s share folder %s; their files will be mixed", strings.Join(names, ", "), dir),
				Level:   LevelWarning,
			})
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// Groups returns the retained taxon groups in first-appearance order.
func (m *Manager) Groups() []*model.TaxonGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.groups.All()
}

// Outcomes returns the outcomes of every taxon downloaded so far, in group
// order, then URL order within a group.
func (m *Manager) Outcomes() []model.DownloadOutcome {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.DownloadOutcome
	for _, g := range m.groups.All() {
		out = append(out, m.outcomes[g.Taxon]...)
	}
	return out
}

// GetProgress returns current download progress. total is zero unless file
// sizes were probed.
func (m *Manager) GetProgress() (received, total int64, filesProcessed, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles)
}

// FailedFiles returns the number of files that failed so far.
func (m *Manager) FailedFiles() int32 {
	return atomic.LoadInt32(&m.failedFiles)
}

// GetTaxonNames returns the names of all retained taxa.
func (m *Manager) GetTaxonNames() []string {
	groups := m.Groups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = fmt.Sprintf("%s (%d files)", g.Taxon, len(g.URLs))
	}
	return names
}

// calculateTotals sums the sizes announced by HEAD requests. Failed probes
// only lower the total.
func (m *Manager) calculateTotals(ctx context.Context) {
	m.progress(ProgressEvent{Message: "Probing file sizes...", Level: LevelVerbose})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentFilesDownload)

	for _, group := range m.Groups() {
		for _, u := range group.URLs {
			u := u
			g.Go(func() error {
				size, err := m.httpClient.GetFileSize(gctx, u)
				if err == nil {
					atomic.AddInt64(&m.totalBytes, size)
				}
				return nil
			})
		}
	}
	_ = g.Wait()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
