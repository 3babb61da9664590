package download

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Report summarizes a run for -report.
type Report struct {
	Dataset            string        `json:"dataset"`
	OutputRoot         string        `json:"output_root"`
	MinFilesPerTaxon   int           `json:"min_files_per_taxon"`
	StartedAt          time.Time     `json:"started_at"`
	FinishedAt         time.Time     `json:"finished_at,omitzero"`
	Records            int           `json:"records"`
	Candidates         int           `json:"candidates"`
	ResolutionFailures int           `json:"resolution_failures"`
	Downloaded         int           `json:"downloaded"`
	Failed             int           `json:"failed"`
	Bytes              int64         `json:"bytes"`
	Taxa               []TaxonReport `json:"taxa"`
}

// TaxonReport is one retained taxon.
type TaxonReport struct {
	Taxon  string       `json:"taxon"`
	Folder string       `json:"folder"`
	Files  []FileReport `json:"files"`
}

// FileReport is one URL of a taxon.
type FileReport struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Error string `json:"error,omitempty"`
}

// Report builds the summary of the run so far.
func (m *Manager) Report() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r := &Report{
		Dataset:            m.datasetPath,
		OutputRoot:         m.settings.OutputRoot,
		MinFilesPerTaxon:   m.settings.MinFilesPerTaxon,
		StartedAt:          m.startedAt,
		FinishedAt:         m.finishedAt,
		Records:            m.records,
		Candidates:         m.candidates,
		ResolutionFailures: m.resolutionFailures,
		Taxa:               []TaxonReport{},
	}

	for _, g := range m.groups.All() {
		tr := TaxonReport{Taxon: g.Taxon, Folder: m.fetcher.Folder(g.Taxon), Files: []FileReport{}}
		for _, o := range m.outcomes[g.Taxon] {
			fr := FileReport{URL: o.URL, Path: o.Path, Bytes: o.Bytes}
			if o.OK() {
				r.Downloaded++
				r.Bytes += o.Bytes
			} else {
				r.Failed++
				fr.Error = o.Err.Error()
			}
			tr.Files = append(tr.Files, fr)
		}
		r.Taxa = append(r.Taxa, tr)
	}

	return r
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
