// Package model defines the core data structures used throughout
// the birdsound-dl application.
//
// # Records and Candidates
//
// An OccurrenceRecord is one row of a Darwin Core occurrence file. The
// extractor turns records into AudioCandidate values, one per populated
// reference field that resolves to an audio URL:
//
//	rec := model.NewOccurrenceRecord(2, map[string]string{
//	    "scientificName": "Turdus merula",
//	    "references":     "https://example.org/a/1.mp3",
//	})
//	taxon, _ := rec.Get("scientificName")
//
// # Groups
//
// GroupByTaxon aggregates candidates by taxon name and drops every taxon
// with fewer URLs than the configured minimum:
//
//	groups := model.GroupByTaxon(candidates, 10)
//	for _, g := range groups.All() {
//	    fmt.Println(g.Taxon, len(g.URLs))
//	}
//
// # Outcomes
//
// DownloadOutcome records the result of one URL download. Failed outcomes
// carry an error that matches ErrDownloadFailed via errors.Is.
package model
