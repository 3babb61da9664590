// Package download provides the download orchestration logic for
// fetching bird recordings listed in a Darwin Core occurrence file.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Read occurrence records from the dataset
//  2. Resolve metadata pointers to audio URLs
//  3. Group URLs by taxon and drop taxa below the threshold
//  4. Download each taxon's files into its own folder
//  5. Tag MP3 files with ID3 metadata (optional)
//  6. Generate playlists (optional)
//
// # Basic Usage
//
//	manager, err := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.Initialize(ctx, "occurrence.txt"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, o := range manager.Outcomes() {
//	    if !o.OK() {
//	        log.Printf("%s: %v", o.URL, o.Err)
//	    }
//	}
//
// # Concurrency
//
// The Manager uses configurable concurrency limits:
//   - MaxConcurrentTaxaDownload: How many taxa to download in parallel
//   - MaxConcurrentFilesDownload: How many files per taxon to download in parallel
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// There is no retry. A failed file is recorded in its DownloadOutcome and
// the run moves on.
package download
