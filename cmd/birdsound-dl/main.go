package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/birdsound-dl/internal/config"
	"github.com/handiism/birdsound-dl/internal/download"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func main() {
	// Command line flags
	var (
		datasetFlag    = flag.String("dataset", "", "Path to the occurrence file (overrides config)")
		outputFlag     = flag.String("output", "", "Output directory (overrides config)")
		configFlag     = flag.String("config", "", "Path to config file")
		minFlag        = flag.Int("min", -1, "Minimum number of files a taxon needs to be downloaded")
		taxonFlag      = flag.String("taxon-field", "", "Column holding the taxon name")
		fieldsFlag     = flag.String("fields", "", "Comma-separated columns holding references, in lookup order")
		taxaFlag       = flag.Int("taxa", 0, "Taxa downloaded in parallel")
		filesFlag      = flag.Int("files", 0, "Files per taxon downloaded in parallel")
		timeoutFlag    = flag.Float64("timeout", -1, "Request timeout in seconds (0 disables)")
		tagFlag        = flag.Bool("tag", false, "Write ID3 tags to MP3 files")
		playlistFlag   = flag.Bool("playlist", false, "Create a playlist per taxon")
		formatFlag     = flag.String("playlist-format", "", "Playlist format: m3u or pls")
		probeFlag      = flag.Bool("probe", false, "Probe file sizes before downloading")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag     = flag.Bool("dry-run", false, "Read and group the dataset without downloading")
		reportFlag     = flag.String("report", "", "Write a JSON run report to this file")
		saveConfigFlag = flag.String("save-config", "", "Write the effective settings to this file and exit")
	)

	flag.Usage = func() {
		fmt.Println("Bird Sound Downloader - Download bird recordings listed in a Darwin Core occurrence file")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  birdsound-dl [options] [occurrence.txt]")
		fmt.Println()
		fmt.Println("For interactive mode, use: birdsound-tui")
		fmt.Println()
		flag.PrintDefaults()
	}

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *datasetFlag != "" {
		settings.DatasetPath = *datasetFlag
	} else if flag.NArg() > 0 {
		settings.DatasetPath = flag.Arg(0)
	}
	if *outputFlag != "" {
		settings.OutputRoot = *outputFlag
	}
	if *minFlag >= 0 {
		settings.MinFilesPerTaxon = *minFlag
	}
	if *taxonFlag != "" {
		settings.TaxonField = *taxonFlag
	}
	if *fieldsFlag != "" {
		settings.ReferenceFields = splitFields(*fieldsFlag)
	}
	if *taxaFlag > 0 {
		settings.MaxConcurrentTaxaDownload = *taxaFlag
	}
	if *filesFlag > 0 {
		settings.MaxConcurrentFilesDownload = *filesFlag
	}
	if *timeoutFlag >= 0 {
		settings.RequestTimeoutSeconds = *timeoutFlag
	}
	if *tagFlag {
		settings.TagAudio = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *formatFlag != "" {
		settings.PlaylistFormat = *formatFlag
	}
	if *probeFlag {
		settings.ProbeFileSizes = true
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	if *saveConfigFlag != "" {
		if err := settings.Save(*saveConfigFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings written to %s\n", *saveConfigFlag)
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager, err := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating downloader: %v\n", err)
		os.Exit(1)
	}

	writeReport := func() {
		if *reportFlag == "" {
			return
		}
		if err := manager.Report().Save(*reportFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return
		}
		fmt.Printf("Report written to %s\n", *reportFlag)
	}

	// Initialize
	fmt.Println("🐦 Bird Sound Downloader")
	fmt.Println(rule)
	fmt.Println()

	if err := manager.Initialize(ctx, settings.DatasetPath); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled while reading the dataset.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		for _, name := range manager.GetTaxonNames() {
			fmt.Println("   " + name)
		}
		writeReport()
		return
	}

	// Start downloads
	fmt.Println("\n📥 Starting downloads...")
	fmt.Println()

	if err := manager.StartDownloads(ctx); err != nil {
		writeReport()
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	received, total, filesProcessed, filesTotal := manager.GetProgress()
	failed := manager.FailedFiles()
	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("✨ Complete! Downloaded %d/%d files (%.2f MB)\n", filesProcessed-failed, filesTotal, float64(received)/1024/1024)
	if failed > 0 {
		fmt.Printf("   %d files failed\n", failed)
	}
	if total > 0 && received < total {
		fmt.Printf("   (%.2f MB expected)\n", float64(total)/1024/1024)
	}
	writeReport()
}

// splitFields parses a comma-separated column list, dropping blanks.
func splitFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
