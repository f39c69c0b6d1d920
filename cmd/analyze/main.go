package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
	"voicedetect/internal/config"
	"voicedetect/internal/service"
)

// analyze runs the detector over local MP3 files and prints one JSON report
// per file, including the raw statistics behind each verdict.
func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "per-file analysis timeout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-timeout 30s] file.mp3 [file.mp3 ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	analyzer := service.NewAnalyzerService(config.DefaultDetectionConfig())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := 0
	for _, path := range flag.Args() {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		report, err := analyzer.Inspect(ctx, path)
		cancel()
		if err != nil {
			log.Printf("Failed to analyze %s: %v", path, err)
			failed++
			continue
		}
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
