package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"stegtriage/pkg/banner"
	"stegtriage/pkg/console"
	"stegtriage/pkg/filehandler"
	"stegtriage/pkg/narrative"
	"stegtriage/pkg/pipeline"
	"stegtriage/pkg/report"
	"stegtriage/pkg/runner"
)

func main() {
	var (
		filePath     = flag.String("file", "", "Path to a single file for analysis")
		dirPath      = flag.String("dir", "", "Path to a directory of files for analysis")
		outputDir    = flag.String("outdir", "stegtriage_output", "Directory for extracted files and reports")
		workers      = flag.Int("workers", 4, "Number of concurrent analysis workers")
		useNarrative = flag.Bool("narrative", false, "Enable narrative summaries via a local Ollama instance")
		ollamaURL    = flag.String("ollama", "http://localhost:11434", "Ollama base URL")
		ollamaModel  = flag.String("model", "llama2", "Ollama model name")
		silent       = flag.Bool("silent", false, "Suppress console output")
	)
	flag.Parse()

	log := console.New(os.Stdout, *silent)
	if !*silent {
		banner.Print()
	}

	if *filePath == "" && *dirPath == "" {
		fmt.Println("Usage:")
		fmt.Println("  stegtriage -file <filepath>")
		fmt.Println("  stegtriage -dir <directory>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var files []string
	if *filePath != "" {
		files = append(files, *filePath)
	}
	if *dirPath != "" {
		found, err := filehandler.FilesInDirectory(*dirPath)
		if err != nil {
			log.Errorf("Failed to read directory: %v", err)
			os.Exit(1)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		log.Warnf("No files to analyze")
		return
	}

	runDir := filepath.Join(*outputDir,
		fmt.Sprintf("steg_analysis_%s", time.Now().Format("20060102_150405")))
	if err := filehandler.EnsureDir(runDir); err != nil {
		log.Errorf("Failed to create output directory: %v", err)
		os.Exit(1)
	}

	var gen narrative.Generator = narrative.Disabled{}
	if *useNarrative {
		gen = narrative.NewOllamaClient(*ollamaURL, *ollamaModel, 30*time.Second)
	}

	pipe := pipeline.New(log, gen)
	if pipe.NarrativeEnabled() {
		log.Successf("Narrative service connected (%s)", *ollamaModel)
	} else if *useNarrative {
		log.Warnf("Narrative service unavailable, continuing without summaries")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Analyzing %d files with %d workers", len(files), *workers)
	start := time.Now()
	batch := runner.New(runner.Config{Workers: *workers, OutDir: runDir}, pipe).Run(ctx, files)
	log.Infof("Analysis completed in %v", time.Since(start))

	reportPath := filepath.Join(runDir, "analysis_report.json")
	if err := report.WriteJSON(report.Build(batch, *dirPath, runDir), reportPath); err != nil {
		log.Errorf("Failed to write report: %v", err)
	} else {
		log.Infof("Report saved to %s", reportPath)
	}

	report.PrintSummary(log, batch, runDir)
}
