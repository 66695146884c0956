// Command analyze runs a one-shot batch analysis over a file of texts, one
// text per line, and writes the results to stdout or a file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/analysis"
	"github.com/techtitanians/sentiboard/internal/envdetect"
	"github.com/techtitanians/sentiboard/internal/export"
	"github.com/techtitanians/sentiboard/internal/heuristic"
	"github.com/techtitanians/sentiboard/internal/insights"
	"github.com/techtitanians/sentiboard/internal/logging"
	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
	"github.com/techtitanians/sentiboard/internal/pipeline"
	"github.com/techtitanians/sentiboard/internal/table"
)

func main() {
	inputPath := flag.String("input", "", "file with one text per line")
	outputPath := flag.String("output", "", "write results here instead of stdout")
	format := flag.String("format", "csv", "output format: csv or json")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -input texts.txt [-output results.csv] [-format csv|json]")
		os.Exit(2)
	}

	texts, err := readLines(*inputPath)
	if err != nil {
		slog.Error("[Analyze] Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}

	settings := config.FromEnv()

	hub := modelhub.New()
	provider := modelhub.NewHugotProvider(settings, hub)
	defer provider.Close()

	analyzers := map[models.ProcessingTier]pipeline.ChunkAnalyzer{
		models.TierFull:        analysis.NewFullAnalyzer(settings, hub),
		models.TierLightweight: heuristic.New(heuristic.Lightweight, settings.KeywordTopN),
		models.TierEmergency:   heuristic.New(heuristic.Emergency, settings.KeywordTopN),
	}
	runner := pipeline.NewRunner(settings, envdetect.New(settings.ForceConstrainedAt), analyzers)

	progress := func(done, total int) {
		slog.Info("[Analyze] Progress", slog.Int("done", done), slog.Int("total", total))
	}

	results, report, err := runner.Analyze(context.Background(), texts, progress)
	if err != nil {
		slog.Error("[Analyze] Batch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resultTable := table.FromResults(results)
	resultTable.Optimize()
	rows := resultTable.Rows()

	var output []byte
	switch *format {
	case "csv":
		output, err = export.ToCSV(rows)
	case "json":
		output, err = export.ToJSON(rows)
	default:
		slog.Error("[Analyze] Unknown format", slog.String("format", *format))
		os.Exit(2)
	}
	if err != nil {
		slog.Error("[Analyze] Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, output, 0o644); err != nil {
			slog.Error("[Analyze] Failed to write output", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		fmt.Println(string(output))
	}

	summary := insights.Summarize(rows)
	for _, line := range summary.Lines() {
		fmt.Fprintln(os.Stderr, line)
	}

	if os.Getenv("OPENAI_API_KEY") != "" {
		narrative, err := insights.Narrative(context.Background(), summary)
		if err != nil {
			slog.Warn("[Analyze] Narrative generation failed, summary lines stand on their own",
				slog.String("error", err.Error()))
		} else if narrative != "" {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, narrative)
		}
	}

	fmt.Fprintf(os.Stderr, "tier=%s limited=%v chunk_failures=%d elapsed=%s\n",
		report.Tier, report.Limited, report.ChunkFailures, report.Elapsed)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
