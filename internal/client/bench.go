package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/kdduha/genai-relay/internal/mimetype"
)

type BenchResult struct {
	File     string
	Format   string
	Duration time.Duration
	Chars    int
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}

// Bench sends each file with prompt and measures the round trip.
func (c *Client) Bench(ctx context.Context, prompt string, paths []string) []BenchResult {
	results := make([]BenchResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, c.benchFile(ctx, prompt, path))
	}
	return results
}

func (c *Client) benchFile(ctx context.Context, prompt, path string) BenchResult {
	start := time.Now()

	file, err := LoadAttachment(path)
	if err != nil {
		return BenchResult{File: filepath.Base(path), Err: err}
	}

	text, err := c.Generate(ctx, prompt, file)
	return BenchResult{
		File:     file.Name,
		Format:   mimetype.Extension(file.Name),
		Duration: time.Since(start),
		Chars:    len(text),
		Err:      err,
		Size:     int64(len(file.Data)),
	}
}

func Aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Format]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Format] = a
	}
	return m
}

func WriteMarkdown(w io.Writer, results []BenchResult) {
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Format | Requests | Avg Time | Total Time | Avg File Size |")
	fmt.Fprintln(w, "|--------|----------|----------|------------|---------------|")

	agg := Aggregate(results)
	formats := make([]string, 0, len(agg))
	for format := range agg {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, format := range formats {
		a := agg[format]
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Fprintf(w, "| %s | %d | %v | %v | %s |\n",
			format,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			HumanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Fprintf(w, "| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			HumanBytes(avgSize),
		)
	}
}

func HumanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
