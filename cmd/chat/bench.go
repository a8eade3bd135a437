package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kdduha/genai-relay/internal/client"
	"github.com/spf13/cobra"
)

var benchPrompt string

// benchCmd sends every file in a directory and prints timings per format
var benchCmd = &cobra.Command{
	Use:   "bench <dir>",
	Short: "Measure relay latency for each file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVarP(&benchPrompt, "prompt", "p", "", "prompt sent with every file")
}

func runBench(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(args[0], e.Name()))
		}
	}
	sort.Strings(paths)

	out := cmd.OutOrStdout()
	results := newClient().Bench(cmd.Context(), benchPrompt, paths)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(out, styleError.Render(fmt.Sprintf("ERR %s: %v", res.File, res.Err)))
			continue
		}
		fmt.Fprintf(out, "OK %s %v\n", res.File, res.Duration)
	}

	fmt.Fprintln(out)
	client.WriteMarkdown(out, results)
	return nil
}
