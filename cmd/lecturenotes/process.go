package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/audio"
	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

var (
	processOut  string
	processJSON bool
)

var processCmd = &cobra.Command{
	Use:   "process <audio-file>",
	Short: "Generate notes for one recording",
	Long: `Run one recording through the pipeline and write notes.txt, notes.md and
notes.docx.

Examples:
  lecturenotes process week3.mp3                 # Writes to <paths.output>/week3
  lecturenotes process week3.mp3 --out ./notes   # Custom output folder
  lecturenotes process week3.mp3 --json          # Print the result as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		audioPath := args[0]

		if !audio.IsSupported(audioPath) {
			return fmt.Errorf("unsupported file type %q (supported: %s)",
				filepath.Ext(audioPath), strings.Join(audio.Extensions, ", "))
		}
		if _, err := os.Stat(audioPath); err != nil {
			return err
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(ctx, cfg, log)
		if a != nil {
			defer a.close(ctx)
		}
		if err != nil {
			return err
		}

		outDir := processOut
		if outDir == "" {
			name := filepath.Base(audioPath)
			outDir = filepath.Join(cfg.Paths.Output, strings.TrimSuffix(name, filepath.Ext(name)))
		}

		proc := processor.New(cfg.Paths, a.pipeline, log)
		result, files, err := proc.ProcessFile(pipeline.WithSessionID(ctx, "cli"), audioPath, outDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, pipeline.UserMessage(err))
			return err
		}

		if processJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printSummary(cmd, result, files)
		return nil
	},
}

func printSummary(cmd *cobra.Command, result *notes.LectureResult, files []string) {
	out := cmd.OutOrStdout()
	info := result.FileInfo

	fmt.Fprintf(out, "%s: %d words, ~%d min read\n", info.Name, info.WordCount, info.EstimatedReadingMinutes)
	if len(result.Keywords) > 0 {
		fmt.Fprintf(out, "Key concepts: %s\n", strings.Join(result.Keywords, ", "))
	}
	for i, sec := range notes.Parse(result.Notes) {
		title := sec.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "  Module %d: %s\n", i+1, title)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	for _, f := range files {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}
}

func init() {
	processCmd.Flags().StringVar(&processOut, "out", "", "output folder (default: <paths.output>/<file name>)")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(processCmd)
}
