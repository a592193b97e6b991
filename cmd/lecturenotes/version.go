package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		commit := "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
		fmt.Printf("lecturenotes %s\n", version)
		fmt.Printf("  Go:      %s\n", runtime.Version())
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Grammar: %s\n", notes.GrammarVersion)
	},
}
