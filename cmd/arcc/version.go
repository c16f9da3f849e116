package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"arcc/internal/version"
)

var (
	commitColor  = color.New(color.FgRed, color.Bold)
	dateColor    = color.New(color.FgCyan, color.Bold)
	unknownColor = color.New(color.FgMagenta)
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show arcc's build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "arcc %s\n", version.VersionString())
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit, commitColor))
		fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate, dateColor))
		return nil
	},
}

func valueOrUnknown(s string, col *color.Color) string {
	if s == "" {
		return unknownColor.Sprint("unknown")
	}
	return col.Sprint(s)
}
