package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arcc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "arcc",
	Short: "Arithmetic circuit IR lowering toolchain",
	Long:  `arcc lowers a resolved circuit program into its flat, address-oriented IR.`,
}

var (
	timeoutCancel context.CancelFunc
	timeoutSecs   int
)

func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		if timeoutCancel != nil {
			timeoutCancel()
			timeoutCancel = nil
		}
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(dumpIRCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "command timeout in seconds (0 disables it)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	if timeoutSecs <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	timeoutCancel = cancel
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "arcc: command timed out after %ds\n", timeoutSecs)
			os.Exit(1)
		}
	}()
	return nil
}
