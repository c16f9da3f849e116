package main

import (
	"fmt"
	"slices"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"arcc/internal/artifact"
)

var dumpIRCmd = &cobra.Command{
	Use:   "dump-ir <pack.irpack>",
	Short: "Print a summary of every body stored in an .irpack artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runDumpIR,
}

func runDumpIR(cmd *cobra.Command, args []string) error {
	pack, err := artifact.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "schema %d, %d constants, %d strings\n", pack.Schema, len(pack.FieldEntries), len(pack.StringEntries))

	bodies := slices.Clone(pack.Bodies)
	col := collate.New(language.Und)
	sort.Slice(bodies, func(i, j int) bool {
		return col.CompareString(bodies[i].Header, bodies[j].Header) < 0
	})

	for _, b := range bodies {
		fmt.Fprintf(out, "\n%s (message %d)\n", b.Header, b.MessageID)
		fmt.Fprintf(out, "  instructions:    %d\n", len(b.Code))
		fmt.Fprintf(out, "  stack_depth:     %d\n", b.StackDepth)
		fmt.Fprintf(out, "  signal_depth:    %d\n", b.SignalDepth)
		fmt.Fprintf(out, "  expression_depth: %d\n", b.ExpressionDepth)
		fmt.Fprintf(out, "  next_cmp_id:     %d\n", b.NextCmpID)
		for name, id := range b.ComponentToInstance {
			fmt.Fprintf(out, "  component %-12s -> instance %d\n", name, id)
		}
	}
	return nil
}
