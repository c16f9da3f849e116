package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"arcc/internal/includegraph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <entry-file>",
	Short: "Walk a circuit program's include graph and report custom-gate pragma violations",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

var (
	includeRe    = regexp.MustCompile(`^\s*include\s+"([^"]+)"\s*;`)
	pragmaRe     = regexp.MustCompile(`^\s*pragma\s+custom_templates\s*;`)
	customGateRe = regexp.MustCompile(`\bcustom\b`)
)

// scanFile does a line-oriented scan for include directives and the
// custom-gates pragma. It is not a parser: it exists only to feed the
// include graph for this diagnostic command, and does not attempt to
// skip comments or string literals that happen to match these patterns.
func scanFile(path string) (includes []string, hasPragma, usesCustomGate bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if m := includeRe.FindStringSubmatch(line); m != nil {
			includes = append(includes, m[1])
		}
		if pragmaRe.MatchString(line) {
			hasPragma = true
		}
		if customGateRe.MatchString(line) {
			usesCustomGate = true
		}
	}
	return includes, hasPragma, usesCustomGate, scanner.Err()
}

func runGraph(cmd *cobra.Command, args []string) error {
	entry := args[0]
	stack := includegraph.NewFileStack(entry)
	g := includegraph.NewIncludesGraph()

	for {
		path, ok := stack.TakeNext()
		if !ok {
			break
		}
		includes, hasPragma, usesCustomGate, err := scanFile(path)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		g.AddNode(path, hasPragma, usesCustomGate)
		for _, inc := range includes {
			if err := stack.AddInclude(inc); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
			}
			if err := g.AddEdge(inc); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
			}
		}
	}

	problematic := g.GetProblematicPaths()
	if len(problematic) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no custom-gate pragma violations found")
		return nil
	}
	for _, path := range problematic {
		fmt.Fprintln(cmd.OutOrStdout(), includegraph.DisplayPath(path))
	}
	return nil
}
