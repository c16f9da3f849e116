package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arcc/internal/artifact"
	"arcc/internal/config"
	"arcc/internal/driver"
	"arcc/internal/tui"
)

var (
	lowerOutPath string
	lowerUIFlag  string
)

var lowerCmd = &cobra.Command{
	Use:   "lower <program.json>",
	Short: "Lower a resolved very-concrete-program document into an .irpack artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().StringVar(&lowerOutPath, "out", "", "output .irpack path (default: arcc.toml's [output].artifact_path)")
	lowerCmd.Flags().StringVar(&lowerUIFlag, "ui", "auto", "progress UI (auto|on|off)")
}

func runLower(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	var program driver.Program
	if err := json.Unmarshal(raw, &program); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	cfg, err := config.LoadProject(".")
	if err != nil {
		return fmt.Errorf("loading arcc.toml: %w", err)
	}
	outPath := lowerOutPath
	if outPath == "" {
		outPath = cfg.ArtifactPath()
	}

	mode, err := readUIMode(lowerUIFlag)
	if err != nil {
		return err
	}

	headers := make([]string, len(program.Bodies))
	for i, b := range program.Bodies {
		if b.InstanceIndex >= 0 && b.InstanceIndex < len(program.Instances) {
			headers[i] = program.Instances[b.InstanceIndex].TemplateName
		} else {
			headers[i] = b.FunctionName
		}
	}

	var pack artifact.Pack
	if shouldUseTUI(mode) {
		err = tui.RunWithProgress("lowering", headers, func(events chan<- tui.Event) error {
			var lowerErr error
			pack, lowerErr = driver.Lower(program, events)
			return lowerErr
		})
	} else {
		pack, err = driver.Lower(program, nil)
	}
	if err != nil {
		return fmt.Errorf("lowering: %w", err)
	}

	if err := artifact.WriteFile(outPath, pack); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bodies)\n", outPath, len(pack.Bodies))
	return nil
}
