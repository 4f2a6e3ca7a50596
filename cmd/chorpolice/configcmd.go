package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the default config of a variant",
	Long: `Print the built-in configuration of a variant as YAML. Save it to
~/.chorpolice/configs/<variant>.yaml (or pass it with --config) to tweak
physics, police behaviour, scoring and difficulty.

Examples:
  chorpolice config > ~/.chorpolice/configs/chor.yaml
  chorpolice config chor_endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	variant := config.VariantClassic
	if len(args) == 1 {
		variant = args[0]
	}

	data := config.GetDefaultYAML(variant)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no default config for %q\n", variant)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
