package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/candy-arcade/internal/config"
)

var (
	flagConfigForce bool
	flagConfigLocal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game configuration",
	Long: `Inspect or create the YAML configuration.

Search order: --config, ~/.candy/configs/candy.yaml, ./configs/candy.yaml,
then the built-in defaults.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the built-in defaults to ~/.candy/configs/candy.yaml
(or ./configs/candy.yaml with --local) for editing.

Examples:
  candy config init
  candy config init --local --force`,
	Args: cobra.NoArgs,
	Run:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after loading and applying --difficulty.

Examples:
  candy config show
  candy config show --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&flagConfigLocal, "local", false, "Write to ./"+config.LocalConfigPath)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := config.UserConfigPath()
	if flagConfigLocal || path == "" {
		path = config.LocalConfigPath
	}

	if err := config.WriteDefault(path, flagConfigForce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, preset := loadSettings()

	out, err := yaml.Marshal(preset.Apply(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# difficulty: %s\n", preset)
	fmt.Print(string(out))
}
