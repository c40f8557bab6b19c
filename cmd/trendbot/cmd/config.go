package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/trendbot/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the active configuration",
	Long: `Print the active configuration as YAML: the defaults, or the given
config file merged over them.`,
	RunE: runConfig,
}

var configInitPath string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&configInitPath, "init", "", "write the default configuration to this path and exit")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInitPath != "" {
		if err := config.Default().SaveToFile(configInitPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", configInitPath)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
