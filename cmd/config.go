package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	config "github.com/aria-assistant/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage assistant configuration",
	Long:  `Manage the Aria assistant configuration settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Long: `Create a .aria/config.yaml configuration file in the current directory
with default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.DefaultConfigPath

		if _, err := os.Stat(configPath); err == nil {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if !overwrite {
				return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", configPath)
			}
		}

		if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		fmt.Printf("Successfully created %s\n", configPath)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print a configuration value",
	Long:  `Print a configuration value by dot-notation key, e.g. commands.confirm_dangerous.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !cfgViper.IsSet(key) {
			return fmt.Errorf("unknown configuration key: %s", key)
		}
		fmt.Printf("%v\n", cfgViper.Get(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [KEY] [VALUE]",
	Short: "Set a configuration value and save it",
	Long:  `Set a configuration value by dot-notation key and persist it to the config file.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfgViper.Set(key, value)

		updated := &config.Config{}
		if err := cfgViper.Unmarshal(updated); err != nil {
			return fmt.Errorf("failed to apply %s: %w", key, err)
		}

		path := cfgViper.ConfigFileUsed()
		if err := updated.SaveConfig(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
