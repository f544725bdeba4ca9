package cmd

import (
	"fmt"

	"github.com/fitz/cockpit/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `View and modify configuration settings for Cockpit.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the .env file (local or global).

Use --global flag to set in the global configuration (~/.cockpit/config).
Otherwise, sets in the local .env file.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if !config.IsKnownKey(key) {
			exitWithError(fmt.Errorf("unknown configuration key %q, see 'cockpit config list'", key))
		}

		if global, _ := cmd.Flags().GetBool("global"); global {
			if err := config.SetGlobalConfig(key, value); err != nil {
				exitWithError(err)
			}
			fmt.Printf("✓ Set %s (global)\n", key)
			return
		}

		dir, err := projectDir(cmd)
		if err != nil {
			exitWithError(err)
		}
		if err := config.Set(dir, key, value); err != nil {
			exitWithError(err)
		}
		fmt.Printf("✓ Set %s (local)\n", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Long:  `Retrieve a configuration value from the local .env file, or the global file with --global.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		var (
			value string
			err   error
		)
		if global, _ := cmd.Flags().GetBool("global"); global {
			value, err = config.GetGlobalConfig(key)
		} else {
			dir, derr := projectDir(cmd)
			if derr != nil {
				exitWithError(derr)
			}
			value, err = config.Get(dir, key)
		}
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("%s=%s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long:  `Display every configuration key as resolved from the local .env, the global config, the environment and the defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := projectDir(cmd)
		if err != nil {
			exitWithError(err)
		}

		if _, err := config.Load(dir); err != nil {
			fmt.Printf("Configuration (invalid: %v):\n", err)
		} else {
			fmt.Println("Configuration:")
		}
		for _, e := range config.List(dir) {
			value := e.Value
			if value == "" {
				value = "(not set)"
			}
			fmt.Printf("  %s: %s\n", e.Key, value)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)

	configSetCmd.Flags().Bool("global", false, "Set in global config instead of local")
	configGetCmd.Flags().Bool("global", false, "Read from global config instead of local")
}
