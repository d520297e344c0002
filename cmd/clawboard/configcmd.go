package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/clawboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage board configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveDefault(cfgPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", cfgPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
