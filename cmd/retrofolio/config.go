package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/retrofolio/internal/adapter"
	"github.com/mmcdole/retrofolio/internal/domain"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration and saved state",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = adapter.DefaultConfigFile()
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := adapter.SaveConfig(adapter.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset-boot",
	Short: "Show the boot screen again on next start",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.prefs.SetBool(domain.PrefBootSeen, false)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
