package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/store"
	"github.com/spf13/cobra"
)

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local preference and metadata cache",
	}

	var prefs bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached OpenLibrary metadata",
		Long: `Clear drops the cached OpenLibrary lookups for the configured server.
With --prefs the remembered project is forgotten as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cfg.Cache.Dir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is memory-only; nothing to clear.")
				return nil
			}

			st, err := store.NewLocalStore(cfg.Cache.Dir, cfg.Server.URL, cfg.Cache.MetadataTTL)
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}
			defer st.Close()

			st.InvalidateMetadata()
			if prefs {
				st.ForgetLastProject()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&prefs, "prefs", false, "also forget the remembered project")

	cache.AddCommand(clearCmd)
	return cache
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Init writes the default configuration, with --server and --log-level
applied, to --config or $HOME/.config/readtrack/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := applyFlags(adapter.DefaultConfig(), flags)
			if err != nil {
				return err
			}

			path := flags.configFile
			if path == "" {
				path = adapter.ConfigFilePath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if flags.configFile == "" {
				err = adapter.SaveConfig(cfg)
			} else {
				err = adapter.SaveConfigAs(cfg, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	config.AddCommand(initCmd)
	return config
}
