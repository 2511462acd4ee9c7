package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	var global bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ProjectConfigPath()
			if global {
				path = config.GlobalConfigPath()
			}
			if path == "" {
				return fmt.Errorf("config init: cannot resolve config path")
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("config init: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&global, "global", false, "write ~/.tada/config.yaml instead of ./.tada/config.yaml")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show config files and the resolved storage location",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "global:  %s\n", config.GlobalConfigPath())
			fmt.Fprintf(out, "project: %s\n", config.ProjectConfigPath())
			fmt.Fprintf(out, "backend: %s\n", cfg.Storage.Backend)
			fmt.Fprintf(out, "format:  %s\n", cfg.Storage.Format)
			fmt.Fprintf(out, "key:     %s\n", cfg.Storage.Key)
			if cfg.Storage.Backend == config.BackendJSON || cfg.Storage.Backend == "" {
				p, err := jsonstore.New(cfg.Storage.Dir, jsonstore.ExtFor(cfg.Storage.Format)).Path(cfg.Storage.Key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "data:    %s\n", p)
			} else {
				fmt.Fprintf(out, "data:    %s\n", cfg.Storage.Dir)
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
