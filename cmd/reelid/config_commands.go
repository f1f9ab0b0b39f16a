package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reelid/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.WriteSample(target); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set tmdb_api_key and llm api_key (or export TMDB_API_KEY / REELID_LLM_API_KEY) before running reelid.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolvedPath, fromFile, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if fromFile {
				fmt.Fprintf(out, "Configuration file: %s\n", resolvedPath)
			} else {
				fmt.Fprintln(out, "Configuration file: (defaults, no file found)")
			}
			fmt.Fprintf(out, "API bind:           %s\n", cfg.Paths.APIBind)
			fmt.Fprintf(out, "Data directory:     %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "Model:              %s\n", cfg.LLM.Model)
			fmt.Fprintf(out, "Watch region:       %s\n", cfg.TMDB.WatchRegion)
			fmt.Fprintf(out, "YouTube API key:    %s\n", maskPresence(cfg.YouTube.APIKey))
			fmt.Fprintf(out, "TMDB API key:       %s\n", maskPresence(cfg.TMDB.APIKey))
			fmt.Fprintf(out, "LLM API key:        %s\n", maskPresence(cfg.LLM.APIKey))
			fmt.Fprintf(out, "History enabled:    %s\n", yesNo(cfg.History.Enabled))
			if cfg.History.Enabled {
				fmt.Fprintf(out, "History path:       %s\n", cfg.History.Path)
			}
			return nil
		},
	}
}

func maskPresence(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return "(not set)"
	}
	return "(set)"
}
