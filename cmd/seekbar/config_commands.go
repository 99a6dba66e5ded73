package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seekbar/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and scaffold seekbar configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

type configReport struct {
	Path        string  `json:"path"`
	Exists      bool    `json:"exists"`
	LogDir      string  `json:"log_dir"`
	APIBind     string  `json:"api_bind,omitempty"`
	APITokenSet bool    `json:"api_token_set"`
	Socket      string  `json:"socket"`
	Bridge      bool    `json:"bridge_enabled"`
	SeekStep    float64 `json:"seek_step_seconds"`
	VolumeStep  float64 `json:"volume_step"`
	LogLevel    string  `json:"log_level"`
	LogFormat   string  `json:"log_format"`
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configOverride())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, configReport{
					Path:        path,
					Exists:      exists,
					LogDir:      cfg.Paths.LogDir,
					APIBind:     cfg.Paths.APIBind,
					APITokenSet: strings.TrimSpace(cfg.Paths.APIToken) != "",
					Socket:      cfg.SocketPath(),
					Bridge:      cfg.Bridge.Enabled,
					SeekStep:    cfg.Player.SeekStepSeconds,
					VolumeStep:  cfg.Player.VolumeStep,
					LogLevel:    cfg.Logging.Level,
					LogFormat:   cfg.Logging.Format,
				})
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(stdout, "Config file does not exist; defaults are in effect")
			}
			fmt.Fprintln(stdout)

			rows := [][]string{
				{"log_dir", cfg.Paths.LogDir},
				{"api_bind", valueOrDisabled(cfg.Paths.APIBind)},
				{"api_token set", yesNo(strings.TrimSpace(cfg.Paths.APIToken) != "")},
				{"socket", cfg.SocketPath()},
				{"bridge enabled", yesNo(cfg.Bridge.Enabled)},
				{"seek step", fmt.Sprintf("%gs", cfg.Player.SeekStepSeconds)},
				{"volume step", fmt.Sprintf("%g", cfg.Player.VolumeStep)},
				{"log level", cfg.Logging.Level},
				{"log format", cfg.Logging.Format},
			}
			fmt.Fprint(stdout, renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output configuration as JSON")

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(path)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return err
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), "Edit the file to adjust paths and the page bridge before starting the daemon.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Destination for the sample config")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing config file")

	return cmd
}

func valueOrDisabled(value string) string {
	if strings.TrimSpace(value) == "" {
		return "disabled"
	}
	return value
}
