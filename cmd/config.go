package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/configs"
	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/schema"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage locscope configuration",
		Long:    `locscope config allows you to view, create and validate your locscope configuration settings.`,
		Aliases: []string{"cfg"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a locscope configuration file against the config schema",
		Long: `locscope config validate checks a configuration file against the JSON schema of
the configuration: unknown keys, wrong types, invalid enum values and negative
limits are all reported.

Without an argument the file found by the normal config search (or --config) is validated.

Examples:
  locscope config validate
  locscope config validate ./configs/.locscope.toml`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalFlags.ConfigPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = appCtx.Viper.ConfigFileUsed()
			}
			if path == "" {
				if found, ok := configs.FindConfigFile(); ok {
					path = found
				}
			}
			if path == "" {
				return errors.New("no config file found (pass a path or use --config)")
			}

			if err := schema.ValidateConfigFile(path); err != nil {
				var verr schema.ValidationError
				if errors.As(err, &verr) {
					items := make([]any, 0, len(verr.Errors))
					for _, e := range verr.Errors {
						items = append(items, e)
					}
					_ = style.PrintList(cmd.ErrOrStderr(), path, style.SubList(items...))
				}
				return fmt.Errorf("%s: %w", path, err)
			}

			log.Info().Msgf("Config file used: %s", path)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return err
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List locscope configuration",
		Long: `locscope config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - analysis: Analysis limits, filters and custom languages
  - watch: Watch mode settings

Examples:
  locscope config list                    # Show all configuration (viper raw data)
  locscope config list --all              # Show all configuration with defaults
  locscope config list analysis           # Show only analysis settings
  locscope config list --format json      # Output in JSON format
  locscope config list --yaml             # Output in YAML format (shorthand)
  locscope config list app --all --json   # Show app config with defaults in JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format, err := configs.GetOutputFormatFromFlags(cmd)
			if err != nil {
				return err
			}
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(appCtx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("get config section: %w", err)
			}

			color := appCtx.Color() && style.IsTerminal(cmd.OutOrStdout())
			return configs.OutputData(data, format, cmd.OutOrStdout(), color)
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize locscope configuration",
		Long: `locscope config init creates a new configuration file with default settings.

Examples:
  locscope config init                    # Create .locscope.yaml in current directory
  locscope config init --path ~/.config/locscope/locscope.yaml  # Specify custom path
  locscope config init --format toml      # Create TOML format config`,
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if format == configs.FormatText {
				return errors.New("text format is not supported for config files")
			}
			if path == "" {
				path = configs.DefaultConfigPath(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return fmt.Errorf("create config file: %w", err)
			}
			log.Info().Msgf("Config file created successfully: %s", path)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return err
		},
		Args: cobra.NoArgs,
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Long: `locscope config schema prints the JSON schema that config validate checks against.
Point your editor's YAML/JSON language server at it for completion.

Examples:
  locscope config schema > locscope.schema.json`,
		Annotations: map[string]string{lenientConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return schema.GenConfigSchema(cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	// 添加 config list 标志
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	// 添加 config init 标志
	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
