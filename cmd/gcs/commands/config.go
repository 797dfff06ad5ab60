package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	BaseURL      string `json:"base_url,omitempty"      yaml:"base_url,omitempty"`
	Project      string `json:"project,omitempty"       yaml:"project,omitempty"`
	QuotaProject string `json:"quota_project,omitempty" yaml:"quota_project,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
	Retries      int    `json:"retries,omitempty"       yaml:"retries,omitempty"`

	// Static credentials
	Token       string `json:"token,omitempty"       yaml:"token,omitempty"`
	Credentials string `json:"credentials,omitempty" yaml:"credentials,omitempty"`

	// Refresh token credentials. Access tokens obtained with them are cached
	// in CachedToken until they expire.
	ClientID             string     `json:"client_id,omitempty"               yaml:"client_id,omitempty"`
	ClientSecret         string     `json:"client_secret,omitempty"           yaml:"client_secret,omitempty"`
	RefreshToken         string     `json:"refresh_token,omitempty"           yaml:"refresh_token,omitempty"`
	TokenURL             string     `json:"token_url,omitempty"               yaml:"token_url,omitempty"`
	CachedToken          string     `json:"cached_token,omitempty"            yaml:"cached_token,omitempty"`
	CachedTokenExpiresAt *time.Time `json:"cached_token_expires_at,omitempty" yaml:"cached_token_expires_at,omitempty"`
	LastRefreshed        *time.Time `json:"last_refreshed,omitempty"          yaml:"last_refreshed,omitempty"`
}

// configSetters lists the keys accepted by config set and config unset.
var configSetters = map[string]func(c *Config, v string) error{
	"base_url":      func(c *Config, v string) error { c.BaseURL = v; return nil },
	"project":       func(c *Config, v string) error { c.Project = v; return nil },
	"quota_project": func(c *Config, v string) error { c.QuotaProject = v; return nil },
	"output": func(c *Config, v string) error {
		switch v {
		case "", OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, v)
		}
	},
	"retries": func(c *Config, v string) error {
		if v == "" {
			c.Retries = 0

			return nil
		}

		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidRetries, v)
		}

		c.Retries = n

		return nil
	},
	"token":       func(c *Config, v string) error { c.Token = v; return nil },
	"credentials": func(c *Config, v string) error { c.Credentials = v; return nil },
	"client_id":   func(c *Config, v string) error { c.ClientID = v; return nil },
	"client_secret": func(c *Config, v string) error {
		c.ClientSecret = v

		return nil
	},
	"refresh_token": func(c *Config, v string) error {
		c.RefreshToken = v
		c.CachedToken = ""
		c.CachedTokenExpiresAt = nil

		return nil
	},
	"token_url": func(c *Config, v string) error { c.TokenURL = v; return nil },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags and environment variables are applied. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig()
			masked := *config
			masked.Token = maskSecret(masked.Token)
			masked.ClientSecret = maskSecret(masked.ClientSecret)
			masked.RefreshToken = maskSecret(masked.RefreshToken)
			masked.CachedToken = maskSecret(masked.CachedToken)

			return render(cmd.OutOrStdout(), &masked, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")

				return appendRows(table, configRows(&masked))
			})
		},
	}
}

func configRows(c *Config) [][]string {
	rows := [][]string{
		{"Base URL", valueOrNA(c.BaseURL)},
		{"Project", valueOrNA(c.Project)},
		{"Quota Project", valueOrNA(c.QuotaProject)},
		{"Output", valueOrNA(c.Output)},
		{"Retries", strconv.Itoa(c.Retries)},
		{"Token", valueOrNA(c.Token)},
		{"Credentials", valueOrNA(c.Credentials)},
	}

	if c.RefreshToken != "" {
		rows = append(rows,
			[]string{"Client ID", valueOrNA(c.ClientID)},
			[]string{"Refresh Token", c.RefreshToken},
			[]string{"Cached Token Expires", formatTime(c.CachedTokenExpiresAt)},
		)
	}

	return rows
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd, args[0], args[1], "Set")
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd, args[0], "", "Unset")
		},
	}
}

func updateConfigValue(cmd *cobra.Command, key, value, action string) error {
	setter, ok := configSetters[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	err = setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	result := map[string]string{"action": action, "key": key}

	shown := value
	if key == "token" || key == "client_secret" || key == "refresh_token" {
		shown = maskSecret(value)
	}

	if shown != "" {
		result["value"] = shown
	}

	return render(cmd.OutOrStdout(), result, propertyTable([][]string{
		{"Action", action},
		{"Key", key},
		{"Value", valueOrNA(shown)},
	}))
}

func newConfigClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file, including cached tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = confirm(cmd, force, "Remove "+path+"?")
			if err != nil {
				return err
			}

			err = os.Remove(path)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			printf(cmd.OutOrStdout(), "Removed %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")

	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}

func configKeyList() string {
	keys := make([]string, 0, len(configSetters))
	for key := range configSetters {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return strings.Join(keys, ", ")
}

// effectiveConfig merges the config file with environment variables and
// flags through viper. Cached token fields are only ever read from the file.
func effectiveConfig() *Config {
	config := &Config{
		BaseURL:      viper.GetString(keyBaseURL),
		Project:      viper.GetString(keyProject),
		QuotaProject: viper.GetString(keyQuotaProject),
		Output:       viper.GetString(keyOutput),
		Retries:      viper.GetInt(keyRetries),
		Token:        viper.GetString(keyToken),
		Credentials:  viper.GetString(keyCredentials),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		RefreshToken: viper.GetString("refresh_token"),
		TokenURL:     viper.GetString("token_url"),
	}

	stored, err := readConfigFile()
	if err == nil {
		config.CachedToken = stored.CachedToken
		config.CachedTokenExpiresAt = stored.CachedTokenExpiresAt
		config.LastRefreshed = stored.LastRefreshed
	}

	return config
}

// configFilePath returns the --config file, the file viper loaded, or
// ~/.gcs/config.yml.
func configFilePath() (string, error) {
	if path := viper.GetString(keyConfig); path != "" {
		return path, nil
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".gcs", "config.yml"), nil
}

// readConfigFile loads the config file alone, without flags or environment.
// A missing file yields an empty configuration.
func readConfigFile() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
