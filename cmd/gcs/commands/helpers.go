package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML
	OutputFormatTable = constants.FormatTable

	// Viper keys shared by flags, environment and the config file.
	keyConfig       = "config"
	keyBaseURL      = "base_url"
	keyToken        = "token"
	keyCredentials  = "credentials"
	keyProject      = "project"
	keyQuotaProject = "quota_project"
	keyOutput       = "output"
	keyVerbose      = "verbose"
	keyRetries      = "retries"

	uriSchemePrefix = constants.URIScheme + "://"
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidKeyValue    = errors.New("expected KEY=VALUE")
	ErrComposeSources     = errors.New("compose needs at least one source")
	ErrComposeCrossBucket = errors.New("compose sources must be in the destination bucket")
	ErrInvalidEntity      = errors.New("entity must not be empty")
	ErrInvalidRetries     = errors.New("retries must be a non-negative integer")
	ErrInvalidRole        = errors.New("role must be OWNER, READER or WRITER")
)

// AddGlobalFlags registers the persistent flags of the CLI and binds them to
// viper, so a flag overrides the environment which overrides the config file.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is $HOME/.gcs/config.yml)")
	flags.String("base-url", "", "JSON API root (default is "+constants.DefaultBaseURL+")")
	flags.StringP("token", "t", "", "OAuth2 access token")
	flags.String("credentials", "", "service account key or authorized user file")
	flags.StringP("project", "p", "", "project for bucket listing, creation and HMAC keys")
	flags.String("quota-project", "", "project billed for requests to requester pays buckets")
	flags.StringP("output", "o", OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP exchanges to stderr")
	flags.Int("retries", constants.DefaultRetryMax, "retry failed requests this many times")

	bindings := map[string]string{
		keyConfig:       "config",
		keyBaseURL:      "base-url",
		keyToken:        "token",
		keyCredentials:  "credentials",
		keyProject:      "project",
		keyQuotaProject: "quota-project",
		keyOutput:       "output",
		keyVerbose:      "verbose",
		keyRetries:      "retries",
	}

	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString(keyOutput))

	switch output {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, output)
	}
}

// render writes data as JSON or YAML, or calls fill to build a table.
func render(w io.Writer, data interface{}, fill func(table *tablewriter.Table) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode as JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode as YAML: %w", err)
		}

		return encoder.Close()
	default:
		table := tablewriter.NewWriter(w)

		err = fill(table)
		if err != nil {
			return err
		}

		err = table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// propertyTable fills a two column table of property names and values.
func propertyTable(rows [][]string) func(table *tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		return appendRows(table, rows)
	}
}

func appendRows(table *tablewriter.Table, rows [][]string) error {
	for _, row := range rows {
		err := table.Append(row)
		if err != nil {
			return fmt.Errorf("failed to append row to table: %w", err)
		}
	}

	return nil
}

// printf writes a status line. Status lines are skipped for JSON and YAML so
// that machine readable output stays parseable.
func printf(w io.Writer, format string, args ...interface{}) {
	output, err := outputFormat()
	if err != nil || output != OutputFormatTable {
		return
	}

	_, _ = fmt.Fprintf(w, format, args...)
}

// parseBucketArg accepts "name" or "gs://name".
func parseBucketArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, uriSchemePrefix) {
		if arg == "" || strings.Contains(arg, "/") {
			return "", fmt.Errorf("%w: %q", constants.ErrNotABucketURI, arg)
		}

		return arg, nil
	}

	uri, err := gcs.ParseURI(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrNotABucketURI, err)
	}

	if uri.Object != "" {
		return "", fmt.Errorf("%w: %q", constants.ErrNotABucketURI, arg)
	}

	return uri.Bucket, nil
}

func parseObjectArg(arg string) (gcs.URI, error) {
	uri, err := gcs.ParseURI(arg)
	if err != nil {
		return gcs.URI{}, fmt.Errorf("%w: %w", constants.ErrNotAnObjectURI, err)
	}

	if uri.Object == "" {
		return gcs.URI{}, fmt.Errorf("%w: %q", constants.ErrNotAnObjectURI, arg)
	}

	return uri, nil
}

// parseKeyValues turns repeated KEY=VALUE flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyValue, pair)
		}

		out[key] = value
	}

	return out, nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func valueOrNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

// titleCase turns API constants like NEARLINE or ACTIVE into Nearline and Active.
func titleCase(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return cases.Title(language.English).String(strings.ToLower(s))
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}

	return constants.MaskedSecret
}

// stdinIsTerminal reports whether a confirmation prompt can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks before a destructive action. force skips the prompt. Without a
// terminal on stdin the action is refused instead of guessed.
func confirm(cmd *cobra.Command, force bool, prompt string) error {
	if force {
		return nil
	}

	if !stdinIsTerminal() {
		return constants.ErrConfirmationNeeded
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())

	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != constants.ConfirmationYes {
		return constants.ErrAborted
	}

	return nil
}
