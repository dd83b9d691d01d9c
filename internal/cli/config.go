package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tessro/unyo/internal/config"
	uerrors "github.com/tessro/unyo/internal/errors"
	"github.com/tessro/unyo/internal/wizard"
)

var (
	configInitForce       bool
	configInitInteractive bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing unyo configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, after defaults and UNYO_* overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file.

When run in a terminal, a short form asks for the location, the
Bluetooth name and the theme. Use --interactive=false to write the
defaults instead.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys use the section.field form of the config file, for example:
  weather.city            City shown above the forecast
  weather.latitude        Fixed latitude (skips IP geolocation)
  bluetooth.device_name   Name shown while no phone is connected
  power.enabled           Poll vcgencmd for undervoltage (true/false)
  display.theme           auto, dark or light

Examples:
  unyo config set weather.city Berlin
  unyo config set wifi.interval_ms 30000`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVarP(&configInitInteractive, "interactive", "i", true, "ask for settings when running in a terminal")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return uerrors.WithSuggestion(
			fmt.Errorf("config file already exists at %s", configPath),
			"Use --force to overwrite it, or 'unyo config set' to change one value",
		)
	}

	newCfg := config.Default()

	interactive := wizard.NewInteractive()
	interactive.SetEnabled(configInitInteractive && !JSONOutput())
	if _, err := interactive.PromptSetup(newCfg); err != nil {
		return err
	}
	if err := newCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", uerrors.ErrInvalidConfig, err)
	}

	if err := writeConfig(configPath, newCfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Fprintf(out, "Created config file: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		if !newCfg.Weather.HasFixedLocation() {
			fmt.Fprintln(out, "  - The location will be detected from your public IP.")
			fmt.Fprintln(out, "    Set weather.latitude and weather.longitude to pin it.")
		}
		fmt.Fprintln(out, "  - Run 'unyo status' to check every source once")
		fmt.Fprintln(out, "  - Run 'unyo run' to start the kiosk")
	}

	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// writeConfig encodes v as TOML under a short header, creating parent
// directories as needed.
func writeConfig(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return encodeConfig(f, v)
}

func encodeConfig(w io.Writer, v any) error {
	_, _ = fmt.Fprintln(w, "# Unyo Configuration")
	_, _ = fmt.Fprintln(w, "# https://github.com/tessro/unyo")
	_, _ = fmt.Fprintln(w, "")

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

// settableKeys lists every key `config set` accepts.
var settableKeys = map[string]keyKind{
	"bluetooth.enabled":          kindBool,
	"bluetooth.interval_ms":      kindInt,
	"bluetooth.timeout_ms":       kindInt,
	"bluetooth.service":          kindString,
	"bluetooth.device_name":      kindString,
	"bluetooth.device_name_file": kindString,
	"wifi.enabled":               kindBool,
	"wifi.interval_ms":           kindInt,
	"wifi.timeout_ms":            kindInt,
	"wifi.command":               kindString,
	"weather.enabled":            kindBool,
	"weather.interval_s":         kindInt,
	"weather.timeout_ms":         kindInt,
	"weather.base_url":           kindString,
	"weather.geo_url":            kindString,
	"weather.latitude":           kindFloat,
	"weather.longitude":          kindFloat,
	"weather.city":               kindString,
	"power.enabled":              kindBool,
	"power.interval_ms":          kindInt,
	"power.timeout_ms":           kindInt,
	"power.command":              kindString,
	"display.frame_interval_ms":  kindInt,
	"display.theme":              kindString,
	"log.level":                  kindString,
	"log.file":                   kindString,
}

func knownKeys() string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// setKey parses value according to key's type and stores it in raw.
func setKey(raw map[string]any, key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return uerrors.WithSuggestion(
			fmt.Errorf("unknown key %q", key),
			"Known keys: "+knownKeys(),
		)
	}

	var typed any
	switch kind {
	case kindInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typed = i
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("value must be a number for %s", key)
		}
		typed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value must be true or false for %s", key)
		}
		typed = b
	default:
		typed = value
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}
	sectionMap[field] = typed
	return nil
}

// validateRaw checks that raw still decodes into a valid Config.
func validateRaw(raw map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	var c config.Config
	if _, err := toml.Decode(buf.String(), &c); err != nil {
		return err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", uerrors.ErrInvalidConfig, err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath := getConfigPath()

	raw := map[string]any{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return uerrors.WithSuggestion(
			fmt.Errorf("%w at %s", uerrors.ErrConfigNotFound, configPath),
			"Run 'unyo config init' first",
		)
	case err != nil:
		return fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := setKey(raw, key, value); err != nil {
		return err
	}
	if err := validateRaw(raw); err != nil {
		return err
	}

	if err := writeConfig(configPath, raw); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Fprintf(out, "Set %s = %s\n", key, value)
	}

	return nil
}
