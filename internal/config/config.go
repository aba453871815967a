// Package config provides configuration types and defaults for colortags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/flags"
	"github.com/zjrosen/colortags/internal/log"
)

const (
	// MaxRecentColors caps the most-recently-used color list.
	MaxRecentColors = 8

	// VaultSize is the fixed number of user-configured vault swatches.
	VaultSize = 8

	// emptyVaultSlot fills vault slots missing from a loaded config.
	emptyVaultSlot = "#ffffff"
)

// Config holds all configuration options for colortags.
type Config struct {
	RecentColors  []string        `mapstructure:"recent_colors"`  // newest first, at most MaxRecentColors
	VaultSwatches []string        `mapstructure:"vault_swatches"` // exactly VaultSize after Merge
	Editor        EditorConfig    `mapstructure:"editor"`
	Render        RenderConfig    `mapstructure:"render"`
	Flags         map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds options for the interactive editor.
type EditorConfig struct {
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	SwatchGlyph     string `mapstructure:"swatch_glyph"`     // glyph drawn for a tag's swatch control
	ReloadOnChange  *bool  `mapstructure:"reload_on_change"` // nil = true
}

// ShouldReload returns whether the buffer reloads on external changes (defaults to true if nil).
func (e EditorConfig) ShouldReload() bool {
	return e.ReloadOnChange == nil || *e.ReloadOnChange
}

// RenderConfig holds options for static rendering.
type RenderConfig struct {
	// Format selects the output: "ansi" (default), "html" or "plain".
	Format string `mapstructure:"format"`

	// Width wraps ANSI and plain output at this many columns. 0 disables wrapping.
	Width int `mapstructure:"width"`

	// Debounce coalesces file change events in --watch mode.
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultVaultSwatches returns the built-in vault colors.
func DefaultVaultSwatches() []string {
	return []string{
		"#e74c3c", "#e67e22", "#f1c40f", "#2ecc71",
		"#3498db", "#9b59b6", "#e91e8d", "#00bcd4",
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		RecentColors:  []string{},
		VaultSwatches: DefaultVaultSwatches(),
		Editor: EditorConfig{
			ShowLineNumbers: false,
			SwatchGlyph:     "■",
		},
		Render: RenderConfig{
			Format:   "ansi",
			Width:    0,
			Debounce: 200 * time.Millisecond,
		},
		Flags: flags.Defaults(),
	}
}

// Merge combines a loaded config with defaults. Loaded values take
// precedence field by field; a field that was not set in the loaded config
// (nil slice, map or pointer, empty string, zero number, false) falls back to
// the default.
// The vault is normalized to VaultSize entries and the recent list is
// canonicalized and capped.
func Merge(loaded, defaults Config) Config {
	out := defaults

	if loaded.RecentColors != nil {
		out.RecentColors = loaded.RecentColors
	}
	if loaded.VaultSwatches != nil {
		out.VaultSwatches = loaded.VaultSwatches
	}

	if loaded.Editor.ShowLineNumbers {
		out.Editor.ShowLineNumbers = true
	}
	if loaded.Editor.SwatchGlyph != "" {
		out.Editor.SwatchGlyph = loaded.Editor.SwatchGlyph
	}
	if loaded.Editor.ReloadOnChange != nil {
		out.Editor.ReloadOnChange = loaded.Editor.ReloadOnChange
	}

	if loaded.Render.Format != "" {
		out.Render.Format = loaded.Render.Format
	}
	if loaded.Render.Width != 0 {
		out.Render.Width = loaded.Render.Width
	}
	if loaded.Render.Debounce != 0 {
		out.Render.Debounce = loaded.Render.Debounce
	}

	if loaded.Flags != nil {
		out.Flags = make(map[string]bool, len(defaults.Flags)+len(loaded.Flags))
		for k, v := range defaults.Flags {
			out.Flags[k] = v
		}
		for k, v := range loaded.Flags {
			out.Flags[k] = v
		}
	}

	out.VaultSwatches = NormalizeVault(out.VaultSwatches)
	out.RecentColors = normalizeRecent(out.RecentColors)
	return out
}

// NormalizeVault returns exactly VaultSize canonical swatches. Extra entries
// are dropped and missing or empty slots become white.
func NormalizeVault(swatches []string) []string {
	out := make([]string, VaultSize)
	for i := range out {
		if i < len(swatches) && strings.TrimSpace(swatches[i]) != "" {
			out[i] = colortag.NormalizeColor(strings.TrimSpace(swatches[i]))
		} else {
			out[i] = emptyVaultSlot
		}
	}
	return out
}

// AddRecentColor records color as the most recently used one.
// The stored value is the lowercase canonical hex; an existing entry equal to
// it (case-insensitively) moves to the front and the list is capped at
// MaxRecentColors. The input slice is not modified.
func AddRecentColor(recent []string, color string) []string {
	hex := strings.ToLower(colortag.NormalizeColor(color))
	out := make([]string, 0, MaxRecentColors)
	out = append(out, hex)
	for _, c := range recent {
		if strings.EqualFold(c, hex) {
			continue
		}
		if len(out) == MaxRecentColors {
			break
		}
		out = append(out, c)
	}
	return out
}

// normalizeRecent canonicalizes, de-duplicates and caps a loaded recent list
// while keeping its order.
func normalizeRecent(recent []string) []string {
	out := make([]string, 0, min(len(recent), MaxRecentColors))
	seen := make(map[string]bool, len(recent))
	for _, c := range recent {
		hex := strings.ToLower(colortag.NormalizeColor(strings.TrimSpace(c)))
		if seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
		if len(out) == MaxRecentColors {
			break
		}
	}
	return out
}

// Validate checks configuration for errors.
// Colors must be accepted color values; the render format must be known.
func Validate(cfg Config) error {
	for i, c := range cfg.VaultSwatches {
		if c == "" {
			continue // filled by NormalizeVault
		}
		if _, ok := colortag.Resolve(c); !ok {
			return fmt.Errorf("vault_swatches[%d]: invalid color %q", i, c)
		}
	}
	for i, c := range cfg.RecentColors {
		if _, ok := colortag.Resolve(c); !ok {
			return fmt.Errorf("recent_colors[%d]: invalid color %q", i, c)
		}
	}
	if err := ValidateRender(cfg.Render); err != nil {
		return err
	}
	return nil
}

// ValidateRender checks render configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateRender(r RenderConfig) error {
	switch r.Format {
	case "", "ansi", "html", "plain":
	default:
		return fmt.Errorf("render.format must be \"ansi\", \"html\", or \"plain\", got %q", r.Format)
	}
	if r.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", r.Width)
	}
	if r.Debounce < 0 {
		return fmt.Errorf("render.debounce must not be negative, got %s", r.Debounce)
	}
	return nil
}

// DefaultConfigPath returns ~/.config/colortags/config.yaml, or an empty
// string if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "colortags", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# colortags configuration

# Quick-access colors shown in the picker (exactly 8; missing slots are white)
vault_swatches:
  - "#e74c3c"
  - "#e67e22"
  - "#f1c40f"
  - "#2ecc71"
  - "#3498db"
  - "#9b59b6"
  - "#e91e8d"
  - "#00bcd4"

# Most recently applied colors, newest first (managed by colortags, max 8)
recent_colors: []

# Editor settings
editor:
  show_line_numbers: false
  swatch_glyph: "■"        # glyph drawn in front of the tag being edited
  reload_on_change: true   # reload the buffer when the file changes on disk

# Static rendering (colortags render)
render:
  format: ansi       # ansi, html, or plain
  width: 0           # wrap width for ansi/plain output, 0 = no wrapping
  debounce: 200ms    # --watch: coalesce file changes

# Feature flags
# flags:
#   swatch-click: true     # click a swatch to open the picker
#   wrap-selection: true   # picking a color with text selected wraps the selection

# Markup:
#   $red This is red text
#   $#ff5500 Orange text
#   $fff White text
#   $ Bare tag, pick a color in the editor
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
