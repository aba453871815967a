package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/colortags/internal/flags"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Empty(t, cfg.RecentColors)
	assert.NotNil(t, cfg.RecentColors)
	assert.Len(t, cfg.VaultSwatches, VaultSize)
	assert.Equal(t, "■", cfg.Editor.SwatchGlyph)
	assert.True(t, cfg.Editor.ShouldReload())
	assert.Equal(t, "ansi", cfg.Render.Format)
	assert.Equal(t, 200*time.Millisecond, cfg.Render.Debounce)
	assert.Equal(t, flags.Defaults(), cfg.Flags)
	require.NoError(t, Validate(cfg))
}

func TestDefaultVaultSwatches_ReturnsCopy(t *testing.T) {
	a := DefaultVaultSwatches()
	a[0] = "#000000"
	assert.Equal(t, "#e74c3c", DefaultVaultSwatches()[0])
}

func TestEditorConfig_ShouldReload(t *testing.T) {
	assert.True(t, EditorConfig{}.ShouldReload())
	assert.True(t, EditorConfig{ReloadOnChange: boolPtr(true)}.ShouldReload())
	assert.False(t, EditorConfig{ReloadOnChange: boolPtr(false)}.ShouldReload())
}

func TestMerge_EmptyLoadedUsesDefaults(t *testing.T) {
	defaults := Defaults()
	got := Merge(Config{}, defaults)

	assert.Equal(t, defaults.VaultSwatches, got.VaultSwatches)
	assert.Empty(t, got.RecentColors)
	assert.Equal(t, defaults.Editor.SwatchGlyph, got.Editor.SwatchGlyph)
	assert.Equal(t, defaults.Render, got.Render)
}

func TestMerge_LoadedTakesPrecedence(t *testing.T) {
	loaded := Config{
		RecentColors: []string{"#ABC", "red"},
		Editor: EditorConfig{
			ShowLineNumbers: true,
			SwatchGlyph:     "●",
			ReloadOnChange:  boolPtr(false),
		},
		Render: RenderConfig{Format: "html", Width: 72, Debounce: time.Second},
		Flags:  map[string]bool{"swatch-click": false},
	}
	defaults := Defaults()
	defaults.Flags = map[string]bool{"wrap-selection": true}

	got := Merge(loaded, defaults)

	assert.Equal(t, []string{"#abc", "#e74c3c"}, got.RecentColors)
	assert.True(t, got.Editor.ShowLineNumbers)
	assert.Equal(t, "●", got.Editor.SwatchGlyph)
	assert.False(t, got.Editor.ShouldReload())
	assert.Equal(t, RenderConfig{Format: "html", Width: 72, Debounce: time.Second}, got.Render)
	assert.Equal(t, map[string]bool{"swatch-click": false, "wrap-selection": true}, got.Flags)
}

func TestMerge_PartialVaultIsPadded(t *testing.T) {
	got := Merge(Config{VaultSwatches: []string{"red", "#123456"}}, Defaults())

	require.Len(t, got.VaultSwatches, VaultSize)
	assert.Equal(t, "#e74c3c", got.VaultSwatches[0])
	assert.Equal(t, "#123456", got.VaultSwatches[1])
	for _, c := range got.VaultSwatches[2:] {
		assert.Equal(t, "#ffffff", c)
	}
}

func TestNormalizeVault(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "nil fills with white",
			in:   nil,
			want: []string{"#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff"},
		},
		{
			name: "blank slots fill with white",
			in:   []string{"", "  ", "blue"},
			want: []string{"#ffffff", "#ffffff", "#3498db", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff"},
		},
		{
			name: "extra entries dropped",
			in:   []string{"#111", "#222", "#333", "#444", "#555", "#666", "#777", "#888", "#999"},
			want: []string{"#111", "#222", "#333", "#444", "#555", "#666", "#777", "#888"},
		},
		{
			name: "invalid colors fall back",
			in:   []string{"nope"},
			want: []string{"#888888", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVault(tt.in))
		})
	}
}

func TestAddRecentColor_NewestFirst(t *testing.T) {
	var recent []string
	recent = AddRecentColor(recent, "red")
	recent = AddRecentColor(recent, "#00FF00")

	assert.Equal(t, []string{"#00ff00", "#e74c3c"}, recent)
}

func TestAddRecentColor_DeduplicatesCaseInsensitively(t *testing.T) {
	recent := []string{"#aabbcc", "#00ff00", "#112233"}

	got := AddRecentColor(recent, "#00FF00")

	assert.Equal(t, []string{"#00ff00", "#aabbcc", "#112233"}, got)
	assert.Equal(t, []string{"#aabbcc", "#00ff00", "#112233"}, recent, "input must not change")
}

func TestAddRecentColor_CapsAtMax(t *testing.T) {
	recent := []string{"#000001", "#000002", "#000003", "#000004", "#000005", "#000006", "#000007", "#000008"}

	got := AddRecentColor(recent, "#000009")

	require.Len(t, got, MaxRecentColors)
	assert.Equal(t, "#000009", got[0])
	assert.Equal(t, "#000007", got[MaxRecentColors-1])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "named vault color", mutate: func(c *Config) { c.VaultSwatches[0] = "pink" }},
		{
			name:    "bad vault color",
			mutate:  func(c *Config) { c.VaultSwatches[3] = "#12345" },
			wantErr: "vault_swatches[3]",
		},
		{
			name:    "bad recent color",
			mutate:  func(c *Config) { c.RecentColors = []string{"#fff", "mauve"} },
			wantErr: "recent_colors[1]",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Render.Format = "pdf" },
			wantErr: "render.format",
		},
		{
			name:    "negative width",
			mutate:  func(c *Config) { c.Render.Width = -1 },
			wantErr: "render.width",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Render.Debounce = -time.Second },
			wantErr: "render.debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(data))
}
