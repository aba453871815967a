package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/colortags/internal/config"
	"github.com/zjrosen/colortags/internal/flags"
	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/ui/editor"
	"github.com/zjrosen/colortags/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the editor.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config.
const localConfigPath = ".colortags/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configPath string // config file in use, "" when none could be resolved
	configErr  error

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "colortags [file]",
	Short: "Edit and render inline color markup",
	Long: `colortags edits and renders text containing inline color tags.

A tag is a "$" followed by an optional color and the text it colors:

  $red This is red text
  $#ff5500 Orange text
  $fff White text

Run without a subcommand to open the interactive editor on a file. The tag
under the cursor shows its markup; every other tag shows only its colored
text.`,
	Args:              cobra.MaximumNArgs(1),
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
	RunE: runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/colortags/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also COLORTAGS_DEBUG)")
	rootCmd.Flags().BoolP("line-numbers", "n", false,
		"show line numbers")
	rootCmd.Flags().Bool("no-reload", false,
		"do not reload the buffer when the file changes on disk")
}

func initConfig() {
	viper.Reset()
	configErr = nil

	defaults := config.Defaults()
	viper.SetDefault("vault_swatches", defaults.VaultSwatches)
	viper.SetDefault("recent_colors", defaults.RecentColors)
	viper.SetDefault("editor.show_line_numbers", defaults.Editor.ShowLineNumbers)
	viper.SetDefault("editor.swatch_glyph", defaults.Editor.SwatchGlyph)
	viper.SetDefault("render.format", defaults.Render.Format)
	viper.SetDefault("render.width", defaults.Render.Width)
	viper.SetDefault("render.debounce", defaults.Render.Debounce)

	// COLORTAGS_RENDER_FORMAT=html etc.
	viper.SetEnvPrefix("COLORTAGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config lookup order:
	// 1. --config
	// 2. .colortags/config.yaml (current directory)
	// 3. ~/.config/colortags/config.yaml (user config, created when missing)
	configPath = cfgFile
	if configPath == "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			configPath = localConfigPath
		} else {
			configPath = config.DefaultConfigPath()
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if writeErr := config.WriteDefaultConfig(configPath); writeErr != nil {
				// Continue with defaults and without persistence.
				configPath = ""
			}
		}
	}

	var loaded config.Config
	if configPath != "" {
		viper.SetConfigFile(configPath)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			configErr = fmt.Errorf("reading %s: %w", configPath, err)
		}
	}
	if err := viper.Unmarshal(&loaded); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
	if configErr == nil {
		if err := config.Validate(loaded); err != nil {
			configErr = fmt.Errorf("invalid configuration: %w", err)
		}
	}
	cfg = config.Merge(loaded, defaults)
}

func preRun(cmd *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv("COLORTAGS_DEBUG") != "" {
		logPath := os.Getenv("COLORTAGS_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "colortags")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatCLI, "Starting", "command", cmd.Name(), "config", configPath, "version", version)
	}
	if configErr != nil {
		log.ErrorErr(log.CatConfig, "Config failed", configErr, "path", configPath)
		return configErr
	}
	return nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	var path, text string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text = string(data)
	}

	showLines := cfg.Editor.ShowLineNumbers
	if lines, _ := cmd.Flags().GetBool("line-numbers"); lines {
		showLines = true
	}
	reload := cfg.Editor.ShouldReload()
	if noReload, _ := cmd.Flags().GetBool("no-reload"); noReload {
		reload = false
	}

	var changes <-chan struct{}
	if path != "" && reload {
		w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.Render.Debounce})
		if err != nil {
			return err
		}
		ch, err := w.Start()
		if err != nil {
			// Editing still works without live reload.
			log.ErrorErr(log.CatWatcher, "Watch failed", err, "path", path)
		} else {
			changes = ch
			defer func() { _ = w.Stop() }()
		}
	}

	zone.NewGlobal()
	model := editor.New(editor.Config{
		Path:        path,
		Text:        text,
		ConfigPath:  configPath,
		Vault:       cfg.VaultSwatches,
		Recent:      cfg.RecentColors,
		SwatchGlyph: cfg.Editor.SwatchGlyph,
		LineNumbers: showLines,
		Reload:      reload,
		Flags:       flags.New(cfg.Flags),
		Changes:     changes,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
