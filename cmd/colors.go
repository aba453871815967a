package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/config"
	"github.com/zjrosen/colortags/internal/presentation"
)

var (
	colorsJSON  bool
	colorsClear bool
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Show the vault and recent colors",
	Long: `Show the vault swatches and the recently applied colors from the config
file.

Examples:
  colortags colors
  colortags colors --json

  # Forget recent colors
  colortags colors --clear

  # Replace vault slot 3
  colortags colors vault 3 '#ff5500'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if colorsClear {
			if configPath == "" {
				return fmt.Errorf("no config file to update")
			}
			if err := config.ClearRecentColors(configPath); err != nil {
				return err
			}
			cfg.RecentColors = []string{}
			formatter.Success("Cleared recent colors")
			return nil
		}

		dto := presentation.ColorsDTO{
			ConfigPath: configPath,
			Vault:      cfg.VaultSwatches,
			Recent:     cfg.RecentColors,
		}
		if colorsJSON {
			return formatter.FormatJSON(dto)
		}
		return formatter.FormatColors(dto)
	},
}

var colorsVaultCmd = &cobra.Command{
	Use:   "vault <slot> <color>",
	Short: "Set a vault swatch",
	Long:  fmt.Sprintf("Set vault slot 1-%d to a color name, #rgb or #rrggbb.", config.VaultSize),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil || slot < 1 || slot > config.VaultSize {
			return fmt.Errorf("slot must be 1-%d, got %q", config.VaultSize, args[0])
		}
		hex, ok := colortag.Resolve(strings.TrimSpace(args[1]))
		if !ok {
			return fmt.Errorf("invalid color %q", args[1])
		}
		if configPath == "" {
			return fmt.Errorf("no config file to update")
		}

		vault := config.NormalizeVault(cfg.VaultSwatches)
		vault[slot-1] = hex
		if err := config.SaveVaultSwatches(configPath, vault); err != nil {
			return err
		}
		cfg.VaultSwatches = vault
		presentation.NewFormatter(cmd.OutOrStdout()).Success(fmt.Sprintf("Vault slot %d set to %s", slot, hex))
		return nil
	},
}

func init() {
	colorsCmd.Flags().BoolVar(&colorsJSON, "json", false, "output JSON")
	colorsCmd.Flags().BoolVar(&colorsClear, "clear", false, "clear the recent colors")
	colorsCmd.AddCommand(colorsVaultCmd)
	rootCmd.AddCommand(colorsCmd)
}
