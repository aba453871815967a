package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/config"
	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/presentation"
)

var (
	recolorOffset int
	recolorColor  string
	recolorWrite  bool
)

var recolorCmd = &cobra.Command{
	Use:   "recolor <file>",
	Short: "Change the color of the tag at an offset",
	Long: `Rewrite the color of the tag containing a byte offset. Only the tag's
color spec changes; its content is left alone.

Prints a diff of the change. Use --write to save it back to the file. The
applied color is added to the recent colors.

Examples:
  # Preview
  colortags recolor notes.md --offset 42 --color blue

  # Apply
  colortags recolor notes.md -o 42 -C '#ff5500' --write

  # Find offsets first
  colortags tokens notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runRecolor,
}

func init() {
	recolorCmd.Flags().IntVarP(&recolorOffset, "offset", "o", -1, "byte offset inside the tag (required)")
	recolorCmd.Flags().StringVarP(&recolorColor, "color", "C", "", "new color: a name, #rgb or #rrggbb (required)")
	recolorCmd.Flags().BoolVar(&recolorWrite, "write", false, "write the change back to the file")
	rootCmd.AddCommand(recolorCmd)
}

func runRecolor(cmd *cobra.Command, args []string) error {
	if recolorOffset < 0 || recolorColor == "" {
		return cmd.Help()
	}
	hex, ok := colortag.Resolve(strings.TrimSpace(recolorColor))
	if !ok {
		return fmt.Errorf("invalid color %q", recolorColor)
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	rep, ok := colortag.ApplyColor(text, recolorOffset, hex)
	if !ok {
		return fmt.Errorf("no color tag at offset %d", recolorOffset)
	}
	updated := rep.Apply(text)
	log.Debug(log.CatMutate, "Recolor", "path", path, "offset", recolorOffset, "from", rep.From, "to", rep.To, "insert", rep.Insert)

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	if err := formatter.FormatDiff(text, updated); err != nil {
		return err
	}
	if !recolorWrite {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	formatter.Success("Recolored " + path)

	if configPath != "" {
		recent := config.AddRecentColor(cfg.RecentColors, hex)
		if err := config.SaveRecentColors(configPath, recent); err != nil {
			return fmt.Errorf("saving recent colors: %w", err)
		}
		cfg.RecentColors = recent
	}
	return nil
}
