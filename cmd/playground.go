package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/colortags/internal/flags"
	"github.com/zjrosen/colortags/internal/ui/editor"
)

const playgroundText = `Welcome to the colortags playground.

$red This line is red.
$#ff5500 Orange, written as hex.
$3498db Short and long hex both work, $fff even three digits.
$ A bare tag has no color yet: put the cursor on it and press ctrl+k.
Several $green colors $blue on $purple one line.

Move the cursor onto a tag to see its markup. Press esc to preview.
Nothing here is saved unless you press ctrl+s, which has no file to write.
`

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Try the editor on a sample document",
	Long:  `Launch the editor on a scratch buffer full of example tags. Picked colors are not saved to the config.`,
	Args:  cobra.NoArgs,
	RunE:  runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(_ *cobra.Command, _ []string) error {
	zone.NewGlobal()
	model := editor.New(editor.Config{
		Text:        playgroundText,
		Vault:       cfg.VaultSwatches,
		Recent:      cfg.RecentColors,
		SwatchGlyph: cfg.Editor.SwatchGlyph,
		LineNumbers: true,
		Flags:       flags.New(cfg.Flags),
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
