package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/presentation"
)

var tokensJSON bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "List the color tags in a document",
	Long: `List every color tag in a document with its byte range, line, resolved
color and content. Tags whose color does not resolve are flagged.

Reads from stdin when no file is given (or the file is "-").

Examples:
  colortags tokens notes.md

  # Offsets for recolor
  colortags tokens notes.md --json | jq '.[] | select(.resolved == false) | .start'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 && args[0] != "-" {
			path = args[0]
		}
		source, err := readSource(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		text := string(source)
		tags := presentation.FromTagMatches(text, colortag.Tokenize(text))
		log.Debug(log.CatCLI, "Tokenized", "path", path, "tags", len(tags))

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if tokensJSON {
			return formatter.FormatJSON(tags)
		}
		return formatter.FormatTags(tags)
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "output JSON")
	rootCmd.AddCommand(tokensCmd)
}
