package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/render"
	"github.com/zjrosen/colortags/internal/watcher"
)

var (
	renderFormat string
	renderWidth  int
	renderWatch  bool
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markup as colored terminal text, HTML, or plain text",
	Long: `Render a document with every color tag resolved and its markup removed.

Reads from stdin when no file is given (or the file is "-").

Formats:
  ansi   terminal colors, downsampled to what the terminal supports (default)
  html   Markdown rendered to HTML, tags become colored <span> elements
  plain  text only

Examples:
  colortags render notes.md
  colortags render notes.md --format html -o notes.html
  colortags render notes.md --width 72
  echo '$red alert' | colortags render

  # Re-render whenever the file changes
  colortags render notes.md --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: ansi, html, or plain (default from config)")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "wrap ansi/plain output at this width (default from config)")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render when the file changes")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format := cfg.Render.Format
	if cmd.Flags().Changed("format") {
		format = renderFormat
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	width := cfg.Render.Width
	if cmd.Flags().Changed("width") {
		width = renderWidth
	}
	if width < 0 {
		return fmt.Errorf("--width must not be negative, got %d", width)
	}

	opts := render.Options{Format: f, Width: width, Profile: render.DetectProfile()}
	if renderOutput != "" {
		// Files never get terminal escapes they cannot use.
		if f == render.FormatANSI {
			opts.Profile = termenv.Ascii
		}
	}

	path := ""
	if len(args) == 1 && args[0] != "-" {
		path = args[0]
	}
	if renderWatch && path == "" {
		return fmt.Errorf("--watch needs a file argument")
	}

	renderOnce := func() error {
		source, err := readSource(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		return writeRendered(cmd.OutOrStdout(), source, opts)
	}
	if err := renderOnce(); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}

	w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.Render.Debounce})
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := termenv.NewOutput(cmd.OutOrStdout())
	return watchAndRender(ctx, changes, func() error {
		if renderOutput == "" {
			out.ClearScreen()
		}
		return renderOnce()
	})
}

// watchAndRender re-renders on every change until ctx is done or changes is
// closed. Render errors are reported and do not stop the loop.
func watchAndRender(ctx context.Context, changes <-chan struct{}, renderOnce func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := renderOnce(); err != nil {
				log.ErrorErr(log.CatRender, "Re-render failed", err)
			}
		}
	}
}

func writeRendered(stdout io.Writer, source []byte, opts render.Options) error {
	if renderOutput == "" {
		return render.Render(stdout, source, opts)
	}
	f, err := os.Create(renderOutput) //nolint:gosec // G304: user-supplied output path
	if err != nil {
		return fmt.Errorf("creating %s: %w", renderOutput, err)
	}
	if err := render.Render(f, source, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// readSource reads path, or stdin when path is empty.
func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
