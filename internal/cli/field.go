package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfield"
)

type fieldOptions struct {
	config      string
	width       int
	height      int
	tps         int
	showFPS     bool
	script      string
	screenshots string
	debug       bool
}

func newFieldCmd() *cobra.Command {
	opts := fieldOptions{width: 1280, height: 720, screenshots: "screenshots"}

	cmd := &cobra.Command{
		Use:   "field",
		Short: "Run the hexagon field in a window",
		Long: `Open a resizable window with the animated hexagon field.

Options are read from a YAML or TOML file given with --config and layered
over the defaults. A JSON test script given with --script drives the pointer,
changes options and takes screenshots; the window closes when it finishes.`,
		Example: `  meetchase field
  meetchase field --config field.yaml --fps
  meetchase field --script sweep.json --screenshots out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runField(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "options file (.yaml, .yml or .toml)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "initial window width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "initial window height")
	cmd.Flags().IntVar(&opts.tps, "tps", 0, "ticks per second (0 for the default 60)")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show the FPS overlay")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON test script to run")
	cmd.Flags().StringVar(&opts.screenshots, "screenshots", opts.screenshots, "screenshot output directory")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame stats (with --verbose)")

	return cmd
}

func runField(cmd *cobra.Command, opts fieldOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	engineOpts, err := loadFieldOptions(opts.config)
	if err != nil {
		return err
	}

	var runner *hexfield.TestRunner
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if runner, err = hexfield.LoadTestScript(data); err != nil {
			return err
		}
	}

	g := hexfield.NewGame(engineOpts)
	g.Logger = logger.WithPrefix("hexfield")
	g.Engine.Logger = g.Logger
	g.ShowFPS = opts.showFPS
	g.Debug = opts.debug
	g.ScreenshotDir = opts.screenshots
	if runner != nil {
		g.SetTestRunner(runner)
		g.ExitOnScriptDone = true
	}

	go func() {
		<-ctx.Done()
		g.Quit()
	}()

	logger.Debug("opening window", "width", opts.width, "height", opts.height,
		"columns", engineOpts.Columns, "rows", engineOpts.Rows)
	if err := hexfield.Run(g, hexfield.RunConfig{
		Title:  "meetchase",
		Width:  opts.width,
		Height: opts.height,
		TPS:    opts.tps,
	}); err != nil {
		return err
	}
	return ctx.Err()
}

// loadFieldOptions returns the defaults, or the options in path when set.
func loadFieldOptions(path string) (hexfield.Options, error) {
	if path == "" {
		return hexfield.DefaultOptions(), nil
	}
	return hexfield.LoadOptions(path)
}
