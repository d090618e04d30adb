package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"schedgantt/internal/chart"
	"schedgantt/internal/config"
	"schedgantt/internal/trace"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cores      int
		mode       string
		output     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "schedgantt [trace-file]",
		Short: "Draw a per-core Gantt chart from a scheduler simulator trace",
		Long: `schedgantt reads the execution trace of the CPU scheduling simulator
(from a file or standard input) and renders which process occupied which
core during which time slots, as a PNG chart, an aligned table or CSV.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cores") {
				cfg.Cores = cores
			}
			if flags.Changed("mode") {
				cfg.Mode = mode
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if cfg.Cores <= 0 {
				return fmt.Errorf("--cores must be positive, got %d", cfg.Cores)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var logger *log.Logger
			if verbose {
				logger = log.New(cmd.ErrOrStderr(), "", 0)
			}
			return run(cfg, in, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedgantt.yml", "configuration file")
	cmd.Flags().IntVar(&cores, "cores", trace.DefaultCores, "number of cores of the simulated machine")
	cmd.Flags().StringVarP(&mode, "mode", "m", config.ModePNG, "output mode: png, table or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default gantt.png in png mode, stdout otherwise)`)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log recognised trace events to stderr")
	return cmd
}

// run parses the whole trace before rendering; a parse error produces no chart.
func run(cfg config.Config, in io.Reader, stdout io.Writer, logger *log.Logger) error {
	tl, err := trace.Parser{Cores: cfg.Cores, Log: logger}.Parse(in)
	if err != nil {
		return err
	}

	r, err := chart.New(cfg)
	if err != nil {
		return err
	}

	path := cfg.OutputPath()
	if path == "" {
		return r.Render(stdout, tl)
	}

	f, err := os.Create(path)
	if err != nil {
		return &chart.RenderError{Mode: cfg.Mode, Err: err}
	}
	if err := r.Render(f, tl); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return &chart.RenderError{Mode: cfg.Mode, Err: err}
	}
	if logger != nil {
		logger.Printf("wrote %s", path)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
