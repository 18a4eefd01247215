package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pixelspriter/internal/config"
	"pixelspriter/internal/ladder"
	"pixelspriter/internal/pipeline"
	"pixelspriter/internal/platform"
	"pixelspriter/internal/raster"
	"pixelspriter/internal/ui"
	"pixelspriter/internal/watch"
)

type options struct {
	configPath string
	logPath    string
	root       string
	out        string
	workers    int
	backend    string
	anchor     string
	fill       string
	keep       bool
	manifest   bool
	watch      bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixelspriter",
		Short: "Build tiled sprite sheets of shrinking copies of every source image",
		Long: `pixelspriter reads every image in 600px/black and 600px/white, renders it at
600, 437, 291, ... 1 pixels on a 600x600 canvas and joins the tiles left to right
into scaled/<name>-tiled<ext>.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&opts.logPath, "log", "", "append debug log to this file")
	f.StringVar(&opts.root, "root", config.DefaultSourceRoot, "directory holding one folder per category")
	f.StringVarP(&opts.out, "out", "o", config.DefaultOutputDir, "output directory")
	f.IntVarP(&opts.workers, "workers", "j", 1, "images processed in parallel")
	f.StringVar(&opts.backend, "backend", config.BackendLibrary, "image backend: library or convert")
	f.StringVar(&opts.anchor, "anchor", config.AnchorNorthWest, "where tiles sit on the canvas: northwest or center")
	f.StringVar(&opts.fill, "fill", "#ffffff", "canvas fill color (#rrggbb[aa] or transparent)")
	f.BoolVar(&opts.keep, "keep", false, "keep the per-size intermediate files")
	f.BoolVar(&opts.manifest, "manifest", false, "write a JSON tile manifest next to each sheet")
	f.BoolVarP(&opts.watch, "watch", "w", false, "keep running and rebuild sheets when sources change")

	cmd.AddCommand(newSizesCmd())
	return cmd
}

func newSizesCmd() *cobra.Command {
	var start int
	var step float64

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Print the tile ladder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := ladder.Sizes(start, step)
			if err != nil {
				return err
			}
			strs := make([]string, len(sizes))
			for i, s := range sizes {
				strs[i] = fmt.Sprint(s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(strs, " "))
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", config.DefaultStart, "largest tile size")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "ratio between consecutive tiles")
	return cmd
}

// loadConfig starts from the defaults or the config file, then applies flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("root") {
		cfg.SourceRoot = opts.root
	}
	if f.Changed("out") {
		cfg.OutputDir = opts.out
	}
	if f.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if f.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if f.Changed("anchor") {
		cfg.Anchor = opts.anchor
	}
	if f.Changed("fill") {
		cfg.Fill = opts.fill
	}
	if f.Changed("keep") {
		cfg.KeepIntermediates = opts.keep
	}
	if f.Changed("manifest") {
		cfg.Manifest = opts.manifest
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

func newProducer(cfg *config.Config) (raster.Producer, error) {
	anchor, err := raster.ParseAnchor(cfg.Anchor)
	if err != nil {
		return nil, err
	}
	fill, err := config.ParseColor(cfg.Fill)
	if err != nil {
		return nil, err
	}

	if cfg.Backend == config.BackendConvert {
		return raster.NewConvert(cfg.ConvertBinary, cfg.Canvas, anchor, fill), nil
	}
	return raster.NewLibrary(cfg.Canvas, anchor, fill), nil
}

func run(parent context.Context, cfg *config.Config, opts *options) (err error) {
	log.SetOutput(io.Discard)
	if opts.logPath != "" {
		f, ferr := os.OpenFile(opts.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if ferr != nil {
			return errors.Wrap(ferr, "open log file")
		}
		defer f.Close()
		log.SetOutput(f)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CRITICAL PANIC: %v\nStack: %s", r, debug.Stack())
			err = errors.Errorf("panic: %v", r)
		}
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintLogo()
	log.Printf("config: %+v", *cfg)

	lock, err := platform.Lock(cfg.LockPath())
	if err != nil {
		return errors.Wrapf(err, "lock %s", cfg.OutputDir)
	}
	defer lock.Unlock()

	producer, err := newProducer(cfg)
	if err != nil {
		return err
	}
	driver, err := pipeline.NewDriver(cfg, producer)
	if err != nil {
		return err
	}

	ui.Header("DISCOVERY")
	sources, err := pipeline.Discover(cfg)
	if err != nil {
		return err
	}
	ui.Info(fmt.Sprintf("Found %d images, %d tiles each (backend: %s)", len(sources), len(driver.Sizes()), cfg.Backend))

	ui.Header("SHEETS")
	report := driver.Run(ctx, sources)

	ui.Header("DONE")
	if report.OK() {
		ui.Success(fmt.Sprintf("%d sheets written to %s", len(report.Results), cfg.OutputDir))
	} else {
		ui.Warning(fmt.Sprintf("%d sheets written, %d failed", len(report.Results), len(report.Failures)))
	}

	if !opts.watch {
		return report.Err()
	}
	for _, f := range report.Failures {
		ui.Warning(fmt.Sprintf("%s: %v", f.Source, f.Err))
	}

	ui.Header("WATCHING")
	w, err := watch.New(cfg, driver)
	if err != nil {
		return err
	}
	ui.Info("Press Ctrl+C to stop")
	return w.Run(ctx)
}
