// screentap clicks on-screen targets located by text recognition or
// template matching, repeatedly, across one or more sequential steps.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voskv/screentap/internal/config"
	"github.com/voskv/screentap/internal/engine"
	apperrors "github.com/voskv/screentap/internal/errors"
	"github.com/voskv/screentap/internal/hotkey"
	"github.com/voskv/screentap/internal/ocr"
	"github.com/voskv/screentap/internal/platform"
	"github.com/voskv/screentap/internal/pointer"
	"github.com/voskv/screentap/internal/step"
	"github.com/voskv/screentap/internal/vision"
)

func main() {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "screentap",
		Short:         "Automated human-like clicking on matched screen targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "fallback matching mode when no steps are given (text or template)")
	flags.StringVar(&cfg.Target, "target", cfg.Target, "keyword(s) for text mode, separate multiple with |")
	flags.StringVar(&cfg.Template, "template", cfg.Template, "reference image path (PNG/JPEG)")
	flags.StringVar(&cfg.Steps, "steps", cfg.Steps, "inline JSON step list")
	flags.StringVar(&cfg.StepsFile, "steps-file", cfg.StepsFile, "YAML or JSON step list file")
	flags.Float64Var(&cfg.MinInterval, "min-interval", cfg.MinInterval, "minimum polling backoff in seconds")
	flags.Float64Var(&cfg.MaxInterval, "max-interval", cfg.MaxInterval, "maximum polling backoff in seconds")
	flags.Float64Var(&cfg.TplThresh, "tpl-thresh", cfg.TplThresh, "default template similarity floor (0-1)")
	flags.IntVar(&cfg.OCRConf, "ocr-conf", cfg.OCRConf, "default recognition confidence floor")
	flags.StringVar(&cfg.OCRLang, "ocr-lang", cfg.OCRLang, "default recognition language tag")
	flags.StringVar(&cfg.Platform, "platform", cfg.Platform, "backend: auto, darwin, linux, windows, or generic")
	flags.Float64Var(&cfg.DisplayScale, "display-scale", cfg.DisplayScale, "display scale factor, 0 = auto-detect")
	flags.IntVar(&cfg.Padding, "padding", cfg.Padding, "click padding inside matched rectangles, pixels")
	flags.StringVar(&cfg.StopKey, "stop-key", cfg.StopKey, "global emergency-stop key, empty disables")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	specs, err := buildSpecs(cfg)
	if err != nil {
		return err
	}

	steps, err := step.Prepare(specs, step.Defaults{
		Template:  cfg.Template,
		TplThresh: cfg.TplThresh,
		OCRConf:   cfg.OCRConf,
		OCRLang:   cfg.OCRLang,
	})
	if err != nil {
		return err
	}

	backend, err := platform.Select(cfg.Platform, cfg.DisplayScale)
	if err != nil {
		return err
	}
	defer backend.Source.Close()

	var recognizer vision.Recognizer
	if needsText(steps) {
		tess, err := ocr.New()
		if err != nil {
			return err
		}
		defer tess.Close()
		recognizer = tess
	}

	matcher := vision.NewMatcher(recognizer)
	actuator := pointer.New(backend.Device, backend.Scale)

	runCtx := ctx
	if cfg.StopKey != "" {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
		end := hotkey.Listen(cfg.StopKey, cancel)
		defer end()
	}

	eng := engine.New(steps, backend.Source, matcher, actuator, engine.Options{
		MinInterval: seconds(cfg.MinInterval),
		MaxInterval: seconds(cfg.MaxInterval),
		Padding:     cfg.Padding,
	})

	slog.Info("run configuration",
		"platform", backend.Variant,
		"scale", backend.Scale,
		"steps", len(steps),
		"interval_min", cfg.MinInterval,
		"interval_max", cfg.MaxInterval,
	)
	return eng.Run(runCtx)
}

// buildSpecs resolves the step list: inline JSON, a step file, or the
// single-step fallback built from --mode/--target/--template.
func buildSpecs(cfg *config.Config) ([]step.Spec, error) {
	if cfg.Steps != "" {
		return step.ParseJSON(cfg.Steps)
	}
	if cfg.StepsFile != "" {
		return step.ParseFile(cfg.StepsFile)
	}

	switch cfg.Mode {
	case "text", "ocr":
		if cfg.Target == "" {
			return nil, apperrors.New(apperrors.CodeConfigMissing, "text mode requires --target")
		}
		return []step.Spec{{Mode: "text", Target: step.ParseTargets(cfg.Target)}}, nil
	case "template":
		if cfg.Template == "" {
			slog.Warn("no --template given, defaulting to ./image.png")
		}
		return []step.Spec{{Mode: "template", Template: cfg.Template}}, nil
	default:
		return nil, apperrors.Newf(apperrors.CodeConfigInvalid, "unknown mode %q", cfg.Mode)
	}
}

func needsText(steps []step.Step) bool {
	for _, st := range steps {
		if st.Mode.NeedsText() {
			return true
		}
	}
	return false
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
