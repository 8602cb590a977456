// Package engine runs the sequential step-automation loop
package engine

import (
	"context"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"

	apperrors "github.com/voskv/screentap/internal/errors"
	"github.com/voskv/screentap/internal/step"
	"github.com/voskv/screentap/internal/vision"
)

// Source supplies one fresh frame per polling iteration.
type Source interface {
	Capture() (img image.Image, changed bool, err error)
}

// Matcher evaluates one step against one frame.
type Matcher interface {
	Evaluate(ctx context.Context, frame image.Image, st step.Step) ([]vision.Candidate, error)
}

// Clicker performs a humanized click inside a rectangle and returns the
// clicked point.
type Clicker interface {
	ClickInRect(rect image.Rectangle, padding int) image.Point
}

// Options bound the engine's polling behavior.
type Options struct {
	MinInterval time.Duration // backoff lower bound after a failed match
	MaxInterval time.Duration // backoff upper bound after a failed match
	Padding     int           // click padding inside matched rectangles
}

// Engine owns the ordered step list and its cyclic index. Steps are
// evaluated strictly round-robin; the index advances only after a click.
type Engine struct {
	steps   []step.Step
	source  Source
	matcher Matcher
	clicker Clicker
	opts    Options
}

// New creates an engine over a prepared, immutable step list.
func New(steps []step.Step, source Source, matcher Matcher, clicker Clicker, opts Options) *Engine {
	if opts.MaxInterval < opts.MinInterval {
		opts.MaxInterval = opts.MinInterval
	}
	return &Engine{steps: steps, source: source, matcher: matcher, clicker: clicker, opts: opts}
}

// Run polls until ctx is canceled. Every operation blocks the calling
// goroutine; cancellation is honored between iterations and during the
// backoff sleep, never mid-capture or mid-click. An engine with no steps
// refuses to start; once the loop starts, nothing inside it is fatal and
// the return is always nil.
func (e *Engine) Run(ctx context.Context) error {
	if len(e.steps) == 0 {
		return apperrors.New(apperrors.CodeConfigMissing, "step list is empty")
	}

	slog.Info("starting", "steps", len(e.steps))

	index := 0
	for {
		if ctx.Err() != nil {
			slog.Info("stopped")
			return nil
		}

		st := e.steps[index]
		stepNum := index + 1

		frame, changed, err := e.source.Capture()
		if err != nil {
			slog.Error("frame capture failed", "step", stepNum, "error", err)
			if !e.backoff(ctx) {
				slog.Info("stopped")
				return nil
			}
			continue
		}
		if !changed {
			slog.Debug("screen unchanged since previous frame", "step", stepNum)
		}

		candidates, err := e.matcher.Evaluate(ctx, frame, st)
		if err != nil {
			slog.Debug("recognition failed", "step", stepNum, "error", err)
		}
		if len(candidates) == 0 {
			e.logMiss(st, stepNum)
			if !e.backoff(ctx) {
				slog.Info("stopped")
				return nil
			}
			continue
		}

		// Always the first candidate in scan order, never the best score.
		hit := candidates[0]
		pt := e.clicker.ClickInRect(hit.Box, e.opts.Padding)
		e.logClick(st, stepNum, hit, pt)

		index = (index + 1) % len(e.steps)
	}
}

// backoff sleeps a uniformly random duration within the configured
// interval. Returns false when ctx was canceled during the sleep.
func (e *Engine) backoff(ctx context.Context) bool {
	d := e.opts.MinInterval
	if e.opts.MaxInterval > e.opts.MinInterval {
		d += rand.N(e.opts.MaxInterval - e.opts.MinInterval)
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (e *Engine) logMiss(st step.Step, stepNum int) {
	switch st.Mode {
	case step.ModeText:
		slog.Info("target text not found", "step", stepNum, "targets", st.Keywords)
	case step.ModeTemplate:
		slog.Info("template not found", "step", stepNum, "template", st.TemplateName())
	case step.ModeTemplateText:
		slog.Info("no text match inside template", "step", stepNum, "template", st.TemplateName(), "targets", st.Keywords)
	}
}

func (e *Engine) logClick(st step.Step, stepNum int, hit vision.Candidate, pt image.Point) {
	switch st.Mode {
	case step.ModeText:
		slog.Info("clicked text", "step", stepNum, "text", hit.Text, "x", pt.X, "y", pt.Y)
	case step.ModeTemplate:
		slog.Info("clicked template", "step", stepNum, "template", st.TemplateName(), "score", hit.Score, "x", pt.X, "y", pt.Y)
	case step.ModeTemplateText:
		slog.Info("clicked text inside template", "step", stepNum, "template", st.TemplateName(), "score", hit.Score, "text", hit.Text, "x", pt.X, "y", pt.Y)
	}
}
