package cleanup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olgasafonova/mediawiki-delete-category/metrics"
	"github.com/olgasafonova/mediawiki-delete-category/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine applies the deletion policy to every member of a category
type Engine struct {
	site     Site
	prompter Prompter
	opts     Options
	out      io.Writer
	logger   *slog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithOutput sets where operator-facing progress lines are written
func WithOutput(w io.Writer) EngineOption {
	return func(e *Engine) {
		e.out = w
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an Engine. The prompter is only consulted when opts.Auto is false.
func NewEngine(site Site, prompter Prompter, opts Options, options ...EngineOption) *Engine {
	e := &Engine{
		site:     site,
		prompter: prompter,
		opts:     opts,
		out:      os.Stdout,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Run enumerates the category and processes each member in order.
// It stops at the first failed query, prompt or deletion; pages deleted
// before the failure stay deleted and are listed in the returned Result.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	ctx, span := tracing.StartSpan(ctx, "cleanup.run")
	defer span.End()
	tracing.AddWikiAttributes(span, "query:categorymembers", e.opts.Category)

	result := Result{
		Category: e.opts.Category,
		Deleted:  []string{},
		Skipped:  []SkipRecord{},
	}

	candidates, err := Candidates(ctx, e.site, e.opts.Category)
	if err != nil {
		tracing.RecordError(span, err)
		return result, err
	}

	e.logger.Info("Category enumerated",
		"category", e.opts.Category,
		"candidates", len(candidates),
		"auto", e.opts.Auto,
		"force", e.opts.Force,
	)
	fmt.Fprintln(e.out, "Fetching Pages/Images complete. Deleting pages...")

	for _, title := range candidates {
		if err := e.process(ctx, title, &result); err != nil {
			tracing.RecordError(span, err)
			return result, err
		}
	}

	e.logger.Info("Run complete",
		"category", e.opts.Category,
		"deleted", len(result.Deleted),
		"skipped", len(result.Skipped),
		"declined", len(result.Declined),
	)
	return result, nil
}

// process decides the fate of one candidate
func (e *Engine) process(ctx context.Context, title string, result *Result) error {
	ctx, span := tracing.StartSpan(ctx, "cleanup.candidate")
	defer span.End()

	if !e.opts.Auto {
		ok, err := e.prompter.Confirm(fmt.Sprintf("Are you sure to delete \"%s\"?", title))
		if err != nil {
			return fmt.Errorf("confirmation for %q: %w", title, err)
		}
		if !ok {
			e.decline(span, title, nil, result)
			return nil
		}
	}

	referrers, err := Referrers(ctx, e.site, title)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	metrics.RecordReferrers(len(referrers))

	if len(referrers) > 0 {
		fmt.Fprintf(e.out, "\"%s\" has backlink/usage for following pages/files: \"%s\"\n",
			title, strings.Join(referrers, "\", \""))

		switch {
		case e.opts.Auto && !e.opts.Force:
			fmt.Fprintf(e.out, "Ignoring %s\n", title)
			result.Skipped = append(result.Skipped, SkipRecord{Title: title, Referrers: referrers})
			metrics.RecordOutcome(metrics.OutcomeSkipped)
			tracing.AddCandidateAttributes(span, title, len(referrers), metrics.OutcomeSkipped)
			return nil

		case !e.opts.Auto:
			ok, err := e.prompter.Confirm(fmt.Sprintf("Are you REALLY sure to DELETE \"%s\"?", title))
			if err != nil {
				return fmt.Errorf("confirmation for %q: %w", title, err)
			}
			if !ok {
				e.decline(span, title, referrers, result)
				return nil
			}
		}
	}

	if err := e.delete(ctx, title); err != nil {
		tracing.RecordError(span, err)
		return err
	}
	result.Deleted = append(result.Deleted, title)
	metrics.RecordOutcome(metrics.OutcomeDeleted)
	tracing.AddCandidateAttributes(span, title, len(referrers), metrics.OutcomeDeleted)
	return nil
}

// decline records an operator "no". referrers is nil when the first prompt
// was declined, before usage was looked up.
func (e *Engine) decline(span trace.Span, title string, referrers []string, result *Result) {
	result.Declined = append(result.Declined, title)
	metrics.RecordOutcome(metrics.OutcomeDeclined)
	if referrers == nil {
		span.SetAttributes(
			attribute.String(tracing.AttrCandidate, title),
			attribute.String(tracing.AttrOutcome, metrics.OutcomeDeclined),
		)
	} else {
		tracing.AddCandidateAttributes(span, title, len(referrers), metrics.OutcomeDeclined)
	}
	e.logger.Debug("Candidate declined by operator", "title", title)
}

// delete announces and issues the deletion of one title
func (e *Engine) delete(ctx context.Context, title string) error {
	fmt.Fprintf(e.out, "Deleting \"%s\"...\n", title)
	if _, err := e.site.Delete(ctx, title, e.opts.Reason); err != nil {
		return err
	}
	return nil
}
