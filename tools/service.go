package tools

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/olgasafonova/mediawiki-delete-category/internal/cleanup"
	"github.com/olgasafonova/mediawiki-delete-category/internal/prompt"
)

// PreviewCategoryArgs are the arguments of mediawiki_preview_category
type PreviewCategoryArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Category title including the Category: prefix"`
}

// DeleteCategoryArgs are the arguments of mediawiki_delete_category
type DeleteCategoryArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Category title including the Category: prefix"`
	Force    bool   `json:"force,omitempty" jsonschema:"Also delete members that are still linked to or embedded"`
	Reason   string `json:"reason,omitempty" jsonschema:"Deletion summary recorded in the deletion log"`
}

// Service runs cleanups on behalf of MCP clients. Runs are serialized
// because they share one wiki session.
type Service struct {
	site     cleanup.Site
	category string
	reason   string
	logger   *slog.Logger

	mu sync.Mutex
}

// NewService creates a Service with the category and reason used when a
// call leaves them empty.
func NewService(site cleanup.Site, category, reason string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{site: site, category: category, reason: reason, logger: logger}
}

// PreviewCategory reports what an automatic run would delete and keep
func (s *Service) PreviewCategory(ctx context.Context, args PreviewCategoryArgs) (cleanup.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cleanup.BuildPreview(ctx, s.site, s.categoryOr(args.Category))
}

// DeleteCategory runs an automatic cleanup. Operator prompts never happen
// here; progress lines are discarded because stdout carries the protocol.
func (s *Service) DeleteCategory(ctx context.Context, args DeleteCategoryArgs) (cleanup.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reason := args.Reason
	if reason == "" {
		reason = s.reason
	}

	engine := cleanup.NewEngine(s.site, prompt.Static(false), cleanup.Options{
		Category: s.categoryOr(args.Category),
		Auto:     true,
		Force:    args.Force,
		Reason:   reason,
	}, cleanup.WithOutput(io.Discard), cleanup.WithLogger(s.logger))

	return engine.Run(ctx)
}

func (s *Service) categoryOr(category string) string {
	if category == "" {
		return s.category
	}
	return category
}
