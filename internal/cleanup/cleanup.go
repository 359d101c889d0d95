// Package cleanup decides which members of a deletion category can be removed.
// It enumerates the category, looks up what still references each member and
// deletes, skips or asks the operator according to the run mode.
package cleanup

import (
	"context"
	"iter"
	"net/url"

	"github.com/olgasafonova/mediawiki-delete-category/wiki"
)

// Querier runs a continued action=query request and yields every response batch
type Querier interface {
	Query(ctx context.Context, params url.Values) iter.Seq2[wiki.Page, error]
}

// Deleter deletes a single page or file
type Deleter interface {
	Delete(ctx context.Context, title, reason string) (wiki.DeleteResult, error)
}

// Site is the wiki the engine works against. *wiki.Client satisfies it.
type Site interface {
	Querier
	Deleter
}

// Prompter asks the operator a yes/no question
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Options configures a run. Force is only honoured together with Auto;
// callers validate that combination before building an Engine.
type Options struct {
	Category string
	Auto     bool
	Force    bool
	Reason   string
}

// SkipRecord is a candidate left in place because other pages still use it
type SkipRecord struct {
	Title     string   `json:"title"`
	Referrers []string `json:"referrers"`
}

// Result summarizes a run
type Result struct {
	Category string       `json:"category"`
	Deleted  []string     `json:"deleted"`
	Declined []string     `json:"declined,omitempty"`
	Skipped  []SkipRecord `json:"skipped"`
}
