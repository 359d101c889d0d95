package cleanup

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"net/url"
	"os"

	"github.com/olgasafonova/mediawiki-delete-category/wiki"
)

// fakeSite serves canned query batches keyed by list and title
type fakeSite struct {
	batches   map[string][][]string // "list|title" -> batches of titles
	queryErr  map[string]error      // "list|title" -> error after the batches
	deleteErr map[string]error

	queries []string // "list|title" in call order
	deleted []string
	reasons []string
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		batches:   make(map[string][][]string),
		queryErr:  make(map[string]error),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeSite) members(category string, batches ...[]string) *fakeSite {
	f.batches["categorymembers|"+category] = batches
	return f
}

func (f *fakeSite) backlinks(title string, batches ...[]string) *fakeSite {
	f.batches["backlinks|"+title] = batches
	return f
}

func (f *fakeSite) imageusage(title string, batches ...[]string) *fakeSite {
	f.batches["imageusage|"+title] = batches
	return f
}

func queryKey(params url.Values) string {
	list := params.Get("list")
	for _, key := range []string{"cmtitle", "bltitle", "iutitle"} {
		if v := params.Get(key); v != "" {
			return list + "|" + v
		}
	}
	return list + "|"
}

func (f *fakeSite) Query(ctx context.Context, params url.Values) iter.Seq2[wiki.Page, error] {
	key := queryKey(params)
	f.queries = append(f.queries, key)
	list := params.Get("list")

	return func(yield func(wiki.Page, error) bool) {
		for _, batch := range f.batches[key] {
			entries := make([]interface{}, 0, len(batch))
			for _, title := range batch {
				entries = append(entries, map[string]interface{}{"ns": float64(0), "title": title})
			}
			page := wiki.Page{"query": map[string]interface{}{list: entries}}
			if !yield(page, nil) {
				return
			}
		}
		if err := f.queryErr[key]; err != nil {
			yield(nil, err)
		}
	}
}

func (f *fakeSite) Delete(ctx context.Context, title, reason string) (wiki.DeleteResult, error) {
	if err := f.deleteErr[title]; err != nil {
		return wiki.DeleteResult{}, err
	}
	f.deleted = append(f.deleted, title)
	f.reasons = append(f.reasons, reason)
	return wiki.DeleteResult{Title: title, Reason: reason}, nil
}

func (f *fakeSite) queried(key string) bool {
	for _, q := range f.queries {
		if q == key {
			return true
		}
	}
	return false
}

// scriptedPrompter answers questions from a fixed script and records them
type scriptedPrompter struct {
	answers   map[string]bool
	questions []string
	err       error
}

func (p *scriptedPrompter) Confirm(question string) (bool, error) {
	p.questions = append(p.questions, question)
	if p.err != nil {
		return false, p.err
	}
	return p.answers[question], nil
}

var errTransport = errors.New("connection reset by peer")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
