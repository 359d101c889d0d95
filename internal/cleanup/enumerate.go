package cleanup

import (
	"context"
	"fmt"
	"net/url"
)

// Candidates returns every direct member of category in enumeration order
func Candidates(ctx context.Context, q Querier, category string) ([]string, error) {
	params := url.Values{}
	params.Set("list", "categorymembers")
	params.Set("cmtitle", category)
	params.Set("cmlimit", "max")

	return collectTitles(ctx, q, params, "categorymembers")
}

// collectTitles drains a continued list query into one ordered slice
func collectTitles(ctx context.Context, q Querier, params url.Values, list string) ([]string, error) {
	var titles []string
	for page, err := range q.Query(ctx, params) {
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", list, err)
		}
		titles = append(titles, page.Titles(list)...)
	}
	return titles, nil
}
