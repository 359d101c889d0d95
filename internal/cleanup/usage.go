package cleanup

import (
	"context"
	"net/url"
	"strings"
)

// FilePrefix marks titles in the File namespace
const FilePrefix = "File:"

// IsFile reports whether title names a file
func IsFile(title string) bool {
	return strings.HasPrefix(title, FilePrefix)
}

// Referrers returns the pages that would be left with a broken link or a
// missing image if title were deleted: all backlinks, followed by all file
// usages for File: titles. Entries are not de-duplicated across the two lists.
func Referrers(ctx context.Context, q Querier, title string) ([]string, error) {
	params := url.Values{}
	params.Set("list", "backlinks")
	params.Set("bltitle", title)
	params.Set("bllimit", "max")

	referrers, err := collectTitles(ctx, q, params, "backlinks")
	if err != nil {
		return nil, err
	}

	if !IsFile(title) {
		return referrers, nil
	}

	params = url.Values{}
	params.Set("list", "imageusage")
	params.Set("iutitle", title)
	params.Set("iulimit", "max")

	usage, err := collectTitles(ctx, q, params, "imageusage")
	if err != nil {
		return nil, err
	}
	return append(referrers, usage...), nil
}
