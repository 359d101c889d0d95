package report

import (
	"fmt"
	"io"

	"github.com/olgasafonova/mediawiki-delete-category/internal/cleanup"
)

// Reporter renders a skip tree
type Reporter interface {
	Report(tree *Tree) error
}

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats lists the accepted output formats
var Formats = []string{FormatText, FormatMarkdown, FormatJSON}

// NewWriter returns the Reporter for format writing to w
func NewWriter(format string, w io.Writer) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(w), nil
	case FormatMarkdown:
		return NewMarkdownWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want one of %v)", format, Formats)
	}
}

// Emit reports the skip records through r. With no records nothing is written.
func Emit(r Reporter, records []cleanup.SkipRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.Report(FromSkips(records))
}
