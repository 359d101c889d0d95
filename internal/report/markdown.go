package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the tree as Markdown, one section per candidate
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Report writes the header and a bullet list of referrers per candidate
func (w *MarkdownWriter) Report(tree *Tree) error {
	md := markdown.NewMarkdown(w.output)

	md.H2("Not deleted due to usage")
	md.PlainText("")
	md.PlainText(Header)
	md.PlainText("")

	for _, root := range tree.Roots {
		md.H3(root.Title)
		md.PlainText("")

		referrers := make([]string, 0, len(root.Children))
		for _, child := range root.Children {
			referrers = append(referrers, child.Title)
		}
		md.BulletList(referrers...)
		md.PlainText("")
	}

	return md.Build()
}
