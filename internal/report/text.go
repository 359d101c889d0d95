package report

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter draws the tree with box-drawing branches
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter that outputs to the given writer
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

// Report writes two blank lines, the header and the tree
func (w *TextWriter) Report(tree *Tree) error {
	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(Header)
	sb.WriteString("\n")
	writeNodes(&sb, tree.Roots, "")

	_, err := io.WriteString(w.output, sb.String())
	return err
}

func writeNodes(sb *strings.Builder, nodes []*Node, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, indent := "├─ ", "│  "
		if last {
			branch, indent = "└─ ", "   "
		}
		fmt.Fprintf(sb, "%s%s%s\n", prefix, branch, n.Title)
		writeNodes(sb, n.Children, prefix+indent)
	}
}
