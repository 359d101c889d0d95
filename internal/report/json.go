package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs the tree as indented JSON
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

type jsonReport struct {
	Message    string  `json:"message"`
	NotDeleted []*Node `json:"not_deleted"`
}

// Report writes the tree as a single JSON document
func (w *JSONWriter) Report(tree *Tree) error {
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Message: Header, NotDeleted: tree.Roots})
}
