// Package tools provides a metadata-driven registry for the MCP tools the
// serve command exposes. Tools are declared as ToolSpecs and bound to typed
// Service methods when registered.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a Service method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "mediawiki_delete_category")
	Name string

	// Method is the Service method name (e.g., "DeleteCategory")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (read, delete)
	Category string

	// ReadOnly indicates the tool doesn't modify the wiki
	ReadOnly bool

	// Destructive indicates the tool can delete pages or files
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
