package tools

// AllTools contains all tool specifications served over MCP.
// Descriptions follow a fixed layout for tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from the other tool
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "mediawiki_preview_category",
		Method:   "PreviewCategory",
		Title:    "Preview Category Cleanup",
		Category: "read",
		Description: `List the members of a deletion category and what still links to or embeds each of them. Nothing is deleted.

USE WHEN: User asks "what would be deleted", "which candidates are still used", or wants to review a cleanup before running it.

NOT FOR: Actually deleting pages (use mediawiki_delete_category).

PARAMETERS:
- category: Category title including the "Category:" prefix (default: the server's configured category)

RETURNS: Unused members, and referenced members with their backlinks and file usages.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "mediawiki_delete_category",
		Method:   "DeleteCategory",
		Title:    "Delete Category Members",
		Category: "delete",
		Description: `Delete every member of a deletion category that nothing links to or embeds. Members that are still referenced are kept and reported unless force is set.

USE WHEN: User says "empty the deletion category", "delete the candidates", "clean up Category:Candidates for deletion".

NOT FOR: Reviewing candidates without deleting (use mediawiki_preview_category first).

PARAMETERS:
- category: Category title including the "Category:" prefix (default: the server's configured category)
- force: Also delete members that are still referenced (default false)
- reason: Deletion summary for the deletion log (default: the server's configured reason)

RETURNS: Deleted titles and the referenced titles that were kept, with their referrers.

WARNING: Deletions take effect immediately. Requires MEDIAWIKI_USERNAME and MEDIAWIKI_PASSWORD with delete rights.`,
		Destructive: true,
		OpenWorld:   true,
	},
}

// ToolsByCategory returns the tools in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var result []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			result = append(result, spec)
		}
	}
	return result
}
