// Package report renders the pages a run left in place because they are
// still used, as a tree of candidate -> referrers.
package report

import (
	"github.com/olgasafonova/mediawiki-delete-category/internal/cleanup"
)

// Header introduces the skip report
const Header = "Following Trees are about Pages/Files that not deleted due to usage."

// Node is one entry of the tree
type Node struct {
	Title    string  `json:"title"`
	Children []*Node `json:"children,omitempty"`
}

// Insert appends a child leaf. Duplicate children are kept.
func (n *Node) Insert(title string) *Node {
	child := &Node{Title: title}
	n.Children = append(n.Children, child)
	return child
}

// Tree is an ordered forest of root nodes
type Tree struct {
	Roots []*Node `json:"roots"`
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{Roots: []*Node{}}
}

// Insert appends a root node. Roots with equal titles stay separate.
func (t *Tree) Insert(title string) *Node {
	n := &Node{Title: title}
	t.Roots = append(t.Roots, n)
	return n
}

// Len returns the number of root nodes
func (t *Tree) Len() int {
	return len(t.Roots)
}

// FromSkips builds the two-level tree: each skip record is one root and
// each of its referrers a child, in record order.
func FromSkips(records []cleanup.SkipRecord) *Tree {
	tree := NewTree()
	for _, rec := range records {
		root := tree.Insert(rec.Title)
		for _, ref := range rec.Referrers {
			root.Insert(ref)
		}
	}
	return tree
}
