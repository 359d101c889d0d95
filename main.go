// Package main provides the entry point for mediawiki-delete-category.
//
// mediawiki-delete-category logs in to a MediaWiki wiki with a bot password
// and deletes the members of a deletion category, keeping the ones that other
// pages still link to or embed unless told otherwise.
//
// Usage:
//
//	mediawiki-delete-category <username> <password> [flags]
//	mediawiki-delete-category serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
