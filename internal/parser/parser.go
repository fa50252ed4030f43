// Package parser extracts tags, wiki links, and word counts from Markdown notes.
package parser

import "strings"

// Result holds the output of parsing a Markdown file.
type Result struct {
	Tags      []string
	Links     []string
	WordCount int
}

// Parse extracts tags, wiki link targets, and the word count from raw Markdown bytes.
// Parsing never fails: ambiguous syntax simply contributes nothing.
func Parse(data []byte) Result {
	text := string(data)
	return Result{
		Tags:      ExtractTags(text),
		Links:     ExtractLinks(text),
		WordCount: CountWords(text),
	}
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
