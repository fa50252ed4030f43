package parser

import "strings"

const (
	fmOpen  = "---\n"
	fmClose = "\n---\n"
	tagsKey = "tags:"
	listTok = "- "
)

// frontmatter returns the block between a leading "---" line and the next
// "---" line. Both delimiters must be complete lines.
func frontmatter(text string) (string, bool) {
	if !strings.HasPrefix(text, fmOpen) {
		return "", false
	}
	rest := text[len(fmOpen):]
	end := strings.Index(rest, fmClose)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// frontmatterTags reads tags from a frontmatter block line by line.
//
// This is a heuristic, not YAML: a "- item" line is a tag only once a tag has
// already been found, so a block list under an empty "tags:" key yields
// nothing, while any list after a non-empty tags value is read as tags, even
// when it belongs to another key.
func frontmatterTags(block string) []string {
	var tags []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, tagsKey):
			tags = append(tags, tagsValue(strings.TrimSpace(line[len(tagsKey):]))...)
		case len(tags) > 0 && strings.HasPrefix(line, listTok):
			if tag := unquote(strings.TrimSpace(line[len(listTok):])); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// tagsValue parses the text after "tags:", either an inline [a, b] array or a
// single scalar.
func tagsValue(value string) []string {
	if len(value) >= 2 && value[0] == '[' && value[len(value)-1] == ']' {
		var out []string
		for _, piece := range strings.Split(value[1:len(value)-1], ",") {
			if tag := unquote(strings.TrimSpace(piece)); tag != "" {
				out = append(out, tag)
			}
		}
		return out
	}
	if tag := unquote(value); tag != "" {
		return []string{tag}
	}
	return nil
}

// unquote strips one pair of matching surrounding double or single quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
