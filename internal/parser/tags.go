package parser

import "regexp"

// inlineTagRe matches #tag and #nested/tag when the # opens the text or follows
// a Unicode White_Space rune; group 1 is the tag without the #.
var inlineTagRe = regexp.MustCompile(`(?:^|[\s\v\p{Z}\x{85}])#([A-Za-z0-9_/-]+)`)

// ExtractTags returns the tags declared in text: inline tags first, then
// frontmatter tags. Occurrences are not deduplicated.
func ExtractTags(text string) []string {
	var tags []string
	for _, m := range inlineTagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	if fm, ok := frontmatter(text); ok {
		tags = append(tags, frontmatterTags(fm)...)
	}
	return tags
}
