package parser

import "regexp"

// wikilinkRe matches [[target]] and [[target|alias]]; group 1 is the target.
var wikilinkRe = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)

// ExtractLinks returns every wiki link target in text, in order of appearance.
// Aliases are dropped. Targets are neither deduplicated nor normalised.
func ExtractLinks(text string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
