package mcpserver

// SyntaxGuide describes the tag and link forms recognised when scanning a
// vault, so that LLM consumers can interpret tool results correctly.
const SyntaxGuide = `# vaultgraph Tag and Link Syntax

Only files ending in ` + "`" + `.md` + "`" + ` are scanned. Paths are relative to the vault root
and use forward slashes.

## Inline tags

- A tag is ` + "`" + `#` + "`" + ` followed by letters, digits, ` + "`" + `_` + "`" + `, ` + "`" + `/` + "`" + ` or ` + "`" + `-` + "`" + `.
- The ` + "`" + `#` + "`" + ` must start the text or follow whitespace: ` + "`" + `a #foo` + "`" + ` is a tag,
  ` + "`" + `a#foo` + "`" + ` is not.
- The tag ends at the first other character: ` + "`" + `#foo.bar` + "`" + ` yields ` + "`" + `foo` + "`" + `.
- Tags are case-sensitive and reported without the ` + "`" + `#` + "`" + `.

## Frontmatter tags

Frontmatter is a block that starts the file with ` + "`" + `---` + "`" + ` on its own line and
ends at the next ` + "`" + `---` + "`" + ` line. Only the ` + "`" + `tags` + "`" + ` key is read:

` + "```" + `yaml
---
tags: [a, "b", 'c']   # inline array
tags: single          # one tag
  - more              # list items count once a tag was found
---
` + "```" + `

This is a line-based reading, not a YAML parser. A ` + "`" + `- item` + "`" + ` line is a tag only
after a tag has been found, so a list under an empty ` + "`" + `tags:` + "`" + ` key yields nothing,
and a list under a later key is also read as tags.

## Wiki links

- ` + "`" + `[[Target]]` + "`" + ` and ` + "`" + `[[Target|Alias]]` + "`" + `; the alias is ignored.
- A target resolves to a note whose path, without ` + "`" + `.md` + "`" + `, equals the target or
  ends with ` + "`" + `/` + "`" + ` plus the target: ` + "`" + `[[Note]]` + "`" + ` finds ` + "`" + `folder/Note.md` + "`" + `.
- When several notes match, the lexicographically first path wins.
- Unresolved links are reported with their raw text and ` + "`" + `exists: false` + "`" + `.

## Derived views

- Orphans have no outgoing links and no resolved incoming links.
- Backlinks accept a full path, a partial path or a bare name and list each
  linking note once.
`
