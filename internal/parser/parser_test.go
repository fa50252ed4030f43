package parser

import (
	"reflect"
	"testing"
)

func TestParse_TagsLinksAndWords(t *testing.T) {
	input := []byte("---\ntags: [home]\n---\n# Title\nSee [[Other|the other]] #work\n")
	r := Parse(input)
	if want := []string{"work", "home"}; !reflect.DeepEqual(r.Tags, want) {
		t.Errorf("tags = %v, want %v", r.Tags, want)
	}
	if want := []string{"Other"}; !reflect.DeepEqual(r.Links, want) {
		t.Errorf("links = %v, want %v", r.Links, want)
	}
	// ---, tags:, [home], ---, #, Title, See, [[Other|the, other]], #work
	if r.WordCount != 10 {
		t.Errorf("word count = %d, want 10", r.WordCount)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	r := Parse(nil)
	if len(r.Tags) != 0 || len(r.Links) != 0 || r.WordCount != 0 {
		t.Errorf("expected empty result, got %+v", r)
	}
}

func TestCountWords_UnicodeWhitespace(t *testing.T) {
	if n := CountWords("one\ttwo three\n\nfour  "); n != 4 {
		t.Errorf("count = %d, want 4", n)
	}
}

func TestExtractTags_Inline(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"start of text", "#foo bar", []string{"foo"}},
		{"after space", "text #foo", []string{"foo"}},
		{"after newline", "line\n#foo", []string{"foo"}},
		{"after tab", "a\t#foo", []string{"foo"}},
		{"after nbsp", "a\u00a0#foo", []string{"foo"}},
		{"mid word", "a#foo", nil},
		{"nested", "#project/active now", []string{"project/active"}},
		{"allowed chars", "#a_b-c9 ", []string{"a_b-c9"}},
		{"stops at punctuation", "#foo, #bar.", []string{"foo", "bar"}},
		{"adjacent tags", "#a #b", []string{"a", "b"}},
		{"glued hashes", "#a#b", []string{"a"}},
		{"bare hash", "# heading", nil},
		{"repeated", "#x #x", []string{"x", "x"}},
		{"case sensitive", "#Work #work", []string{"Work", "work"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTags(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tags = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractTags_FrontmatterInlineArray(t *testing.T) {
	got := ExtractTags("---\ntags: [a, b, \"c\"]\n---\nbody")
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_FrontmatterArrayDropsEmpties(t *testing.T) {
	got := ExtractTags("---\ntags: [ 'x' , , \"\" ,y]\n---\n")
	if want := []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_FrontmatterSingle(t *testing.T) {
	for _, in := range []string{"tags: solo", "tags: \"solo\"", "tags: 'solo'", "  tags:   solo  "} {
		got := ExtractTags("---\n" + in + "\n---\n")
		if want := []string{"solo"}; !reflect.DeepEqual(got, want) {
			t.Errorf("%q: tags = %v, want %v", in, got, want)
		}
	}
}

func TestExtractTags_FrontmatterEmptyValue(t *testing.T) {
	if got := ExtractTags("---\ntags: \"\"\ntitle: x\n---\n"); len(got) != 0 {
		t.Errorf("tags = %v, want none", got)
	}
}

// A block list under an empty tags key is not picked up: list lines only
// count once a tag has been found.
func TestExtractTags_FrontmatterBlockListUnderEmptyKey(t *testing.T) {
	got := ExtractTags("---\ntitle: T\ntags:\n  - go\n  - \"vault\"\n---\nbody")
	if len(got) != 0 {
		t.Errorf("tags = %v, want none", got)
	}
}

func TestExtractTags_FrontmatterBlockListKeepsInlineTags(t *testing.T) {
	got := ExtractTags("---\ntags:\n  - go\n---\nbody #kept")
	if want := []string{"kept"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_FrontmatterListAfterScalar(t *testing.T) {
	got := ExtractTags("---\ntags: first\n- second\n---\n")
	if want := []string{"first", "second"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_ListBeforeTagsKeyIgnored(t *testing.T) {
	got := ExtractTags("---\naliases:\n  - Other Name\ntags: [t]\n---\n")
	if want := []string{"t"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

// A list under a later key is read as tags too. The line scanner does not
// track YAML keys, so this false positive is expected.
func TestExtractTags_ListAfterTagsKeyIsFalsePositive(t *testing.T) {
	got := ExtractTags("---\ntags: [t]\naliases:\n  - Other Name\n---\n")
	if want := []string{"t", "Other Name"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_InlineBeforeFrontmatter(t *testing.T) {
	got := ExtractTags("---\ntags: [fm]\n---\nbody #inline")
	if want := []string{"inline", "fm"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_NoFrontmatter(t *testing.T) {
	cases := map[string]string{
		"unterminated":     "---\ntags: [a]\nbody",
		"not at start":     "\n---\ntags: [a]\n---\n",
		"closing at eof":   "---\ntags: [a]\n---",
		"crlf delimiters":  "---\r\ntags: [a]\r\n---\r\n",
		"malformed yaml":   "---\n: : {{{\n---\n",
		"tags key missing": "---\ntitle: x\n- a\n---\n",
	}
	for name, text := range cases {
		if got := ExtractTags(text); len(got) != 0 {
			t.Errorf("%s: tags = %v, want none", name, got)
		}
	}
}

func TestExtractTags_MalformedFrontmatterKeepsInline(t *testing.T) {
	got := ExtractTags("---\n: : {{{\n---\n#still")
	if want := []string{"still"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractLinks_Basic(t *testing.T) {
	got := ExtractLinks("See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again.")
	if want := []string{"Note A", "Note B", "Note A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestExtractLinks_AliasNeverReturned(t *testing.T) {
	for _, text := range []string{"[[Note]]", "[[Note|Alias Text]]"} {
		got := ExtractLinks(text)
		if want := []string{"Note"}; !reflect.DeepEqual(got, want) {
			t.Errorf("%q: links = %v, want %v", text, got, want)
		}
	}
}

func TestExtractLinks_NoNormalisation(t *testing.T) {
	got := ExtractLinks("[[ folder/Note.md ]] [[note]]")
	if want := []string{" folder/Note.md ", "note"}; !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestExtractLinks_EmptyOrUnclosed(t *testing.T) {
	for _, text := range []string{"[[]]", "[[|alias]]", "[[open", "[single]", ""} {
		if got := ExtractLinks(text); len(got) != 0 {
			t.Errorf("%q: links = %v, want none", text, got)
		}
	}
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"a"`:   "a",
		`'a'`:   "a",
		`""a""`: `"a"`,
		`"a'`:   `"a'`,
		`"`:     `"`,
		`a`:     "a",
	}
	for in, want := range cases {
		if got := unquote(in); got != want {
			t.Errorf("unquote(%q) = %q, want %q", in, got, want)
		}
	}
}
