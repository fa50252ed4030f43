package models

// TagCount is one row of the vault-wide tag frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagsReport wraps the tag frequency table.
type TagsReport struct {
	Tags []TagCount `json:"tags"`
}

// FileInfo is per-note metadata for file listings.
type FileInfo struct {
	Path      string `json:"path"`
	WordCount int    `json:"word_count"`
	LinkCount int    `json:"link_count"`
	TagCount  int    `json:"tag_count"`
	Modified  string `json:"modified"`
}

// FilesReport wraps file listings.
type FilesReport struct {
	Files []FileInfo `json:"files"`
}

// LinksReport wraps the link table with its broken link count.
type LinksReport struct {
	Links       []Link `json:"links"`
	BrokenCount int    `json:"broken_count"`
}

// OrphansReport wraps the orphan list.
type OrphansReport struct {
	Orphans []string `json:"orphans"`
}

// TagSearchReport lists the notes that declare Tag.
type TagSearchReport struct {
	Tag   string   `json:"tag"`
	Files []string `json:"files"`
}

// BacklinksReport lists the notes linking to File.
type BacklinksReport struct {
	File      string   `json:"file"`
	Backlinks []string `json:"backlinks"`
}

// Stats summarises a vault.
type Stats struct {
	TotalNotes    int `json:"total_notes"`
	TotalTags     int `json:"total_tags"`
	TotalLinks    int `json:"total_links"`
	BrokenLinks   int `json:"broken_links"`
	OrphanedNotes int `json:"orphaned_notes"`
}
