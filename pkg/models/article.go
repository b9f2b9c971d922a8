package models

import "time"

// Article represents one content file of the blog corpus.
type Article struct {
	Path        string                 `json:"path"`
	Slug        string                 `json:"slug"`
	Title       string                 `json:"title"`
	Date        time.Time              `json:"date"`
	Draft       bool                   `json:"draft"`
	Summary     string                 `json:"summary,omitempty"`
	FrontMatter map[string]interface{} `json:"frontmatter,omitempty"`
	Body        string                 `json:"body,omitempty"`
	Format      string                 `json:"format,omitempty"` // yaml, toml, json
}
