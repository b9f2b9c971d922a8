package models

// CodeBlock is a fenced code sample embedded in an article body.
type CodeBlock struct {
	Lang string `json:"lang,omitempty"`
	Code string `json:"code"`
}

// ImageRef is an image reference embedded in an article body.
type ImageRef struct {
	Alt string `json:"alt,omitempty"`
	URL string `json:"url"`
}

// ArticleAssets groups everything extracted from one article body.
type ArticleAssets struct {
	Path       string      `json:"path"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	Images     []ImageRef  `json:"images"`
}
