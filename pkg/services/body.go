package services

import (
	"bytes"

	"blog-store/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// RenderBody converts an article body to HTML for previewing.
func RenderBody(body string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExtractAssets walks the Markdown AST of a body and collects the fenced
// code blocks (with their language labels) and image references.
func ExtractAssets(body string) ([]models.CodeBlock, []models.ImageRef, error) {
	source := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []models.CodeBlock
	var images []models.ImageRef

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			var code bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				code.Write(seg.Value(source))
			}
			blocks = append(blocks, models.CodeBlock{
				Lang: string(node.Language(source)),
				Code: code.String(),
			})
		case *ast.Image:
			images = append(images, models.ImageRef{
				Alt: string(node.Text(source)),
				URL: string(node.Destination),
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return blocks, images, nil
}
