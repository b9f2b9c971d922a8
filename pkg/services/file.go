package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blog-store/pkg/config"
)

// SafeJoin joins target under root, rejecting traversal outside it.
func SafeJoin(root, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, cleanTarget)
}

// SaveArticle reconstructs the file for path from its front-matter map and
// body and writes it under the content root.
func SaveArticle(path string, fm map[string]interface{}, body, format string) error {
	fullPath := SafeJoin(config.ContentPath, path)
	if fullPath == "" {
		return fmt.Errorf("invalid path: %s", path)
	}

	content, err := ConstructFileContent(fm, body, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return err
	}

	InvalidateCache()
	return nil
}

// CreateArticle writes a new draft file with skeleton front-matter. Returns
// os.ErrExist when the path is already taken.
func CreateArticle(path string) error {
	fullPath := SafeJoin(config.ContentPath, path)
	if fullPath == "" {
		return fmt.Errorf("invalid path: %s", path)
	}
	if _, err := os.Stat(fullPath); err == nil {
		return os.ErrExist
	}

	fm := map[string]interface{}{
		"title": titleFromPath(filepath.ToSlash(path)),
		"date":  time.Now().Format(time.RFC3339),
		"draft": true,
	}
	content, err := ConstructFileContent(fm, "", config.NewArticleFormat)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return err
	}

	InvalidateCache()
	return nil
}
